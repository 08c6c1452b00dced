package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// DataCategory names one kind of regulatory input data an institution may hold
type DataCategory string

const (
	CategoryBalanceSheet       DataCategory = "Balance Sheet Data"
	CategoryProfitAndLoss      DataCategory = "P&L Statements"
	CategoryRiskExposures      DataCategory = "Risk Exposures"
	CategoryLiquidityPositions DataCategory = "Liquidity Positions"
	CategoryCapitalAdequacy    DataCategory = "Capital Adequacy"
	CategoryCounterparty       DataCategory = "Counterparty Data"
	CategoryTransactions       DataCategory = "Transaction Records"
	CategoryCollateral         DataCategory = "Collateral Data"
)

func (c DataCategory) String() string {
	return string(c)
}

// Catalog is the ordered list of data categories used for coverage scoring.
// Order is significant: missing categories are always reported in catalog order.
type Catalog []DataCategory

// DefaultCatalog returns a fresh copy of the eight standard categories
func DefaultCatalog() Catalog {
	return Catalog{
		CategoryBalanceSheet,
		CategoryProfitAndLoss,
		CategoryRiskExposures,
		CategoryLiquidityPositions,
		CategoryCapitalAdequacy,
		CategoryCounterparty,
		CategoryTransactions,
		CategoryCollateral,
	}
}

// Contains reports whether category is part of the catalog
func (c Catalog) Contains(category DataCategory) bool {
	return slices.Contains(c, category)
}

// Validate checks the catalog is non-empty and free of blanks and duplicates
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return goerr.Wrap(ErrInvalidScoringConfig, "catalog must not be empty")
	}
	seen := make(map[DataCategory]bool, len(c))
	for _, category := range c {
		if category == "" {
			return goerr.Wrap(ErrInvalidScoringConfig, "catalog contains an empty category")
		}
		if seen[category] {
			return goerr.Wrap(ErrInvalidScoringConfig, "duplicate catalog category",
				goerr.V(CategoryKey, category))
		}
		seen[category] = true
	}
	return nil
}

// Covered counts the distinct catalog members present in selected.
// Entries outside the catalog are ignored.
func (c Catalog) Covered(selected []DataCategory) int {
	n := 0
	for _, category := range c {
		if slices.Contains(selected, category) {
			n++
		}
	}
	return n
}

// Missing returns the catalog members absent from selected, in catalog order
func (c Catalog) Missing(selected []DataCategory) []DataCategory {
	missing := make([]DataCategory, 0, len(c))
	for _, category := range c {
		if !slices.Contains(selected, category) {
			missing = append(missing, category)
		}
	}
	return missing
}
