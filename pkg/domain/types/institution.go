package types

import (
	"fmt"
	"strings"
)

// InstitutionType is the kind of financial institution answering the readiness wizard
type InstitutionType string

const (
	InstitutionCommercialBank InstitutionType = "commercial_bank"
	InstitutionInvestmentBank InstitutionType = "investment_bank"
	InstitutionInsurance      InstitutionType = "insurance"
	InstitutionAssetManager   InstitutionType = "asset_manager"
	InstitutionCreditUnion    InstitutionType = "credit_union"
	InstitutionFintech        InstitutionType = "fintech"
)

var institutionLabels = map[InstitutionType]string{
	InstitutionCommercialBank: "Commercial Bank",
	InstitutionInvestmentBank: "Investment Bank",
	InstitutionInsurance:      "Insurance Company",
	InstitutionAssetManager:   "Asset Manager",
	InstitutionCreditUnion:    "Credit Union",
	InstitutionFintech:        "Fintech / E-Money",
}

// AllInstitutionTypes returns all institution types in display order
func AllInstitutionTypes() []InstitutionType {
	return []InstitutionType{
		InstitutionCommercialBank,
		InstitutionInvestmentBank,
		InstitutionInsurance,
		InstitutionAssetManager,
		InstitutionCreditUnion,
		InstitutionFintech,
	}
}

// IsValid checks if the institution type is one of the known values
func (t InstitutionType) IsValid() bool {
	_, ok := institutionLabels[t]
	return ok
}

// Label returns the human readable name
func (t InstitutionType) Label() string {
	return institutionLabels[t]
}

func (t InstitutionType) String() string {
	return string(t)
}

// ParseInstitutionType accepts either the value ("commercial_bank") or the
// label ("Commercial Bank"), case-insensitively.
func ParseInstitutionType(s string) (InstitutionType, error) {
	s = strings.TrimSpace(s)
	for _, t := range AllInstitutionTypes() {
		if strings.EqualFold(s, string(t)) || strings.EqualFold(s, t.Label()) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid institution type: %s", s)
}
