package model

import (
	"math"
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// Scoring defaults. These are product constants with no derivation behind
// them; ScoringConfig lets an operator override every one of them.
const (
	DefaultScoreBase        = 40
	DefaultScoreWeight      = 60
	DefaultFallbackRiskNote = "No critical risk areas detected."
)

// RiskRule appends Note to the assessment when Category is missing
type RiskRule struct {
	Category DataCategory
	Note     string
}

// DefaultRiskRules returns the standard risk predicates in evaluation order
func DefaultRiskRules() []RiskRule {
	return []RiskRule{
		{Category: CategoryCapitalAdequacy, Note: "Capital adequacy reporting may be incomplete."},
		{Category: CategoryLiquidityPositions, Note: "LCR/NSFR calculations at risk."},
		{Category: CategoryRiskExposures, Note: "Large exposure reporting could fail validation."},
	}
}

// DefaultNextSteps are the recommended actions printed under every report
func DefaultNextSteps() []string {
	return []string{
		"Connect missing data sources to Reporting.bot for automated ingestion",
		"Run a full data quality validation before next submission",
		"Set up automated deadline alerts to avoid late filing penalties",
	}
}

// ScoringConfig holds the constants of the readiness heuristic
type ScoringConfig struct {
	Catalog      Catalog
	Base         float64
	Weight       float64
	RiskRules    []RiskRule
	FallbackNote string
	NextSteps    []string
}

// DefaultScoringConfig returns the standard heuristic: score = round(40 + 60*coverage)
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Catalog:      DefaultCatalog(),
		Base:         DefaultScoreBase,
		Weight:       DefaultScoreWeight,
		RiskRules:    DefaultRiskRules(),
		FallbackNote: DefaultFallbackRiskNote,
		NextSteps:    DefaultNextSteps(),
	}
}

// Validate checks the configuration can only produce scores in [0,100]
func (c *ScoringConfig) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if c.Base < 0 || c.Weight < 0 {
		return goerr.Wrap(ErrInvalidScoringConfig, "base and weight must not be negative",
			goerr.V("base", c.Base), goerr.V("weight", c.Weight))
	}
	if c.Base+c.Weight > 100 {
		return goerr.Wrap(ErrInvalidScoringConfig, "base plus weight must not exceed 100",
			goerr.V("base", c.Base), goerr.V("weight", c.Weight))
	}
	for i, rule := range c.RiskRules {
		if !c.Catalog.Contains(rule.Category) {
			return goerr.Wrap(ErrUnknownCategory, "risk rule refers to a category outside the catalog",
				goerr.V(CategoryKey, rule.Category), goerr.V("rule_index", i))
		}
		if rule.Note == "" {
			return goerr.Wrap(ErrInvalidScoringConfig, "risk rule note is required",
				goerr.V(CategoryKey, rule.Category))
		}
	}
	if c.FallbackNote == "" {
		return goerr.Wrap(ErrInvalidScoringConfig, "fallback risk note is required")
	}
	return nil
}

// Assessment is the readiness report derived from a set of available categories
type Assessment struct {
	Score     int
	Band      types.ReadinessBand
	Missing   []DataCategory
	RiskNotes []string
	NextSteps []string
}

// Score returns round(base + weight*covered/len(catalog)), rounding half up
func (c *ScoringConfig) Score(selected []DataCategory) int {
	if len(c.Catalog) == 0 {
		return int(roundHalfUp(c.Base))
	}
	covered := c.Catalog.Covered(selected)
	raw := c.Base + c.Weight*float64(covered)/float64(len(c.Catalog))
	return clampScore(int(roundHalfUp(raw)))
}

// RiskNotes evaluates every rule in order against the missing categories.
// Rules never suppress each other; the fallback note appears only when none fire.
func (c *ScoringConfig) RiskNotes(missing []DataCategory) []string {
	var notes []string
	for _, rule := range c.RiskRules {
		if slices.Contains(missing, rule.Category) {
			notes = append(notes, rule.Note)
		}
	}
	if len(notes) == 0 {
		notes = append(notes, c.FallbackNote)
	}
	return notes
}

// Assess computes the full readiness report for selected
func (c *ScoringConfig) Assess(selected []DataCategory) *Assessment {
	score := c.Score(selected)
	missing := c.Catalog.Missing(selected)
	return &Assessment{
		Score:     score,
		Band:      types.ReadinessBandFor(score),
		Missing:   missing,
		RiskNotes: c.RiskNotes(missing),
		NextSteps: slices.Clone(c.NextSteps),
	}
}

// Assess scores selected with the default configuration
func Assess(selected []DataCategory) *Assessment {
	return DefaultScoringConfig().Assess(selected)
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
