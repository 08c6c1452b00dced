package model_test

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

func subsetOf(catalog model.Catalog, mask []bool) []model.DataCategory {
	var selected []model.DataCategory
	for i, on := range mask {
		if on && i < len(catalog) {
			selected = append(selected, catalog[i])
		}
	}
	return selected
}

func TestScoringProperties(t *testing.T) {
	catalog := model.DefaultCatalog()
	cfg := model.DefaultScoringConfig()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("score is round(40 + 60*|S|/8)", prop.ForAll(
		func(mask []bool) bool {
			selected := subsetOf(catalog, mask)
			want := int(math.Floor(40 + 60*float64(len(selected))/8 + 0.5))
			return cfg.Score(selected) == want
		},
		gen.SliceOfN(len(catalog), gen.Bool()),
	))

	properties.Property("missing is catalog minus selection in catalog order", prop.ForAll(
		func(mask []bool) bool {
			selected := subsetOf(catalog, mask)
			var want []model.DataCategory
			for i, c := range catalog {
				if !mask[i] {
					want = append(want, c)
				}
			}
			got := cfg.Assess(selected).Missing
			return len(got) == len(want) && (len(got) == 0 || slices.Equal(got, want))
		},
		gen.SliceOfN(len(catalog), gen.Bool()),
	))

	properties.Property("selection order does not matter", prop.ForAll(
		func(mask []bool) bool {
			selected := subsetOf(catalog, mask)
			reversed := slices.Clone(selected)
			slices.Reverse(reversed)
			a, b := cfg.Assess(selected), cfg.Assess(reversed)
			return a.Score == b.Score && slices.Equal(a.Missing, b.Missing) && slices.Equal(a.RiskNotes, b.RiskNotes)
		},
		gen.SliceOfN(len(catalog), gen.Bool()),
	))

	properties.Property("risk notes are never empty", prop.ForAll(
		func(mask []bool) bool {
			return len(cfg.Assess(subsetOf(catalog, mask)).RiskNotes) > 0
		},
		gen.SliceOfN(len(catalog), gen.Bool()),
	))

	properties.TestingRun(t)
}

func TestScoreBoundaries(t *testing.T) {
	cfg := model.DefaultScoringConfig()

	gt.Value(t, cfg.Score(nil)).Equal(40)
	gt.Value(t, cfg.Score(model.DefaultCatalog())).Equal(100)

	// 1/8 of 60 is 7.5; half rounds up
	gt.Value(t, cfg.Score([]model.DataCategory{model.CategoryCollateral})).Equal(48)
}

func TestScoreIgnoresUnknownAndDuplicateCategories(t *testing.T) {
	cfg := model.DefaultScoringConfig()
	selected := []model.DataCategory{
		model.CategoryBalanceSheet,
		model.CategoryBalanceSheet,
		"Crypto Holdings",
	}
	gt.Value(t, cfg.Score(selected)).Equal(48)
}

func TestRiskNotes(t *testing.T) {
	catalog := model.DefaultCatalog()

	without := func(excluded ...model.DataCategory) []model.DataCategory {
		var out []model.DataCategory
		for _, c := range catalog {
			if !slices.Contains(excluded, c) {
				out = append(out, c)
			}
		}
		return out
	}

	tests := []struct {
		name     string
		selected []model.DataCategory
		want     []string
	}{
		{
			name:     "all categories",
			selected: catalog,
			want:     []string{"No critical risk areas detected."},
		},
		{
			name:     "capital adequacy only missing",
			selected: without(model.CategoryCapitalAdequacy),
			want:     []string{"Capital adequacy reporting may be incomplete."},
		},
		{
			name:     "liquidity and risk exposures missing",
			selected: without(model.CategoryRiskExposures, model.CategoryLiquidityPositions),
			want: []string{
				"LCR/NSFR calculations at risk.",
				"Large exposure reporting could fail validation.",
			},
		},
		{
			name:     "nothing selected keeps fixed order",
			selected: nil,
			want: []string{
				"Capital adequacy reporting may be incomplete.",
				"LCR/NSFR calculations at risk.",
				"Large exposure reporting could fail validation.",
			},
		},
		{
			name:     "non critical categories missing",
			selected: without(model.CategoryCollateral, model.CategoryCounterparty),
			want:     []string{"No critical risk areas detected."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, model.Assess(tt.selected).RiskNotes).Equal(tt.want)
		})
	}
}

func TestAssessBand(t *testing.T) {
	gt.Value(t, model.Assess(nil).Band).Equal(types.ReadinessNeedsImprovement)
	gt.Value(t, model.Assess(model.DefaultCatalog()).Band).Equal(types.ReadinessGood)
	gt.Array(t, model.Assess(nil).NextSteps).Length(3)
}

func TestScoringConfig_Validate(t *testing.T) {
	t.Run("default is valid", func(t *testing.T) {
		gt.NoError(t, model.DefaultScoringConfig().Validate())
	})

	t.Run("base plus weight above 100", func(t *testing.T) {
		cfg := model.DefaultScoringConfig()
		cfg.Base = 50
		err := cfg.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, model.ErrInvalidScoringConfig)).True()
	})

	t.Run("risk rule outside catalog", func(t *testing.T) {
		cfg := model.DefaultScoringConfig()
		cfg.RiskRules = append(cfg.RiskRules, model.RiskRule{Category: "Crypto Holdings", Note: "n/a"})
		err := cfg.Validate()
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, model.ErrUnknownCategory)).True()
	})

	t.Run("duplicate catalog entry", func(t *testing.T) {
		cfg := model.DefaultScoringConfig()
		cfg.Catalog = append(cfg.Catalog, model.CategoryCollateral)
		gt.Value(t, cfg.Validate()).NotNil()
	})

	t.Run("empty fallback", func(t *testing.T) {
		cfg := model.DefaultScoringConfig()
		cfg.FallbackNote = ""
		gt.Value(t, cfg.Validate()).NotNil()
	})
}

func TestCustomWeighting(t *testing.T) {
	cfg := model.DefaultScoringConfig()
	cfg.Base = 0
	cfg.Weight = 100
	gt.Value(t, cfg.Score(cfg.Catalog[:2])).Equal(25)
}
