package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// WizardState is the readiness wizard of one visitor.
//
// Invariant: ResultsVisible is true only after the last step was completed
// with at least one data category selected. Answers are frozen while the
// results are shown, so the invariant cannot be broken by a later toggle.
type WizardState struct {
	Step            types.WizardStep
	InstitutionType types.InstitutionType
	Jurisdiction    types.Jurisdiction
	ReportingPeriod types.ReportingPeriod
	DataCategories  []DataCategory // selection order, no duplicates
	ResultsVisible  bool
}

// NewWizardState returns the initial wizard: first step, quarterly reporting preselected
func NewWizardState() *WizardState {
	return &WizardState{
		Step:            types.FirstStep,
		ReportingPeriod: types.DefaultReportingPeriod,
	}
}

// SelectAnswer records value into the field owned by step. The last step
// toggles membership of a data category instead of overwriting. Unknown
// values are rejected; selections while results are visible are ignored.
func (w *WizardState) SelectAnswer(step types.WizardStep, value string, catalog Catalog) error {
	if !step.IsValid() {
		return goerr.Wrap(ErrInvalidStep, "step out of range", goerr.V(StepKey, int(step)))
	}
	if w.ResultsVisible {
		return nil
	}

	switch step {
	case types.StepInstitution:
		t, err := types.ParseInstitutionType(value)
		if err != nil {
			return goerr.Wrap(ErrInvalidAnswer, err.Error(), goerr.V(StepKey, int(step)), goerr.V(ValueKey, value))
		}
		w.InstitutionType = t

	case types.StepJurisdiction:
		j, err := types.ParseJurisdiction(value)
		if err != nil {
			return goerr.Wrap(ErrInvalidAnswer, err.Error(), goerr.V(StepKey, int(step)), goerr.V(ValueKey, value))
		}
		w.Jurisdiction = j

	case types.StepReportingPeriod:
		p, err := types.ParseReportingPeriod(value)
		if err != nil {
			return goerr.Wrap(ErrInvalidAnswer, err.Error(), goerr.V(StepKey, int(step)), goerr.V(ValueKey, value))
		}
		w.ReportingPeriod = p

	case types.StepDataAvailability:
		category := DataCategory(value)
		if !catalog.Contains(category) {
			return goerr.Wrap(ErrUnknownCategory, "category is not in the catalog",
				goerr.V(StepKey, int(step)), goerr.V(CategoryKey, value))
		}
		w.toggle(category)
	}

	return nil
}

func (w *WizardState) toggle(category DataCategory) {
	if idx := slices.Index(w.DataCategories, category); idx >= 0 {
		w.DataCategories = slices.Delete(w.DataCategories, idx, idx+1)
		return
	}
	w.DataCategories = append(w.DataCategories, category)
}

// IsSelected reports whether category is currently marked available
func (w *WizardState) IsSelected(category DataCategory) bool {
	return slices.Contains(w.DataCategories, category)
}

// CanProceed evaluates the gate of the current step
func (w *WizardState) CanProceed() bool {
	switch w.Step {
	case types.StepInstitution:
		return w.InstitutionType != ""
	case types.StepJurisdiction:
		return w.Jurisdiction != ""
	case types.StepReportingPeriod:
		return w.ReportingPeriod != ""
	case types.StepDataAvailability:
		return len(w.DataCategories) > 0
	default:
		return false
	}
}

// Advance moves to the next step, or reveals the results on the last step.
// It returns false and changes nothing when the gate is closed or the
// results are already visible.
func (w *WizardState) Advance() bool {
	if w.ResultsVisible || !w.CanProceed() {
		return false
	}
	if w.Step >= types.LastStep {
		w.Step = types.LastStep
		w.ResultsVisible = true
		return true
	}
	w.Step = (w.Step + 1).Clamp()
	return true
}

// Retreat hides visible results (staying on the last step) or moves one
// step back, floored at the first step. It returns false when nothing changed.
func (w *WizardState) Retreat() bool {
	if w.ResultsVisible {
		w.ResultsVisible = false
		w.Step = types.LastStep
		return true
	}
	if w.Step <= types.FirstStep {
		return false
	}
	w.Step = (w.Step - 1).Clamp()
	return true
}

// Reset restores the initial state
func (w *WizardState) Reset() {
	*w = *NewWizardState()
}

// Assessment derives the readiness report from the current selection
func (w *WizardState) Assessment(cfg *ScoringConfig) *Assessment {
	return cfg.Assess(w.DataCategories)
}

// Clone returns a deep copy
func (w *WizardState) Clone() *WizardState {
	if w == nil {
		return nil
	}
	copied := *w
	copied.DataCategories = slices.Clone(w.DataCategories)
	return &copied
}
