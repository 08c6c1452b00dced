package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// CheckerUseCase drives the readiness wizard of a session
type CheckerUseCase struct {
	uc *UseCases
}

// CheckerState is the wizard plus what the page needs to render it.
// Assessment is set only while the results are visible.
type CheckerState struct {
	Wizard     *model.WizardState
	CanProceed bool
	Moved      bool
	Assessment *model.Assessment
	Catalog    model.Catalog
}

func (c *CheckerUseCase) state(w *model.WizardState, moved bool) *CheckerState {
	st := &CheckerState{
		Wizard:     w,
		CanProceed: w.CanProceed(),
		Moved:      moved,
		Catalog:    c.uc.scoring.Catalog,
	}
	if w.ResultsVisible {
		st.Assessment = w.Assessment(c.uc.scoring)
	}
	return st
}

// Get returns the current wizard of the session
func (c *CheckerUseCase) Get(ctx context.Context, id model.SessionID) (*CheckerState, error) {
	sess, err := c.uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return c.state(sess.Wizard, false), nil
}

// Select records an answer for step. Data categories toggle.
func (c *CheckerUseCase) Select(ctx context.Context, id model.SessionID, step types.WizardStep, value string) (*CheckerState, error) {
	sess, err := c.uc.update(ctx, id, func(s *model.Session) error {
		return s.Wizard.SelectAnswer(step, value, c.uc.scoring.Catalog)
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to select answer",
			goerr.V(SessionIDKey, id), goerr.V(model.StepKey, int(step)))
	}

	logging.From(ctx).Debug("wizard answer selected", "session_id", id, "step", step.String(), "value", value)
	return c.state(sess.Wizard, false), nil
}

// Next advances the wizard. A closed gate is not an error: Moved is false.
func (c *CheckerUseCase) Next(ctx context.Context, id model.SessionID) (*CheckerState, error) {
	return c.move(ctx, id, "advance", (*model.WizardState).Advance)
}

// Back retreats the wizard, hiding the results when they are shown
func (c *CheckerUseCase) Back(ctx context.Context, id model.SessionID) (*CheckerState, error) {
	return c.move(ctx, id, "retreat", (*model.WizardState).Retreat)
}

func (c *CheckerUseCase) move(ctx context.Context, id model.SessionID, action string, fn func(*model.WizardState) bool) (*CheckerState, error) {
	var moved bool
	sess, err := c.uc.update(ctx, id, func(s *model.Session) error {
		moved = fn(s.Wizard)
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to move wizard", goerr.V(SessionIDKey, id), goerr.V("action", action))
	}

	logging.From(ctx).Debug("wizard "+action,
		"session_id", id,
		"moved", moved,
		"step", sess.Wizard.Step.String(),
		"results_visible", sess.Wizard.ResultsVisible,
	)
	return c.state(sess.Wizard, moved), nil
}

// Reset restores the initial wizard
func (c *CheckerUseCase) Reset(ctx context.Context, id model.SessionID) (*CheckerState, error) {
	sess, err := c.uc.update(ctx, id, func(s *model.Session) error {
		s.Wizard.Reset()
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to reset wizard", goerr.V(SessionIDKey, id))
	}
	return c.state(sess.Wizard, true), nil
}

// Answers is a complete answer set for a one-shot assessment
type Answers struct {
	InstitutionType string   `json:"institution_type"`
	Jurisdiction    string   `json:"jurisdiction"`
	ReportingPeriod string   `json:"reporting_period"`
	DataCategories  []string `json:"data_categories"`
}

// Assess runs the whole wizard on answers without touching any session. The
// reporting period may be empty, in which case the default is kept.
// Categories listed twice are counted once.
func (c *CheckerUseCase) Assess(ctx context.Context, answers Answers) (*CheckerState, error) {
	w := model.NewWizardState()

	if err := w.SelectAnswer(types.StepInstitution, answers.InstitutionType, c.uc.scoring.Catalog); err != nil {
		return nil, goerr.Wrap(err, "invalid institution type")
	}
	if err := w.SelectAnswer(types.StepJurisdiction, answers.Jurisdiction, c.uc.scoring.Catalog); err != nil {
		return nil, goerr.Wrap(err, "invalid jurisdiction")
	}
	if answers.ReportingPeriod != "" {
		if err := w.SelectAnswer(types.StepReportingPeriod, answers.ReportingPeriod, c.uc.scoring.Catalog); err != nil {
			return nil, goerr.Wrap(err, "invalid reporting period")
		}
	}
	for _, category := range answers.DataCategories {
		if w.IsSelected(model.DataCategory(category)) {
			continue
		}
		if err := w.SelectAnswer(types.StepDataAvailability, category, c.uc.scoring.Catalog); err != nil {
			return nil, goerr.Wrap(err, "invalid data category")
		}
	}

	for range types.StepCount {
		if !w.Advance() {
			return nil, goerr.Wrap(ErrIncompleteAnswers, "wizard gate is closed", goerr.V(model.StepKey, w.Step.String()))
		}
	}

	logging.From(ctx).Debug("stateless assessment", "score", w.Assessment(c.uc.scoring).Score)
	return c.state(w, true), nil
}
