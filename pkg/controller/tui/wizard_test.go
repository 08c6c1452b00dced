package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
)

func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(k)
	}
	return m
}

func TestWizardWalkthrough(t *testing.T) {
	w := NewWizard(model.DefaultScoringConfig())

	// Commercial bank is the first option, EU the first jurisdiction
	press(t, w, keyEnter, keyEnter)
	gt.Value(t, w.State().InstitutionType).Equal(types.InstitutionCommercialBank)
	gt.Value(t, w.State().Jurisdiction).Equal(types.JurisdictionEU)
	gt.Value(t, w.State().Step).Equal(types.StepReportingPeriod)

	// Quarterly is second in the list
	press(t, w, keyDown, keyEnter)
	gt.Value(t, w.State().ReportingPeriod).Equal(types.ReportingQuarterly)
	gt.Value(t, w.State().Step).Equal(types.StepDataAvailability)

	// Enter without any category keeps the gate closed
	press(t, w, keyEnter)
	gt.Bool(t, w.State().ResultsVisible).False()
	gt.String(t, w.View()).Contains("Select at least one option")
	gt.Value(t, w.Assessment()).Nil()

	// Balance Sheet, P&L, then skip to Liquidity (index 3) and Capital Adequacy (index 4)
	press(t, w, keySpace, keyDown, keySpace, keyDown, keyDown, keySpace, keyDown, keySpace)
	gt.Array(t, w.State().DataCategories).Length(4)

	press(t, w, keyEnter)
	gt.Bool(t, w.State().ResultsVisible).True()

	a := w.Assessment()
	gt.Value(t, a).NotNil().Required()
	gt.Value(t, a.Score).Equal(70)
	gt.Value(t, a.RiskNotes).Equal([]string{"Large exposure reporting could fail validation."})
	gt.String(t, w.View()).Contains("Moderate Readiness")

	t.Run("toggles are frozen while results are shown", func(t *testing.T) {
		press(t, w, keySpace)
		gt.Array(t, w.State().DataCategories).Length(4)
	})

	t.Run("back hides the results", func(t *testing.T) {
		press(t, w, keyLeft)
		gt.Bool(t, w.State().ResultsVisible).False()
		gt.Value(t, w.State().Step).Equal(types.StepDataAvailability)
	})

	t.Run("reset restores the initial state", func(t *testing.T) {
		press(t, w, keyRunes("r"))
		gt.Value(t, w.State()).Equal(model.NewWizardState())
	})
}

func TestWizardSpaceDeselects(t *testing.T) {
	w := NewWizard(model.DefaultScoringConfig())
	press(t, w, keyEnter, keyEnter, keyEnter)
	gt.Value(t, w.State().Step).Equal(types.StepDataAvailability)

	press(t, w, keySpace)
	gt.Bool(t, w.State().IsSelected(model.CategoryBalanceSheet)).True()
	press(t, w, keySpace)
	gt.Bool(t, w.State().IsSelected(model.CategoryBalanceSheet)).False()
}

func TestWizardQuit(t *testing.T) {
	w := NewWizard(model.DefaultScoringConfig())
	_, cmd := w.Update(keyRunes("q"))
	gt.Value(t, cmd).NotNil()
	gt.Value(t, w.View()).Equal("")
}
