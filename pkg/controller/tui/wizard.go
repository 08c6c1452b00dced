package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// option is one choice of a wizard step
type option struct {
	value string
	label string
	note  string
}

// Wizard walks the readiness checker step by step
type Wizard struct {
	state  *model.WizardState
	cfg    *model.ScoringConfig
	cursor int
	errMsg string
	quit   bool
}

// NewWizard creates a wizard scored by cfg
func NewWizard(cfg *model.ScoringConfig) *Wizard {
	return &Wizard{
		state: model.NewWizardState(),
		cfg:   cfg,
	}
}

// State returns the current answers
func (m *Wizard) State() *model.WizardState {
	return m.state
}

// Assessment returns the report, or nil when the wizard was left before the results
func (m *Wizard) Assessment() *model.Assessment {
	if !m.state.ResultsVisible {
		return nil
	}
	return m.state.Assessment(m.cfg)
}

func (m *Wizard) Init() tea.Cmd {
	return nil
}

func (m *Wizard) options() []option {
	switch m.state.Step {
	case types.StepInstitution:
		opts := make([]option, 0, len(types.AllInstitutionTypes()))
		for _, t := range types.AllInstitutionTypes() {
			opts = append(opts, option{value: string(t), label: t.Label()})
		}
		return opts
	case types.StepJurisdiction:
		opts := make([]option, 0, len(types.AllJurisdictions()))
		for _, j := range types.AllJurisdictions() {
			opts = append(opts, option{value: string(j), label: j.Label()})
		}
		return opts
	case types.StepReportingPeriod:
		opts := make([]option, 0, len(types.AllReportingPeriods()))
		for _, p := range types.AllReportingPeriods() {
			opts = append(opts, option{value: string(p), label: p.Label(), note: p.Examples()})
		}
		return opts
	default:
		opts := make([]option, 0, len(m.cfg.Catalog))
		for _, c := range m.cfg.Catalog {
			opts = append(opts, option{value: string(c), label: string(c)})
		}
		return opts
	}
}

func (m *Wizard) selected(o option) bool {
	w := m.state
	switch w.Step {
	case types.StepInstitution:
		return string(w.InstitutionType) == o.value
	case types.StepJurisdiction:
		return string(w.Jurisdiction) == o.value
	case types.StepReportingPeriod:
		return string(w.ReportingPeriod) == o.value
	default:
		return w.IsSelected(model.DataCategory(o.value))
	}
}

func (m *Wizard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.quit = true
		return m, tea.Quit
	case "r":
		m.state.Reset()
		m.cursor = 0
		m.errMsg = ""
		return m, nil
	case "left", "h", "backspace":
		if m.state.Retreat() {
			m.cursor = 0
		}
		m.errMsg = ""
		return m, nil
	}

	if m.state.ResultsVisible {
		return m, nil
	}

	opts := m.options()
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(opts)-1 {
			m.cursor++
		}
	case " ", "x":
		m.choose(opts)
	case "enter":
		// On the single-choice steps enter picks the highlighted option first
		if m.state.Step != types.StepDataAvailability {
			m.choose(opts)
		}
		m.next()
	case "right", "l", "tab":
		m.next()
	}
	return m, nil
}

func (m *Wizard) choose(opts []option) {
	if m.cursor >= len(opts) {
		return
	}
	if err := m.state.SelectAnswer(m.state.Step, opts[m.cursor].value, m.cfg.Catalog); err != nil {
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
}

func (m *Wizard) next() {
	if !m.state.Advance() {
		m.errMsg = "Select at least one option to continue."
		return
	}
	m.errMsg = ""
	m.cursor = 0
}

func (m *Wizard) View() string {
	if m.quit {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Compliance Readiness Checker"))
	b.WriteString("\n")
	b.WriteString(m.progress())
	b.WriteString("\n\n")

	if m.state.ResultsVisible {
		b.WriteString(RenderAssessment(m.state.Assessment(m.cfg)))
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("← back · r start over · q quit"))
		return b.String()
	}

	for i, o := range m.options() {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("› ")
		}
		mark := "( ) "
		if m.state.Step == types.StepDataAvailability {
			mark = "[ ] "
		}
		line := o.label
		if o.note != "" {
			line += hintStyle.Render("  " + o.note)
		}
		if m.selected(o) {
			mark = strings.Replace(mark, " ", "x", 1)
			line = selectedStyle.Render(o.label)
			if o.note != "" {
				line += hintStyle.Render("  " + o.note)
			}
		}
		b.WriteString(cursor + mark + line + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n" + warningStyle.Render(m.errMsg) + "\n")
	}

	hint := "↑/↓ move · enter choose · ← back · q quit"
	if m.state.Step == types.StepDataAvailability {
		hint = "↑/↓ move · space toggle · enter view results · ← back · q quit"
	}
	b.WriteString("\n" + hintStyle.Render(hint))
	return b.String()
}

func (m *Wizard) progress() string {
	parts := make([]string, 0, types.StepCount)
	for _, s := range types.AllWizardSteps() {
		label := fmt.Sprintf("%d. %s", s.Number(), s.Label())
		switch {
		case s == m.state.Step && !m.state.ResultsVisible:
			label = cursorStyle.Render(label)
		case s < m.state.Step || m.state.ResultsVisible:
			label = selectedStyle.Render(label)
		default:
			label = hintStyle.Render(label)
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, hintStyle.Render(" → "))
}

// RenderAssessment draws the readiness report in a box
func RenderAssessment(a *model.Assessment) string {
	band := bandStyle(a.Band.String())

	lines := []string{
		band.Render(fmt.Sprintf("%d/100  %s", a.Score, a.Band.Label())),
		meter(a.Score, 40),
		"",
		titleStyle.Render("Missing Data Categories"),
	}
	if len(a.Missing) == 0 {
		lines = append(lines, "  All data categories are available.")
	}
	for _, c := range a.Missing {
		lines = append(lines, "  • "+string(c))
	}

	lines = append(lines, "", titleStyle.Render("Risk Areas"))
	for _, note := range a.RiskNotes {
		lines = append(lines, warningStyle.Render("  ! "+note))
	}

	lines = append(lines, "", titleStyle.Render("Recommended Next Steps"))
	for i, step := range a.NextSteps {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, step))
	}

	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func meter(score, width int) string {
	filled := score * width / 100
	return bandStyle(types.ReadinessBandFor(score).String()).Render(strings.Repeat("█", filled)) +
		hintStyle.Render(strings.Repeat("░", width-filled))
}
