package page

import (
	"fmt"
	"strconv"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Checker renders the readiness wizard: the current step, or the report once completed
func Checker(st *usecase.CheckerState) g.Node {
	w := st.Wizard
	return Section(
		ID("checker"),
		Div(
			Class("container"),
			sectionHeading("Compliance Readiness Checker", "Answer four quick questions to see how ready your data is for automated regulatory reporting."),
			Div(
				Class("card"),
				stepIndicator(w),
				g.If(w.ResultsVisible, assessmentReport(st.Assessment)),
				g.If(!w.ResultsVisible, stepBody(st)),
				wizardControls(st),
			),
		),
	)
}

func stepIndicator(w *model.WizardState) g.Node {
	return Ol(
		Class("steps"),
		g.Group(g.Map(types.AllWizardSteps(), func(s types.WizardStep) g.Node {
			class := ""
			switch {
			case s < w.Step || w.ResultsVisible:
				class = "done"
			case s == w.Step:
				class = "current"
			}
			return Li(
				g.If(class != "", Class(class)),
				g.Textf("%d. %s", s.Number(), s.Label()),
			)
		})),
	)
}

func stepBody(st *usecase.CheckerState) g.Node {
	w := st.Wizard
	switch w.Step {
	case types.StepInstitution:
		return stepOptions(w.Step, "What type of institution are you?", g.Map(types.AllInstitutionTypes(), func(t types.InstitutionType) g.Node {
			return optionButton(w.Step, string(t), t == w.InstitutionType, g.Text(t.Label()))
		}))

	case types.StepJurisdiction:
		return stepOptions(w.Step, "Where are you regulated?", g.Map(types.AllJurisdictions(), func(j types.Jurisdiction) g.Node {
			return optionButton(w.Step, string(j), j == w.Jurisdiction, g.Text(j.Label()))
		}))

	case types.StepReportingPeriod:
		return stepOptions(w.Step, "What is your primary reporting frequency?", g.Map(types.AllReportingPeriods(), func(p types.ReportingPeriod) g.Node {
			return optionButton(w.Step, string(p), p == w.ReportingPeriod,
				Strong(g.Text(p.Label())), g.Text(" "), Span(Class("lead"), g.Text(p.Examples())))
		}))

	default:
		return stepOptions(w.Step, "Which data categories are readily available?", g.Map(st.Catalog, func(c model.DataCategory) g.Node {
			selected := w.IsSelected(c)
			mark := "☐ "
			if selected {
				mark = "☑ "
			}
			return optionButton(w.Step, string(c), selected, g.Text(mark+string(c)))
		}))
	}
}

func stepOptions(step types.WizardStep, question string, options []g.Node) g.Node {
	return Div(
		H3(g.Text(question)),
		P(Class("lead"), g.Textf("Step %d of %d: %s", step.Number(), types.StepCount, step.Label())),
		Div(Class("grid"), g.Group(options)),
	)
}

func optionButton(step types.WizardStep, value string, selected bool, children ...g.Node) g.Node {
	class := "option"
	if selected {
		class += " selected"
	}
	return Form(
		Method("post"),
		Action("/checker/answer"),
		Input(Type("hidden"), Name("step"), Value(strconv.Itoa(int(step)))),
		Input(Type("hidden"), Name("value"), Value(value)),
		Button(
			Type("submit"),
			Class(class),
			Aria("pressed", strconv.FormatBool(selected)),
			g.Group(children),
		),
	)
}

func wizardControls(st *usecase.CheckerState) g.Node {
	w := st.Wizard
	if w.ResultsVisible {
		return Div(
			postButton("/checker/back", "", "", "", false, g.Text("Back")),
			g.Text(" "),
			postButton("/checker/reset", "", "", "primary", false, g.Text("Start Over")),
		)
	}

	next := "Continue"
	if w.Step == types.LastStep {
		next = "View Results"
	}
	return Div(
		postButton("/checker/back", "", "", "", w.Step == types.FirstStep, g.Text("Back")),
		g.Text(" "),
		postButton("/checker/next", "", "", "primary", !st.CanProceed, g.Text(next)),
	)
}

func assessmentReport(a *model.Assessment) g.Node {
	if a == nil {
		return g.Group(nil)
	}
	return Div(
		Class("report"),
		H3(g.Text("Your Readiness Report")),
		Div(Class("score"), g.Textf("%d", a.Score), Span(Class("lead"), g.Text("/100"))),
		Div(Class("meter"), Div(Style(fmt.Sprintf("width: %d%%", a.Score)))),
		P(Class("band-"+a.Band.String()), Strong(g.Text(a.Band.Label()))),
		Div(
			Class("grid"),
			Div(
				H3(g.Text("Missing Data Categories")),
				g.If(len(a.Missing) == 0, P(g.Text("All data categories are available."))),
				Ul(g.Group(g.Map(a.Missing, func(c model.DataCategory) g.Node {
					return Li(g.Text(string(c)))
				}))),
			),
			Div(
				H3(g.Text("Risk Areas")),
				Ul(g.Group(g.Map(a.RiskNotes, func(note string) g.Node {
					return Li(g.Text(note))
				}))),
			),
			Div(
				H3(g.Text("Recommended Next Steps")),
				Ol(g.Group(g.Map(a.NextSteps, func(step string) g.Node {
					return Li(g.Text(step))
				}))),
			),
		),
	)
}
