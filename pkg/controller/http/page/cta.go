package page

import (
	"fmt"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// CTA renders the qualification stepper. Before it starts only the pitch is shown.
func CTA(c model.CTAContent, st *usecase.QualificationState) g.Node {
	q := st.Qualification
	return Section(
		ID("cta"),
		Div(
			Class("container"),
			sectionHeading(c.Headline, c.Intro),
			Div(
				Class("grid"),
				Div(
					Class("card"),
					Ul(g.Group(g.Map(c.Benefits, func(b string) g.Node { return Li(g.Text("✓ " + b)) }))),
				),
				Div(
					Class("card"),
					ctaBody(c, st, q),
				),
			),
		),
	)
}

func ctaBody(c model.CTAContent, st *usecase.QualificationState, q *model.Qualification) g.Node {
	switch {
	case q.ResultVisible:
		return g.Group([]g.Node{
			H3(g.Text("Your compliance package is ready")),
			P(g.Text(st.Summary)),
			Ul(g.Group(g.Map(c.Perks, func(p string) g.Node { return Li(g.Text(p)) }))),
			postButton("/cta/reset", "", "", "", false, g.Text("Start Over")),
		})

	case !q.Started():
		return postButton("/cta/start", "", "", "primary", false, g.Text("Start Free Assessment"))

	case q.Pending:
		return P(Class("typing"), Role("status"), g.Text("Analyzing your answer…"))

	case st.Question != nil:
		question := st.Question
		return g.Group([]g.Node{
			P(Class("lead"), g.Textf("Question %d of %d", q.Step+1, st.Total)),
			Div(Class("meter"), Div(Style(fmt.Sprintf("width: %d%%", q.Step*100/st.Total)))),
			H3(g.Text(question.Prompt)),
			g.Group(g.Map(question.Options, func(opt string) g.Node {
				return postButton("/cta/answer", "option", opt, "option", false, g.Text(opt))
			})),
		})

	default:
		return g.Group(nil)
	}
}
