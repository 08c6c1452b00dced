package page

import (
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Hero(h model.Hero) g.Node {
	return Section(
		ID("platform"),
		Class("hero"),
		Div(
			Class("container"),
			Span(Class("badge"), g.Text(h.Badge)),
			H1(
				g.Text(h.Lead+" "),
				Strong(g.Text(h.Highlight)),
				g.Text(" "+h.Tail),
			),
			P(Class("lead"), g.Text(h.Subheadline)),
			Div(
				A(Class("button"), Href("#checker"), g.Text("Check Your Readiness")),
				g.Text(" "),
				A(Class("button"), Href("#chat"), g.Text("Ask the Compliance Bot")),
			),
			Div(
				Class("stats"),
				g.Group(g.Map(h.Stats, func(s model.Stat) g.Node {
					return Div(
						Div(Class("value"), g.Text(s.Value)),
						Div(Class("label"), g.Text(s.Label)),
					)
				})),
			),
		),
	)
}
