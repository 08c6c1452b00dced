package page

import (
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Coverage renders the supported jurisdictions with the selected one expanded
func Coverage(v *usecase.CoverageView, q Query) g.Node {
	sel := v.Selected
	return Section(
		ID("coverage"),
		Div(
			Class("container"),
			sectionHeading("Global Regulatory Coverage", "Pre-built templates for every major supervisory regime."),
			Div(
				Class("regions"),
				g.Group(g.Map(v.Regions, func(r model.CoverageRegion) g.Node {
					link := q
					link.Coverage = r.ID
					return A(
						Href(link.URL("coverage")),
						g.If(r.ID == sel.ID, Class("current")),
						g.Text(r.Flag+" "+r.Name),
					)
				})),
			),
			Div(
				Class("card"),
				H3(g.Text(sel.Flag+" "+sel.Name)),
				Div(
					Class("grid"),
					Div(
						Strong(g.Text("Regulators")),
						Ul(g.Group(g.Map(sel.Regulators, func(r string) g.Node { return Li(g.Text(r)) }))),
					),
					Div(
						Strong(g.Text("Supported Reports")),
						Ul(g.Group(g.Map(sel.Reports, func(r string) g.Node { return Li(g.Text(r)) }))),
					),
				),
			),
		),
	)
}
