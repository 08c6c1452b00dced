package page

import (
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Comparison renders the feature table; each cell is colored by its rating
func Comparison(c model.Comparison) g.Node {
	return Section(
		ID("comparison"),
		Div(
			Class("container"),
			sectionHeading("Why Reporting.bot?", "How automated reporting stacks up against spreadsheets and legacy software."),
			Table(
				THead(Tr(
					Th(g.Text("Category")),
					g.Group(g.Map(c.Columns, func(col string) g.Node {
						return Th(g.Text(col))
					})),
				)),
				TBody(g.Group(g.Map(c.Rows, func(row model.ComparisonRow) g.Node {
					return Tr(
						Th(g.Text(row.Category)),
						g.Group(g.Map(row.Cells(), func(cell model.ComparisonCell) g.Node {
							return Td(Class("rating-"+string(cell.Score)), g.Text(cell.Value))
						})),
					)
				}))),
			),
		),
	)
}
