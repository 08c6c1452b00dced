package page

import (
	"strconv"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Timeline renders the regulatory deadline list. Region tabs and the delay
// simulation are plain links so the section works without JavaScript.
func Timeline(v *usecase.TimelineView, q Query) g.Node {
	toggled := q
	toggled.Delay = !q.Delay

	return Section(
		ID("timeline"),
		Div(
			Class("container"),
			sectionHeading("Regulatory Deadline Timeline", "Never miss a submission. See what is due next in each jurisdiction."),
			Div(
				Class("regions"),
				g.Group(g.Map(v.Regions, func(r model.TimelineRegion) g.Node {
					selected := q
					selected.Region = r.Key
					return A(
						Href(selected.URL("timeline")),
						g.If(r.Key == v.Region.Key, Class("current")),
						g.Text(r.Label),
					)
				})),
				A(
					Class("button"),
					Href(toggled.URL("timeline")),
					g.If(v.SimulateDelay, g.Text("Stop Simulation")),
					g.If(!v.SimulateDelay, g.Text("Simulate Manual Delay")),
				),
			),
			g.If(v.SimulateDelay, P(Class("late"), g.Text("Manual processing delays push urgent submissions past their deadlines."))),
			Table(
				THead(Tr(
					Th(g.Text("Report")),
					Th(g.Text("Regulator")),
					Th(g.Text("Deadline")),
					Th(g.Text("Days Left")),
					Th(g.Text("Frequency")),
					Th(g.Text("Penalty Risk")),
				)),
				TBody(g.Group(g.Map(v.Events, timelineRow))),
			),
			timelineSummary(v),
		),
	)
}

func timelineRow(e usecase.TimelineEntry) g.Node {
	return g.Group([]g.Node{
		Tr(
			g.If(e.Late, Class("overdue")),
			Td(
				Strong(g.Text(e.Report)),
				Div(Class("lead"), g.Text(e.Description)),
			),
			Td(g.Text(e.Regulator)),
			Td(g.Text(e.Deadline)),
			Td(
				g.If(!e.Late, g.Text(strconv.Itoa(e.DaysRemaining))),
				g.If(e.Late, Span(Class("late"), g.Text("LATE"))),
			),
			Td(g.Text(e.Frequency)),
			Td(Class("risk-"+string(e.Risk)), g.Text(e.Badge)),
		),
		Tr(
			Class("notice"),
			Td(
				g.Attr("colspan", "6"),
				g.If(e.Late, Class("notice-late")),
				Strong(g.Text(e.Notice.Title)),
				P(g.Text(e.Notice.Text)),
			),
		),
	})
}

func timelineSummary(v *usecase.TimelineView) g.Node {
	status := "All reports are on schedule"
	if v.SimulateDelay {
		status = "Late submission simulation is active"
	}
	return Div(
		Class("summary"),
		P(g.Textf("Showing %d reports for %s", len(v.Events), v.Region.Label)),
		P(Class("lead"), g.Text(status)),
		g.If(v.NextDeadline != "", P(g.Text("Next Deadline: "), Strong(g.Text(v.NextDeadline)))),
	)
}
