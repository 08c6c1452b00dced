package page

import (
	"fmt"
	"math"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// ratioScale is the chart value drawn as a full-width bar
const ratioScale = 200.0

// Dashboard renders the sample report in the selected mode
func Dashboard(v *usecase.DashboardView, formatMetric func(model.Metric) string, formatRatio func(float64) string) g.Node {
	ds := v.Dataset
	return Section(
		ID("dashboard"),
		Div(
			Class("container"),
			sectionHeading("Live Report Preview", "Compare a manually prepared report with one generated by Reporting.bot."),
			Div(
				Class("regions"),
				g.Group(g.Map([]types.DashboardMode{types.DashboardManual, types.DashboardBot}, func(m types.DashboardMode) g.Node {
					class := "option"
					if m == v.Mode {
						class += " selected"
					}
					return postButton("/dashboard/mode", "mode", m.String(), class, false, g.Text(m.Label()))
				})),
			),
			Div(
				Class("card band-"+bannerBand(v.Mode)),
				Strong(g.Text(ds.Banner.Title)),
				P(g.Text(ds.Banner.Detail)),
				Span(Class("badge"), g.Text(ds.Banner.Speed)),
			),
			Div(
				Class("grid"),
				metricCard("Capital Adequacy", ds.CapitalAdequacy, formatMetric),
				metricCard("Liquidity", ds.Liquidity, formatMetric),
				metricCard("Exposures", ds.Exposures, formatMetric),
			),
			Div(
				Class("stats"),
				summaryStat("Errors Detected", fmt.Sprint(ds.Errors), ds.ErrorsNote),
				summaryStat("Preparation Time", ds.PrepTime, ds.PrepTimeNote),
				summaryStat("Data Accuracy", ds.Accuracy, ds.AccuracyNote),
			),
			Div(
				Class("card"),
				H3(g.Text("Key Regulatory Ratios")),
				g.Group(g.Map(ds.Ratios, func(p model.RatioPoint) g.Node {
					return ratioBar(p, formatRatio)
				})),
			),
		),
	)
}

func bannerBand(mode types.DashboardMode) string {
	if mode == types.DashboardManual {
		return types.ReadinessNeedsImprovement.String()
	}
	return types.ReadinessGood.String()
}

func metricCard(title string, metrics []model.Metric, formatMetric func(model.Metric) string) g.Node {
	return Div(
		Class("card"),
		H3(g.Text(title)),
		Table(TBody(g.Group(g.Map(metrics, func(m model.Metric) g.Node {
			return Tr(Td(g.Text(m.Label)), Td(Strong(g.Text(formatMetric(m)))))
		})))),
	)
}

func summaryStat(label, value, note string) g.Node {
	return Div(
		Strong(g.Text(value)),
		Span(g.Text(label)),
		g.If(note != "", Span(Class("lead"), g.Text(note))),
	)
}

func ratioBar(p model.RatioPoint, formatRatio func(float64) string) g.Node {
	width := math.Min(100, p.Value/ratioScale*100)
	class := "band-" + types.ReadinessGood.String()
	if !p.MeetsMinimum() {
		class = "band-" + types.ReadinessNeedsImprovement.String()
	}
	return Div(
		Span(g.Textf("%s: %s (min %s)", p.Name, formatRatio(p.Value), formatRatio(p.Min))),
		Div(Class("meter "+class), Div(Style(fmt.Sprintf("width: %.0f%%", width)))),
	)
}
