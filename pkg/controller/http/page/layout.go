// Package page renders the landing page as server-side HTML.
package page

import (
	"net/url"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// Query holds the lookup selections carried in the page URL
type Query struct {
	Region   string
	Delay    bool
	Coverage string
}

// URL builds a link to the landing page with q applied, jumping to anchor
func (q Query) URL(anchor string) string {
	v := url.Values{}
	if q.Region != "" {
		v.Set("region", q.Region)
	}
	if q.Delay {
		v.Set("delay", "1")
	}
	if q.Coverage != "" {
		v.Set("coverage", q.Coverage)
	}

	u := "/"
	if len(v) > 0 {
		u += "?" + v.Encode()
	}
	if anchor != "" {
		u += "#" + anchor
	}
	return u
}

// View is everything the landing page renders
type View struct {
	Query          Query
	Flash          string
	Site           *model.Content
	Checker        *usecase.CheckerState
	Chat           *model.Conversation
	QuickQuestions []string
	CTA            *usecase.QualificationState
	Dashboard      *usecase.DashboardView
	FormatMetric   func(model.Metric) string
	FormatRatio    func(float64) string
	Timeline       *usecase.TimelineView
	Coverage       *usecase.CoverageView
}

// waiting reports whether a bot reply is still pending, so the page should poll
func (d *View) waiting() bool {
	return (d.Chat != nil && d.Chat.Pending()) || (d.CTA != nil && d.CTA.Qualification.Pending)
}

// Landing renders the whole landing page
func Landing(d *View) g.Node {
	site := d.Site
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("description"), Content(site.Hero.Subheadline)),
				// Without JavaScript the page polls until the bot has answered
				g.If(d.waiting(), Meta(g.Attr("http-equiv", "refresh"), Content("1"))),
				TitleEl(g.Text(site.Brand.Name+site.Brand.Suffix+" | Regulatory Reporting Automation")),
				Link(Rel("stylesheet"), Href("/static/site.css")),
			),
			Body(
				siteHeader(site),
				Main(
					g.If(d.Flash != "", Div(Class("container"), P(Class("flash"), Role("alert"), g.Text(d.Flash)))),
					Hero(site.Hero),
					Timeline(d.Timeline, d.Query),
					Chat(d.Chat, d.QuickQuestions),
					Checker(d.Checker),
					Dashboard(d.Dashboard, d.FormatMetric, d.FormatRatio),
					Comparison(site.Comparison),
					Coverage(d.Coverage, d.Query),
					CTA(site.CTA, d.CTA),
				),
				siteFooter(site),
			),
		),
	)
}

func siteHeader(site *model.Content) g.Node {
	return Header(
		Class("site"),
		Div(
			Class("container"),
			A(Class("brand"), Href("/"), g.Text(site.Brand.Name), Span(g.Text(site.Brand.Suffix))),
			Nav(
				Class("main"),
				g.Group(g.Map(site.Navigation, func(item model.NavItem) g.Node {
					return A(Href(item.Href), g.Text(item.Label))
				})),
			),
		),
	)
}

func siteFooter(site *model.Content) g.Node {
	return Footer(
		Class("site"),
		Div(
			Class("container"),
			P(g.Text(site.Footer.Disclaimer)),
			P(g.Text("© "+site.Footer.Copyright)),
		),
	)
}

// postButton is a single-button form posting name=value to action
func postButton(action, name, value, class string, disabled bool, children ...g.Node) g.Node {
	return Form(
		Class("inline"),
		Method("post"),
		Action(action),
		g.If(name != "", Input(Type("hidden"), Name(name), Value(value))),
		Button(
			Type("submit"),
			g.If(class != "", Class(class)),
			g.If(disabled, Disabled()),
			g.Group(children),
		),
	)
}

func sectionHeading(title, lead string) g.Node {
	return g.Group([]g.Node{
		H2(g.Text(title)),
		g.If(lead != "", P(Class("lead"), g.Text(lead))),
	})
}
