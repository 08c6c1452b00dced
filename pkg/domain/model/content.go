package model

import (
	"cmp"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// Content is the static copy and mock data of the landing page
type Content struct {
	Brand      Brand         `yaml:"brand"`
	Navigation []NavItem     `yaml:"navigation"`
	Hero       Hero          `yaml:"hero"`
	Timeline   Timeline      `yaml:"timeline"`
	Chat       ChatContent   `yaml:"chat"`
	Dashboard  Dashboard     `yaml:"dashboard"`
	Comparison Comparison    `yaml:"comparison"`
	Coverage   Coverage      `yaml:"coverage"`
	CTA        CTAContent    `yaml:"cta"`
	Footer     FooterContent `yaml:"footer"`
}

type Brand struct {
	Name   string `yaml:"name"`
	Suffix string `yaml:"suffix"`
}

type NavItem struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

type Hero struct {
	Badge       string `yaml:"badge"`
	Lead        string `yaml:"lead"`
	Highlight   string `yaml:"highlight"`
	Tail        string `yaml:"tail"`
	Subheadline string `yaml:"subheadline"`
	Stats       []Stat `yaml:"stats"`
}

type Stat struct {
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Timeline holds upcoming regulatory deadlines per region
type Timeline struct {
	DefaultRegion     string           `yaml:"default_region"`
	LateThresholdDays int              `yaml:"late_threshold_days"`
	Regions           []TimelineRegion `yaml:"regions"`
}

type TimelineRegion struct {
	Key    string          `yaml:"key"`
	Label  string          `yaml:"label"`
	Events []TimelineEvent `yaml:"events"`
}

type TimelineEvent struct {
	ID            string            `yaml:"id"`
	Report        string            `yaml:"report"`
	Regulator     string            `yaml:"regulator"`
	Deadline      string            `yaml:"deadline"`
	DaysRemaining int               `yaml:"days_remaining"`
	Frequency     string            `yaml:"frequency"`
	PenaltyRisk   types.PenaltyRisk `yaml:"penalty_risk"`
	Description   string            `yaml:"description"`
}

// IsLate reports whether the event would be missed when delays are simulated
func (e TimelineEvent) IsLate(simulateDelay bool, thresholdDays int) bool {
	return simulateDelay && e.DaysRemaining <= thresholdDays
}

// Risk is the penalty risk shown for the event; a late filing is always high
func (e TimelineEvent) Risk(late bool) types.PenaltyRisk {
	if late {
		return types.PenaltyHigh
	}
	return e.PenaltyRisk
}

// Badge is the status label of the event, OVERDUE once it is late
func (e TimelineEvent) Badge(late bool) string {
	if late {
		return "OVERDUE"
	}
	return strings.ToUpper(string(e.PenaltyRisk))
}

// Notice is the call-out shown below an event
type Notice struct {
	Title string
	Text  string
}

// Notice explains the cost of a late filing, or what automation saves otherwise
func (e TimelineEvent) Notice(late bool, brand string) Notice {
	if late {
		return Notice{
			Title: "Late Submission Impact",
			Text: "Late filing of " + e.Report + " can result in penalties up to €5M or 10% of annual turnover. " +
				"Repeated violations may trigger enhanced supervisory measures and increased reporting frequency.",
		}
	}
	return Notice{
		Title: "Automation Recommendation",
		Text:  brand + " can automate this report's preparation, validation, and submission, reducing preparation time by up to 85%.",
	}
}

// Region returns the region by key, falling back to the default region
func (t Timeline) Region(key string) (TimelineRegion, bool) {
	for _, r := range t.Regions {
		if r.Key == key {
			return r, true
		}
	}
	for _, r := range t.Regions {
		if r.Key == t.DefaultRegion {
			return r, false
		}
	}
	return TimelineRegion{}, false
}

// Events returns the events of region sorted by days remaining, soonest first
func (t Timeline) Events(key string) []TimelineEvent {
	region, _ := t.Region(key)
	events := slices.Clone(region.Events)
	slices.SortStableFunc(events, func(a, b TimelineEvent) int {
		return cmp.Compare(a.DaysRemaining, b.DaysRemaining)
	})
	return events
}

// ChatContent configures the compliance assistant demo
type ChatContent struct {
	Welcome        string      `yaml:"welcome"`
	QuickQuestions []string    `yaml:"quick_questions"`
	Rules          []ReplyRule `yaml:"rules"`
	Fallback       Reply       `yaml:"fallback"`
}

// Responder builds the keyword responder described by the content
func (c ChatContent) Responder() *Responder {
	return NewResponder(c.Rules, c.Fallback)
}

// Dashboard holds the manual and bot-generated report datasets
type Dashboard struct {
	Manual DashboardDataset `yaml:"manual"`
	Bot    DashboardDataset `yaml:"bot"`
}

// Dataset returns the dataset shown in mode
func (d Dashboard) Dataset(mode types.DashboardMode) DashboardDataset {
	if mode == types.DashboardManual {
		return d.Manual
	}
	return d.Bot
}

type DashboardDataset struct {
	Banner          Banner       `yaml:"banner"`
	CapitalAdequacy []Metric     `yaml:"capital_adequacy"`
	Liquidity       []Metric     `yaml:"liquidity"`
	Exposures       []Metric     `yaml:"exposures"`
	Errors          int          `yaml:"errors"`
	ErrorsNote      string       `yaml:"errors_note"`
	PrepTime        string       `yaml:"prep_time"`
	PrepTimeNote    string       `yaml:"prep_time_note"`
	Accuracy        string       `yaml:"accuracy"`
	AccuracyNote    string       `yaml:"accuracy_note"`
	Ratios          []RatioPoint `yaml:"ratios"`
}

type Banner struct {
	Title  string `yaml:"title"`
	Detail string `yaml:"detail"`
	Speed  string `yaml:"speed"`
}

// Metric is a named figure; Key decides how the value is formatted
type Metric struct {
	Key   string  `yaml:"key"`
	Label string  `yaml:"label"`
	Value float64 `yaml:"value"`
}

// RatioPoint is one bar of the key regulatory ratios chart
type RatioPoint struct {
	Name  string  `yaml:"name"`
	Value float64 `yaml:"value"`
	Min   float64 `yaml:"min"`
}

// MeetsMinimum reports whether the ratio satisfies its regulatory floor
func (p RatioPoint) MeetsMinimum() bool {
	return p.Value >= p.Min
}

// Comparison is the manual vs traditional vs bot feature table
type Comparison struct {
	Columns []string        `yaml:"columns"`
	Rows    []ComparisonRow `yaml:"rows"`
}

type ComparisonRow struct {
	Category    string         `yaml:"category"`
	Manual      ComparisonCell `yaml:"manual"`
	Traditional ComparisonCell `yaml:"traditional"`
	Bot         ComparisonCell `yaml:"bot"`
}

// Cells returns the row's cells in column order
func (r ComparisonRow) Cells() []ComparisonCell {
	return []ComparisonCell{r.Manual, r.Traditional, r.Bot}
}

type ComparisonCell struct {
	Value string       `yaml:"value"`
	Score types.Rating `yaml:"score"`
}

// Coverage lists the supported regulatory regions
type Coverage struct {
	DefaultRegion string           `yaml:"default_region"`
	Regions       []CoverageRegion `yaml:"regions"`
}

type CoverageRegion struct {
	ID         string   `yaml:"id"`
	Name       string   `yaml:"name"`
	Flag       string   `yaml:"flag"`
	Regulators []string `yaml:"regulators"`
	Reports    []string `yaml:"reports"`
	X          int      `yaml:"x"`
	Y          int      `yaml:"y"`
}

// Region returns the region by ID, falling back to the default region
func (c Coverage) Region(id string) CoverageRegion {
	if id == "" {
		id = c.DefaultRegion
	}
	for _, r := range c.Regions {
		if r.ID == id {
			return r
		}
	}
	for _, r := range c.Regions {
		if r.ID == c.DefaultRegion {
			return r
		}
	}
	return CoverageRegion{}
}

// CTAContent configures the call-to-action qualification stepper
type CTAContent struct {
	Headline  string     `yaml:"headline"`
	Intro     string     `yaml:"intro"`
	Questions []Question `yaml:"questions"`
	Benefits  []string   `yaml:"benefits"`
	Perks     []string   `yaml:"perks"`
}

type FooterContent struct {
	Disclaimer string `yaml:"disclaimer"`
	Copyright  string `yaml:"copyright"`
}

// Validate checks the content is complete enough to render every section
func (c *Content) Validate() error {
	if c.Brand.Name == "" {
		return goerr.Wrap(ErrInvalidContent, "brand name is required", goerr.V(SectionKey, "brand"))
	}

	if len(c.Timeline.Regions) == 0 {
		return goerr.Wrap(ErrInvalidContent, "timeline needs at least one region", goerr.V(SectionKey, "timeline"))
	}
	if _, ok := c.Timeline.Region(c.Timeline.DefaultRegion); !ok {
		return goerr.Wrap(ErrInvalidContent, "timeline default region not found",
			goerr.V(SectionKey, "timeline"), goerr.V("region", c.Timeline.DefaultRegion))
	}
	for _, r := range c.Timeline.Regions {
		for _, e := range r.Events {
			if !e.PenaltyRisk.IsValid() {
				return goerr.Wrap(ErrInvalidContent, "invalid penalty risk",
					goerr.V(SectionKey, "timeline"), goerr.V("event_id", e.ID), goerr.V("penalty_risk", e.PenaltyRisk))
			}
		}
	}

	if c.Chat.Welcome == "" || c.Chat.Fallback.Text == "" {
		return goerr.Wrap(ErrInvalidContent, "chat welcome and fallback are required", goerr.V(SectionKey, "chat"))
	}
	for _, rule := range c.Chat.Rules {
		if len(rule.All) == 0 && len(rule.Any) == 0 {
			return goerr.Wrap(ErrInvalidContent, "chat rule has no keywords",
				goerr.V(SectionKey, "chat"), goerr.V("rule", rule.Name))
		}
		for _, extra := range rule.Reply.Extras {
			if !extra.Kind.IsValid() {
				return goerr.Wrap(ErrInvalidContent, "invalid chat extra type",
					goerr.V(SectionKey, "chat"), goerr.V("rule", rule.Name), goerr.V("type", extra.Kind))
			}
		}
	}

	for _, row := range c.Comparison.Rows {
		for _, cell := range row.Cells() {
			if !cell.Score.IsValid() {
				return goerr.Wrap(ErrInvalidContent, "invalid comparison score",
					goerr.V(SectionKey, "comparison"), goerr.V("category", row.Category), goerr.V("score", cell.Score))
			}
		}
	}

	if c.Coverage.Region(c.Coverage.DefaultRegion).ID == "" {
		return goerr.Wrap(ErrInvalidContent, "coverage default region not found",
			goerr.V(SectionKey, "coverage"), goerr.V("region", c.Coverage.DefaultRegion))
	}

	if len(c.CTA.Questions) == 0 {
		return goerr.Wrap(ErrInvalidContent, "cta needs at least one question", goerr.V(SectionKey, "cta"))
	}
	for i, q := range c.CTA.Questions {
		if q.Prompt == "" || len(q.Options) == 0 {
			return goerr.Wrap(ErrInvalidContent, "cta question needs a prompt and options",
				goerr.V(SectionKey, "cta"), goerr.V("question_index", i))
		}
	}

	return nil
}
