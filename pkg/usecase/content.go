package usecase

import (
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// ContentUseCase serves the read-only sections of the landing page
type ContentUseCase struct {
	uc *UseCases
}

// Site returns the whole content document
func (c *ContentUseCase) Site() *model.Content {
	return c.uc.content
}

// TimelineView is the deadline list of one region
type TimelineView struct {
	Region        model.TimelineRegion
	Regions       []model.TimelineRegion
	SimulateDelay bool
	Events        []TimelineEntry
	// NextDeadline is the deadline of the most urgent event, empty without events
	NextDeadline string
}

// TimelineEntry is an event with its simulated status
type TimelineEntry struct {
	model.TimelineEvent
	Late   bool
	Risk   types.PenaltyRisk
	Badge  string
	Notice model.Notice
}

// Timeline returns the events of region sorted by urgency. Unknown regions
// show the default region.
func (c *ContentUseCase) Timeline(region string, simulateDelay bool) *TimelineView {
	t := c.uc.content.Timeline
	selected, _ := t.Region(region)
	brand := c.uc.content.Brand.Name + c.uc.content.Brand.Suffix

	view := &TimelineView{
		Region:        selected,
		Regions:       t.Regions,
		SimulateDelay: simulateDelay,
	}
	for _, e := range t.Events(selected.Key) {
		late := e.IsLate(simulateDelay, t.LateThresholdDays)
		view.Events = append(view.Events, TimelineEntry{
			TimelineEvent: e,
			Late:          late,
			Risk:          e.Risk(late),
			Badge:         e.Badge(late),
			Notice:        e.Notice(late, brand),
		})
	}
	if len(view.Events) > 0 {
		view.NextDeadline = view.Events[0].Deadline
	}
	return view
}

// CoverageView is the coverage map with one region selected
type CoverageView struct {
	Selected model.CoverageRegion
	Regions  []model.CoverageRegion
}

// Coverage selects region id, falling back to the default region
func (c *ContentUseCase) Coverage(id string) *CoverageView {
	return &CoverageView{
		Selected: c.uc.content.Coverage.Region(id),
		Regions:  c.uc.content.Coverage.Regions,
	}
}

// Comparison returns the manual vs traditional vs bot table
func (c *ContentUseCase) Comparison() model.Comparison {
	return c.uc.content.Comparison
}
