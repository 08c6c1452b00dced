package types

import (
	"fmt"
	"strings"
)

// DashboardMode selects which dataset the report dashboard shows
type DashboardMode string

const (
	DashboardManual DashboardMode = "manual"
	DashboardBot    DashboardMode = "bot"
)

// DefaultDashboardMode is shown to new sessions
const DefaultDashboardMode = DashboardBot

// IsValid checks if the dashboard mode is valid
func (m DashboardMode) IsValid() bool {
	switch m {
	case DashboardManual,
		DashboardBot:
		return true
	default:
		return false
	}
}

// Label returns the toggle button text
func (m DashboardMode) Label() string {
	switch m {
	case DashboardManual:
		return "Manual"
	case DashboardBot:
		return "Bot-Generated"
	default:
		return ""
	}
}

func (m DashboardMode) String() string {
	return string(m)
}

// ParseDashboardMode parses a string into a DashboardMode
func ParseDashboardMode(s string) (DashboardMode, error) {
	m := DashboardMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid dashboard mode: %s", s)
	}
	return m, nil
}

// PenaltyRisk rates the consequence of missing a regulatory deadline
type PenaltyRisk string

const (
	PenaltyLow    PenaltyRisk = "low"
	PenaltyMedium PenaltyRisk = "medium"
	PenaltyHigh   PenaltyRisk = "high"
)

// IsValid checks if the penalty risk is valid
func (p PenaltyRisk) IsValid() bool {
	switch p {
	case PenaltyLow,
		PenaltyMedium,
		PenaltyHigh:
		return true
	default:
		return false
	}
}

// Rating grades a cell of the comparison table
type Rating string

const (
	RatingGood Rating = "good"
	RatingMid  Rating = "mid"
	RatingBad  Rating = "bad"
)

// IsValid checks if the rating is valid
func (r Rating) IsValid() bool {
	switch r {
	case RatingGood,
		RatingMid,
		RatingBad:
		return true
	default:
		return false
	}
}
