package types

import (
	"fmt"
	"strings"
)

// ReportingPeriod is the primary reporting frequency of an institution
type ReportingPeriod string

const (
	ReportingMonthly   ReportingPeriod = "monthly"
	ReportingQuarterly ReportingPeriod = "quarterly"
	ReportingAnnual    ReportingPeriod = "annual"
)

// DefaultReportingPeriod is preselected when a wizard starts
const DefaultReportingPeriod = ReportingQuarterly

// AllReportingPeriods returns all reporting periods in display order
func AllReportingPeriods() []ReportingPeriod {
	return []ReportingPeriod{
		ReportingMonthly,
		ReportingQuarterly,
		ReportingAnnual,
	}
}

// IsValid checks if the reporting period is valid
func (p ReportingPeriod) IsValid() bool {
	switch p {
	case ReportingMonthly,
		ReportingQuarterly,
		ReportingAnnual:
		return true
	default:
		return false
	}
}

// Label returns the capitalised period name
func (p ReportingPeriod) Label() string {
	switch p {
	case ReportingMonthly:
		return "Monthly"
	case ReportingQuarterly:
		return "Quarterly"
	case ReportingAnnual:
		return "Annual"
	default:
		return ""
	}
}

// Examples lists typical reports filed at this frequency
func (p ReportingPeriod) Examples() string {
	switch p {
	case ReportingMonthly:
		return "LCR, ALMM, AnaCredit"
	case ReportingQuarterly:
		return "COREP, FINREP, NSFR"
	case ReportingAnnual:
		return "Annual accounts, Pillar 3"
	default:
		return ""
	}
}

func (p ReportingPeriod) String() string {
	return string(p)
}

// ParseReportingPeriod parses a string into a ReportingPeriod, case-insensitively
func ParseReportingPeriod(s string) (ReportingPeriod, error) {
	p := ReportingPeriod(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", fmt.Errorf("invalid reporting period: %s", s)
	}
	return p, nil
}
