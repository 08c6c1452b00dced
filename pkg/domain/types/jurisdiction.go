package types

import (
	"fmt"
	"strings"
)

// Jurisdiction is the primary regulatory jurisdiction of an institution
type Jurisdiction string

const (
	JurisdictionEU Jurisdiction = "eu"
	JurisdictionUK Jurisdiction = "uk"
	JurisdictionUS Jurisdiction = "us"
	JurisdictionSG Jurisdiction = "sg"
	JurisdictionHK Jurisdiction = "hk"
	JurisdictionAU Jurisdiction = "au"
)

var jurisdictionLabels = map[Jurisdiction]string{
	JurisdictionEU: "European Union",
	JurisdictionUK: "United Kingdom",
	JurisdictionUS: "United States",
	JurisdictionSG: "Singapore",
	JurisdictionHK: "Hong Kong",
	JurisdictionAU: "Australia",
}

// AllJurisdictions returns all jurisdictions in display order
func AllJurisdictions() []Jurisdiction {
	return []Jurisdiction{
		JurisdictionEU,
		JurisdictionUK,
		JurisdictionUS,
		JurisdictionSG,
		JurisdictionHK,
		JurisdictionAU,
	}
}

// IsValid checks if the jurisdiction is one of the known values
func (j Jurisdiction) IsValid() bool {
	_, ok := jurisdictionLabels[j]
	return ok
}

// Label returns the human readable name
func (j Jurisdiction) Label() string {
	return jurisdictionLabels[j]
}

func (j Jurisdiction) String() string {
	return string(j)
}

// ParseJurisdiction accepts either the code ("eu") or the label ("European Union"), case-insensitively
func ParseJurisdiction(s string) (Jurisdiction, error) {
	s = strings.TrimSpace(s)
	for _, j := range AllJurisdictions() {
		if strings.EqualFold(s, string(j)) || strings.EqualFold(s, j.Label()) {
			return j, nil
		}
	}
	return "", fmt.Errorf("invalid jurisdiction: %s", s)
}
