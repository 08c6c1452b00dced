package types

// ReadinessBand classifies an assessment score
type ReadinessBand string

const (
	ReadinessGood             ReadinessBand = "good"
	ReadinessModerate         ReadinessBand = "moderate"
	ReadinessNeedsImprovement ReadinessBand = "needs_improvement"
)

// Score thresholds for readiness bands
const (
	GoodReadinessThreshold     = 80
	ModerateReadinessThreshold = 60
)

// ReadinessBandFor maps a score in [0,100] to its band
func ReadinessBandFor(score int) ReadinessBand {
	switch {
	case score >= GoodReadinessThreshold:
		return ReadinessGood
	case score >= ModerateReadinessThreshold:
		return ReadinessModerate
	default:
		return ReadinessNeedsImprovement
	}
}

// Label returns the badge text for the band
func (b ReadinessBand) Label() string {
	switch b {
	case ReadinessGood:
		return "Good Readiness"
	case ReadinessModerate:
		return "Moderate Readiness"
	case ReadinessNeedsImprovement:
		return "Needs Improvement"
	default:
		return ""
	}
}

func (b ReadinessBand) String() string {
	return string(b)
}
