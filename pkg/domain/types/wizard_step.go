package types

import "fmt"

// WizardStep is the index of a readiness wizard step. Valid steps are 0..3.
type WizardStep int

const (
	StepInstitution WizardStep = iota
	StepJurisdiction
	StepReportingPeriod
	StepDataAvailability
)

// StepCount is the number of wizard steps
const StepCount = 4

// FirstStep and LastStep bound the step index
const (
	FirstStep = StepInstitution
	LastStep  = StepDataAvailability
)

// AllWizardSteps returns all steps in order
func AllWizardSteps() []WizardStep {
	return []WizardStep{
		StepInstitution,
		StepJurisdiction,
		StepReportingPeriod,
		StepDataAvailability,
	}
}

// IsValid checks the step is within [FirstStep, LastStep]
func (s WizardStep) IsValid() bool {
	return s >= FirstStep && s <= LastStep
}

// Clamp forces the step into [FirstStep, LastStep]
func (s WizardStep) Clamp() WizardStep {
	if s < FirstStep {
		return FirstStep
	}
	if s > LastStep {
		return LastStep
	}
	return s
}

// Label returns the heading shown for the step
func (s WizardStep) Label() string {
	switch s {
	case StepInstitution:
		return "Institution Type"
	case StepJurisdiction:
		return "Jurisdiction"
	case StepReportingPeriod:
		return "Reporting Period"
	case StepDataAvailability:
		return "Data Availability"
	default:
		return ""
	}
}

// Number returns the 1-based position used in "Step 2 of 4"
func (s WizardStep) Number() int {
	return int(s) + 1
}

func (s WizardStep) String() string {
	return fmt.Sprintf("step-%d", int(s))
}
