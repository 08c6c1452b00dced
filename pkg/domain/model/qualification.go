package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// QualificationNotStarted is the step index before the visitor starts the CTA assessment
const QualificationNotStarted = -1

// Question is one step of the call-to-action qualification
type Question struct {
	Prompt  string   `yaml:"question" json:"question"`
	Options []string `yaml:"options" json:"options"`
}

// Qualification is the call-to-action stepper of one visitor. Answers[i]
// is the answer to question i. While Pending, the recorded answer is being
// "processed" and further answers are ignored.
type Qualification struct {
	Step          int
	Answers       []string
	ResultVisible bool
	Pending       bool
}

// NewQualification returns a stepper that has not started yet
func NewQualification() *Qualification {
	return &Qualification{Step: QualificationNotStarted}
}

// Started reports whether the first question has been shown
func (q *Qualification) Started() bool {
	return q.Step != QualificationNotStarted || q.ResultVisible
}

// Start shows the first question. It returns false when already started.
func (q *Qualification) Start() bool {
	if q.Started() {
		return false
	}
	q.Step = 0
	return true
}

// Answer records option for the current question and marks the stepper
// pending until Proceed is called. It returns false without error when an
// answer is already being processed or the result is shown.
func (q *Qualification) Answer(option string, questions []Question) (bool, error) {
	if !q.Started() {
		return false, goerr.Wrap(ErrNotStarted, "answer before start", goerr.V(OptionKey, option))
	}
	if q.Pending || q.ResultVisible {
		return false, nil
	}
	if q.Step < 0 || q.Step >= len(questions) {
		return false, goerr.Wrap(ErrInvalidStep, "no question at step", goerr.V(StepKey, q.Step))
	}
	if !slices.Contains(questions[q.Step].Options, option) {
		return false, goerr.Wrap(ErrInvalidOption, "unknown option",
			goerr.V(StepKey, q.Step), goerr.V(OptionKey, option))
	}

	q.Answers = append(q.Answers, option)
	q.Pending = true
	return true, nil
}

// Proceed settles a pending answer: the next question, or the result after the last one
func (q *Qualification) Proceed(total int) {
	if !q.Pending {
		return
	}
	q.Pending = false
	if q.Step < total-1 {
		q.Step++
		return
	}
	q.ResultVisible = true
}

// Reset returns to the not-started state
func (q *Qualification) Reset() {
	*q = *NewQualification()
}

// Answered returns the answer to question i, or "" when unanswered
func (q *Qualification) Answered(i int) string {
	if i < 0 || i >= len(q.Answers) {
		return ""
	}
	return q.Answers[i]
}

// Clone returns a deep copy
func (q *Qualification) Clone() *Qualification {
	if q == nil {
		return nil
	}
	copied := *q
	copied.Answers = slices.Clone(q.Answers)
	return &copied
}
