package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrInvalidAnswer        = goerr.New("invalid answer")
	ErrInvalidStep          = goerr.New("invalid wizard step")
	ErrUnknownCategory      = goerr.New("unknown data category")
	ErrInvalidScoringConfig = goerr.New("invalid scoring configuration")
	ErrInvalidOption        = goerr.New("option does not belong to the current question")
	ErrNotStarted           = goerr.New("qualification has not started")
	ErrInvalidContent       = goerr.New("invalid site content")
	ErrInvalidSessionID     = goerr.New("invalid session ID")
)

// Lookup errors
var (
	ErrSessionNotFound = goerr.New("session not found")
	ErrSessionExists   = goerr.New("session already exists")
)

// Context keys for error values
const (
	StepKey      = "step"
	ValueKey     = "value"
	CategoryKey  = "category"
	OptionKey    = "option"
	SectionKey   = "section"
	SessionIDKey = "session_id"
)
