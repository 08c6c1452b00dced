package usecase

import (
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
)

// Sentinel errors for use case layer
var (
	ErrInvalidInput      = goerr.New("invalid input")
	ErrIncompleteAnswers = goerr.New("answers do not complete the readiness wizard")
)

// Context keys for error values
const (
	SessionIDKey = model.SessionIDKey
	ModeKey      = "mode"
)

var validationErrors = []error{
	ErrInvalidInput,
	ErrIncompleteAnswers,
	model.ErrInvalidAnswer,
	model.ErrInvalidStep,
	model.ErrUnknownCategory,
	model.ErrInvalidOption,
	model.ErrNotStarted,
}

// IsValidationError reports whether err was caused by visitor input rather than by the server
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
