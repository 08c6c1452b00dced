package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
)

// SessionID is a UUID-based identifier for Session
type SessionID string

// NewSessionID generates a new UUID v4 SessionID
func NewSessionID() SessionID {
	return SessionID(uuid.New().String())
}

// Validate checks the ID is a well-formed UUID
func (id SessionID) Validate() error {
	if _, err := uuid.Parse(string(id)); err != nil {
		return goerr.Wrap(ErrInvalidSessionID, err.Error(), goerr.V(SessionIDKey, id))
	}
	return nil
}

func (id SessionID) String() string {
	return string(id)
}

// Session bundles the interactive state of every landing page section for one visitor
type Session struct {
	ID            SessionID
	Wizard        *WizardState
	Chat          *Conversation
	Qualification *Qualification
	DashboardMode types.DashboardMode
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSession creates a session with every section in its initial state
func NewSession(welcome string, now time.Time) *Session {
	return &Session{
		ID:            NewSessionID(),
		Wizard:        NewWizardState(),
		Chat:          NewConversation(welcome, now),
		Qualification: NewQualification(),
		DashboardMode: types.DefaultDashboardMode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	return &Session{
		ID:            s.ID,
		Wizard:        s.Wizard.Clone(),
		Chat:          s.Chat.Clone(),
		Qualification: s.Qualification.Clone(),
		DashboardMode: s.DashboardMode,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
