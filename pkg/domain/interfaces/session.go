package interfaces

import (
	"context"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
)

// SessionUpdateFunc mutates a session in place. Returning an error discards the mutation.
type SessionUpdateFunc func(s *model.Session) error

// SessionRepository stores visitor sessions. Implementations must return
// copies so that callers never share state with the store.
type SessionRepository interface {
	// Create stores a new session. It fails with model.ErrSessionExists on ID collision.
	Create(ctx context.Context, s *model.Session) (*model.Session, error)

	// Get returns the session or model.ErrSessionNotFound
	Get(ctx context.Context, id model.SessionID) (*model.Session, error)

	// Update applies fn atomically: no other Update of the same session
	// interleaves with it. The stored session is replaced only when fn
	// succeeds, and the updated copy is returned.
	Update(ctx context.Context, id model.SessionID, fn SessionUpdateFunc) (*model.Session, error)

	// Delete removes the session. Deleting an unknown session is not an error.
	Delete(ctx context.Context, id model.SessionID) error

	// DeleteIdle removes every session not updated since before and returns their IDs
	DeleteIdle(ctx context.Context, before time.Time) ([]model.SessionID, error)

	// Count returns the number of live sessions
	Count(ctx context.Context) (int, error)
}
