package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/interfaces"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[model.SessionID]*model.Session
}

var _ interfaces.SessionRepository = &sessionRepository{}

func newSessionRepository() *sessionRepository {
	return &sessionRepository{
		sessions: make(map[model.SessionID]*model.Session),
	}
}

func (r *sessionRepository) Create(ctx context.Context, s *model.Session) (*model.Session, error) {
	if err := s.ID.Validate(); err != nil {
		return nil, goerr.Wrap(err, "failed to create session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[s.ID]; exists {
		return nil, goerr.Wrap(model.ErrSessionExists, "failed to create session", goerr.V(model.SessionIDKey, s.ID))
	}

	r.sessions[s.ID] = s.Clone()
	return s.Clone(), nil
}

func (r *sessionRepository) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to get session", goerr.V(model.SessionIDKey, id))
	}

	return s.Clone(), nil
}

func (r *sessionRepository) Update(ctx context.Context, id model.SessionID, fn interfaces.SessionUpdateFunc) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.sessions[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrSessionNotFound, "failed to update session", goerr.V(model.SessionIDKey, id))
	}

	// Mutate a copy so a failing fn leaves the stored session untouched
	working := current.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id

	r.sessions[id] = working
	return working.Clone(), nil
}

func (r *sessionRepository) Delete(ctx context.Context, id model.SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) DeleteIdle(ctx context.Context, before time.Time) ([]model.SessionID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted []model.SessionID
	for id, s := range r.sessions {
		if s.UpdatedAt.Before(before) {
			deleted = append(deleted, id)
			delete(r.sessions, id)
		}
	}
	slices.Sort(deleted)

	return deleted, nil
}

func (r *sessionRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions), nil
}
