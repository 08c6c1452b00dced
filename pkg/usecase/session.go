package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

type SessionUseCase struct {
	uc *UseCases
}

// Ensure returns the session addressed by rawID, creating a fresh one when
// the ID is empty, malformed or expired. The boolean tells the caller to issue
// a new cookie.
func (s *SessionUseCase) Ensure(ctx context.Context, rawID string) (*model.Session, bool, error) {
	id := model.SessionID(rawID)
	if rawID != "" && id.Validate() == nil {
		existing, err := s.uc.repo.Session().Get(ctx, id)
		if err == nil {
			return existing, false, nil
		}
		if !errors.Is(err, model.ErrSessionNotFound) {
			return nil, false, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
		}
	}

	sess, err := s.uc.repo.Session().Create(ctx, model.NewSession(s.uc.content.Chat.Welcome, s.uc.now()))
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to create session")
	}
	logging.From(ctx).Debug("session created", "session_id", sess.ID)
	return sess, true, nil
}

// Get returns an existing session
func (s *SessionUseCase) Get(ctx context.Context, id model.SessionID) (*model.Session, error) {
	sess, err := s.uc.repo.Session().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get session", goerr.V(SessionIDKey, id))
	}
	return sess, nil
}

// Expire removes a session and cancels its scheduled replies
func (s *SessionUseCase) Expire(ctx context.Context, id model.SessionID) error {
	if err := s.uc.repo.Session().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete session", goerr.V(SessionIDKey, id))
	}
	s.cancelScheduled(id)
	return nil
}

// Sweep expires every session idle for longer than the TTL and returns how many were removed
func (s *SessionUseCase) Sweep(ctx context.Context) (int, error) {
	before := s.uc.now().Add(-s.uc.sessionTTL)
	ids, err := s.uc.repo.Session().DeleteIdle(ctx, before)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to delete idle sessions")
	}

	for _, id := range ids {
		s.cancelScheduled(id)
	}
	if len(ids) > 0 {
		logging.From(ctx).Info("idle sessions expired", "count", len(ids))
	}
	return len(ids), nil
}

// Count returns the number of live sessions
func (s *SessionUseCase) Count(ctx context.Context) (int, error) {
	n, err := s.uc.repo.Session().Count(ctx)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count sessions")
	}
	return n, nil
}

func (s *SessionUseCase) cancelScheduled(id model.SessionID) {
	s.uc.scheduler.Cancel(schedulerKey(id, chatSchedulerScope))
	s.uc.scheduler.Cancel(schedulerKey(id, ctaSchedulerScope))
}
