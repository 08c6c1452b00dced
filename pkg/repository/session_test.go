package repository_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/interfaces"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/domain/types"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
)

func runSessionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	now := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("Welcome", now)
		created, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()
		gt.Value(t, created.ID).Equal(s.ID)

		got, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(s.ID)
		gt.Value(t, got.DashboardMode).Equal(types.DashboardBot)
		gt.Array(t, got.Chat.Messages).Length(1)
		gt.Value(t, got.CreatedAt).Equal(now)
	})

	t.Run("Create rejects duplicate and malformed IDs", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		_, err = repo.Session().Create(ctx, s)
		gt.Error(t, err).Is(model.ErrSessionExists)

		bad := model.NewSession("", now)
		bad.ID = "not-a-uuid"
		_, err = repo.Session().Create(ctx, bad)
		gt.Error(t, err).Is(model.ErrInvalidSessionID)
	})

	t.Run("Get returns not found for unknown session", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Session().Get(context.Background(), model.NewSessionID())
		gt.Error(t, err).Is(model.ErrSessionNotFound)
	})

	t.Run("returned sessions are copies", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("Welcome", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		// mutating the input and the output must not leak into the store
		s.Wizard.InstitutionType = types.InstitutionFintech
		got, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Wizard.InstitutionType).Equal(types.InstitutionType(""))

		got.Chat.Messages[0].Content = "tampered"
		again, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Chat.Messages[0].Content).Equal("Welcome")
	})

	t.Run("Update applies the mutation", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		updated, err := repo.Session().Update(ctx, s.ID, func(s *model.Session) error {
			s.DashboardMode = types.DashboardManual
			s.UpdatedAt = now.Add(time.Minute)
			return nil
		})
		gt.NoError(t, err).Required()
		gt.Value(t, updated.DashboardMode).Equal(types.DashboardManual)

		got, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.DashboardMode).Equal(types.DashboardManual)
		gt.Value(t, got.UpdatedAt).Equal(now.Add(time.Minute))
	})

	t.Run("Update discards the mutation on error", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		errBoom := errors.New("boom")
		_, err = repo.Session().Update(ctx, s.ID, func(s *model.Session) error {
			s.DashboardMode = types.DashboardManual
			return errBoom
		})
		gt.Error(t, err).Is(errBoom)

		got, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.DashboardMode).Equal(types.DashboardBot)
	})

	t.Run("Update of unknown session", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Session().Update(context.Background(), model.NewSessionID(), func(s *model.Session) error {
			return nil
		})
		gt.Error(t, err).Is(model.ErrSessionNotFound)
	})

	t.Run("concurrent Updates are serialised", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		const n = 50
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Session().Update(ctx, s.ID, func(s *model.Session) error {
					s.Chat.AppendUser("hello", now)
					return nil
				})
				gt.NoError(t, err)
			}()
		}
		wg.Wait()

		got, err := repo.Session().Get(ctx, s.ID)
		gt.NoError(t, err).Required()
		gt.Array(t, got.Chat.Messages).Length(n)
		gt.Value(t, got.Chat.PendingReplies).Equal(n)
	})

	t.Run("Delete is idempotent", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		s := model.NewSession("", now)
		_, err := repo.Session().Create(ctx, s)
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Session().Delete(ctx, s.ID)).Required()
		gt.NoError(t, repo.Session().Delete(ctx, s.ID)).Required()

		_, err = repo.Session().Get(ctx, s.ID)
		gt.Error(t, err).Is(model.ErrSessionNotFound)
	})

	t.Run("DeleteIdle removes only idle sessions", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		idle := model.NewSession("", now.Add(-time.Hour))
		active := model.NewSession("", now)
		for _, s := range []*model.Session{idle, active} {
			_, err := repo.Session().Create(ctx, s)
			gt.NoError(t, err).Required()
		}

		deleted, err := repo.Session().DeleteIdle(ctx, now.Add(-30*time.Minute))
		gt.NoError(t, err).Required()
		gt.Array(t, deleted).Length(1)
		gt.Value(t, deleted[0]).Equal(idle.ID)

		count, err := repo.Session().Count(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, count).Equal(1)

		_, err = repo.Session().Get(ctx, active.ID)
		gt.NoError(t, err).Required()
	})
}

func TestSessionRepository_Memory(t *testing.T) {
	runSessionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}
