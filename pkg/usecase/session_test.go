package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
)

func TestSessionUseCase_Ensure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, created, err := f.uc.Session.Ensure(ctx, "")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).True()
	gt.Array(t, first.Chat.Messages).Length(1)

	again, created, err := f.uc.Session.Ensure(ctx, first.ID.String())
	gt.NoError(t, err).Required()
	gt.Bool(t, created).False()
	gt.Value(t, again.ID).Equal(first.ID)

	t.Run("malformed cookie gets a new session", func(t *testing.T) {
		sess, created, err := f.uc.Session.Ensure(ctx, "garbage")
		gt.NoError(t, err).Required()
		gt.Bool(t, created).True()
		gt.Value(t, sess.ID).NotEqual(model.SessionID("garbage"))
	})

	t.Run("unknown session gets a new session", func(t *testing.T) {
		unknown := model.NewSessionID()
		sess, created, err := f.uc.Session.Ensure(ctx, unknown.String())
		gt.NoError(t, err).Required()
		gt.Bool(t, created).True()
		gt.Value(t, sess.ID).NotEqual(unknown)
	})
}

func TestSessionUseCase_Sweep(t *testing.T) {
	f := newFixture(t, usecase.WithChatDelay(time.Hour, 0))
	ctx := context.Background()

	idle := f.newSession(t)
	_, err := f.uc.Chat.Send(ctx, idle, "What are the Basel III requirements?")
	gt.NoError(t, err).Required()
	gt.Value(t, f.scheduler.Pending(usecase.SchedulerKey(idle, usecase.ChatSchedulerScope))).Equal(1)

	f.clock.Advance(20 * time.Minute)
	active := f.newSession(t)

	f.clock.Advance(11 * time.Minute)
	n, err := f.uc.Session.Sweep(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, n).Equal(1)

	// the expired session's reply never lands
	gt.Value(t, f.scheduler.Pending(usecase.SchedulerKey(idle, usecase.ChatSchedulerScope))).Equal(0)
	_, err = f.uc.Session.Get(ctx, idle)
	gt.Error(t, err).Is(model.ErrSessionNotFound)

	_, err = f.uc.Session.Get(ctx, active)
	gt.NoError(t, err).Required()

	count, err := f.uc.Session.Count(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, count).Equal(1)
}

func TestSessionUseCase_ActivityKeepsSessionAlive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	id := f.newSession(t)
	f.clock.Advance(25 * time.Minute)
	_, err := f.uc.Dashboard.SetMode(ctx, id, "manual")
	gt.NoError(t, err).Required()

	f.clock.Advance(25 * time.Minute)
	n, err := f.uc.Session.Sweep(ctx)
	gt.NoError(t, err).Required()
	gt.Value(t, n).Equal(0)
}

func TestSessionUseCase_Expire(t *testing.T) {
	f := newFixture(t, usecase.WithCTADelay(time.Hour))
	ctx := context.Background()

	id := f.newSession(t)
	_, err := f.uc.CTA.Start(ctx, id)
	gt.NoError(t, err).Required()
	_, err = f.uc.CTA.Answer(ctx, id, "Investment Bank")
	gt.NoError(t, err).Required()
	gt.Value(t, f.scheduler.Pending(usecase.SchedulerKey(id, usecase.CTASchedulerScope))).Equal(1)

	gt.NoError(t, f.uc.Session.Expire(ctx, id)).Required()
	gt.Value(t, f.scheduler.Pending(usecase.SchedulerKey(id, usecase.CTASchedulerScope))).Equal(0)
}
