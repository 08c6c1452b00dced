package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/service/worker"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
)

type mockSweeper struct {
	calls atomic.Int32
	err   error
}

func (m *mockSweeper) Sweep(ctx context.Context) (int, error) {
	m.calls.Add(1)
	return 0, m.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestSessionSweeper_SweepsPeriodically(t *testing.T) {
	m := &mockSweeper{}
	w := worker.NewSessionSweeper(m, 10*time.Millisecond)
	w.Start(context.Background())

	waitFor(t, func() bool { return m.calls.Load() >= 3 })
	w.Stop()

	// no more sweeps after Stop
	calls := m.calls.Load()
	time.Sleep(30 * time.Millisecond)
	gt.Value(t, m.calls.Load()).Equal(calls)
}

func TestSessionSweeper_KeepsRunningAfterError(t *testing.T) {
	m := &mockSweeper{err: errors.New("store unavailable")}
	w := worker.NewSessionSweeper(m, 10*time.Millisecond)
	w.Start(context.Background())

	waitFor(t, func() bool { return m.calls.Load() >= 2 })
	w.Stop()
}

func TestSessionSweeper_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := worker.NewSessionSweeper(&mockSweeper{}, time.Hour)
	w.Start(ctx)
	cancel()

	select {
	case <-w.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop")
	}
}

func TestSessionSweeper_ExpiresIdleSessions(t *testing.T) {
	now := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	var offset atomic.Int64
	clock := func() time.Time { return now.Add(time.Duration(offset.Load())) }

	uc := usecase.New(memory.New(), usecase.WithClock(clock), usecase.WithSessionTTL(time.Minute))
	defer uc.Close()

	ctx := context.Background()
	_, _, err := uc.Session.Ensure(ctx, "")
	gt.NoError(t, err).Required()
	offset.Store(int64(2 * time.Minute))

	w := worker.NewSessionSweeper(uc.Session, 10*time.Millisecond)
	w.Start(ctx)
	defer w.Stop()

	waitFor(t, func() bool {
		n, err := uc.Session.Count(ctx)
		return err == nil && n == 0
	})
}
