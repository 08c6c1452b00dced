package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/async"
)

// testClock is a manually advanced clock
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	uc        *usecase.UseCases
	scheduler *async.Scheduler
	clock     *testClock
}

// newFixture builds use cases with instant bot replies unless opts override them
func newFixture(t *testing.T, opts ...usecase.Option) *fixture {
	t.Helper()

	f := &fixture{
		scheduler: async.NewScheduler(),
		clock:     newTestClock(),
	}
	base := []usecase.Option{
		usecase.WithScheduler(f.scheduler),
		usecase.WithClock(f.clock.Now),
		usecase.WithChatDelay(0, 0),
		usecase.WithCTADelay(0),
	}
	f.uc = usecase.New(memory.New(), append(base, opts...)...)
	t.Cleanup(f.uc.Close)
	return f
}

func (f *fixture) newSession(t *testing.T) model.SessionID {
	t.Helper()
	sess, created, err := f.uc.Session.Ensure(context.Background(), "")
	gt.NoError(t, err).Required()
	gt.Bool(t, created).True()
	return sess.ID
}
