package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/utils/errutil"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// Sweeper expires idle sessions and reports how many were removed
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// SessionSweeper periodically expires idle visitor sessions
//
// Architecture assumptions:
// - Single server instance, sessions live in process memory
type SessionSweeper struct {
	sweeper  Sweeper
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewSessionSweeper creates a worker that calls sweeper every interval
func NewSessionSweeper(sweeper Sweeper, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		sweeper:  sweeper,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop without blocking
func (w *SessionSweeper) Start(ctx context.Context) {
	logging.From(ctx).Info("Session sweeper starting", "interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *SessionSweeper) Stop() {
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Session sweeper stopped")
}

// Done is closed once the loop has exited
func (w *SessionSweeper) Done() <-chan struct{} {
	return w.doneCh
}

func (w *SessionSweeper) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := w.sweeper.Sweep(ctx); err != nil {
				// Keep running; the next tick retries
				errutil.Handle(ctx, err, "Session sweep failed")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Session sweeper context cancelled")
			return
		}
	}
}
