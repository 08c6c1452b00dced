package async

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// ErrCancelled is returned by callbacks that found their task cancelled
var ErrCancelled = goerr.New("scheduled task cancelled")

// Handler is a delayed callback. It should call task.Claim inside the
// critical section that applies its effect, and give up when Claim fails.
type Handler func(ctx context.Context, task Task) error

// Scheduler runs delayed callbacks grouped by key. All pending callbacks of
// a key can be cancelled at once, which is how a section reset or a session
// expiry discards replies that have not landed yet.
type Scheduler struct {
	mu     sync.Mutex
	tasks  map[string]map[uint64]*time.Timer
	nextID uint64
	closed bool
	wg     sync.WaitGroup
}

// NewScheduler creates an empty Scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		tasks: make(map[string]map[uint64]*time.Timer),
	}
}

// Task identifies one scheduled callback
type Task struct {
	scheduler *Scheduler
	key       string
	id        uint64
}

// Key returns the group the task was scheduled under
func (t Task) Key() string {
	return t.key
}

// Claim marks the task as done. It returns false when the task was
// cancelled or already claimed, in which case the callback must not apply
// its effect.
func (t Task) Claim() bool {
	if t.scheduler == nil {
		return false
	}
	return t.scheduler.remove(t.key, t.id)
}

// Schedule runs handler after delay on its own goroutine unless the key is
// cancelled first. The handler receives a background context that keeps the
// logger of ctx. It returns false when the scheduler is closed.
func (s *Scheduler) Schedule(ctx context.Context, key string, delay time.Duration, handler Handler) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	bgCtx := logging.With(context.Background(), logging.From(ctx))

	s.nextID++
	task := Task{scheduler: s, key: key, id: s.nextID}

	if s.tasks[key] == nil {
		s.tasks[key] = make(map[uint64]*time.Timer)
	}

	s.wg.Add(1)
	s.tasks[key][task.id] = time.AfterFunc(delay, func() {
		defer s.wg.Done()
		// Drop the entry even when the handler never claimed it
		defer task.Claim()
		run(bgCtx, task, handler)
	})

	return true
}

func run(ctx context.Context, task Task, handler Handler) {
	logger := logging.From(ctx)
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic in scheduled handler", "panic", r, "key", task.key)
		}
	}()

	if err := handler(ctx, task); err != nil {
		if errors.Is(err, ErrCancelled) {
			logger.Debug("scheduled handler skipped", "key", task.key)
			return
		}
		logger.Error("scheduled handler failed", "error", err, "key", task.key)
	}
}

func (s *Scheduler) remove(key string, id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.tasks[key]
	if !ok {
		return false
	}
	if _, ok := group[id]; !ok {
		return false
	}
	delete(group, id)
	if len(group) == 0 {
		delete(s.tasks, key)
	}
	return true
}

// Cancel discards every pending callback of key and returns how many were
// discarded. A callback that is already running keeps running, but its
// Claim fails.
func (s *Scheduler) Cancel(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancelLocked(key)
}

func (s *Scheduler) cancelLocked(key string) int {
	group := s.tasks[key]
	for _, timer := range group {
		if timer.Stop() {
			s.wg.Done()
		}
	}
	delete(s.tasks, key)
	return len(group)
}

// Pending returns the number of callbacks of key not yet claimed
func (s *Scheduler) Pending(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks[key])
}

// Wait blocks until every scheduled callback has either run or been cancelled
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

// Close cancels all pending callbacks, refuses new ones and waits for
// running callbacks to return.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closed = true
	for key := range s.tasks {
		s.cancelLocked(key)
	}
	s.mu.Unlock()

	s.wg.Wait()
}
