package usecase

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/content"
	"github.com/secmon-lab/reportingbot/pkg/domain/interfaces"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/utils/async"
	"golang.org/x/text/language"
)

// Default timings of the simulated bot
const (
	DefaultChatDelay   = 1200 * time.Millisecond
	DefaultChatJitter  = 800 * time.Millisecond
	DefaultCTADelay    = 600 * time.Millisecond
	DefaultSessionTTL  = 30 * time.Minute
	chatSchedulerScope = "chat"
	ctaSchedulerScope  = "cta"
)

type UseCases struct {
	repo      interfaces.Repository
	scoring   *model.ScoringConfig
	content   *model.Content
	scheduler *async.Scheduler
	now       func() time.Time
	jitter    func(max time.Duration) time.Duration

	chatDelay  time.Duration
	chatJitter time.Duration
	ctaDelay   time.Duration
	sessionTTL time.Duration
	locale     language.Tag

	Session   *SessionUseCase
	Checker   *CheckerUseCase
	Chat      *ChatUseCase
	CTA       *QualificationUseCase
	Dashboard *DashboardUseCase
	Content   *ContentUseCase
}

type Option func(*UseCases)

func WithScoringConfig(cfg *model.ScoringConfig) Option {
	return func(uc *UseCases) {
		uc.scoring = cfg
	}
}

func WithContent(c *model.Content) Option {
	return func(uc *UseCases) {
		uc.content = c
	}
}

func WithScheduler(s *async.Scheduler) Option {
	return func(uc *UseCases) {
		uc.scheduler = s
	}
}

// WithClock replaces time.Now, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(uc *UseCases) {
		uc.now = now
	}
}

// WithChatDelay sets the bot typing delay as base plus a uniform random jitter up to jitter
func WithChatDelay(base, jitter time.Duration) Option {
	return func(uc *UseCases) {
		uc.chatDelay = base
		uc.chatJitter = jitter
	}
}

func WithCTADelay(d time.Duration) Option {
	return func(uc *UseCases) {
		uc.ctaDelay = d
	}
}

func WithSessionTTL(ttl time.Duration) Option {
	return func(uc *UseCases) {
		uc.sessionTTL = ttl
	}
}

// WithLocale selects the number formatting of the dashboard
func WithLocale(tag language.Tag) Option {
	return func(uc *UseCases) {
		uc.locale = tag
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo:       repo,
		now:        time.Now,
		jitter:     randomJitter,
		chatDelay:  DefaultChatDelay,
		chatJitter: DefaultChatJitter,
		ctaDelay:   DefaultCTADelay,
		sessionTTL: DefaultSessionTTL,
		locale:     language.English,
	}

	for _, opt := range opts {
		opt(uc)
	}

	if uc.scoring == nil {
		uc.scoring = model.DefaultScoringConfig()
	}
	if uc.content == nil {
		c, err := content.Default()
		if err != nil {
			// The embedded document is covered by tests; failing here is a build defect
			panic(err)
		}
		uc.content = c
	}
	if uc.scheduler == nil {
		uc.scheduler = async.NewScheduler()
	}

	uc.Session = &SessionUseCase{uc: uc}
	uc.Checker = &CheckerUseCase{uc: uc}
	uc.Chat = &ChatUseCase{uc: uc, responder: uc.content.Chat.Responder()}
	uc.CTA = &QualificationUseCase{uc: uc}
	uc.Dashboard = newDashboardUseCase(uc)
	uc.Content = &ContentUseCase{uc: uc}

	return uc
}

// Close cancels every scheduled reply and waits for running ones
func (uc *UseCases) Close() {
	uc.scheduler.Close()
}

// ScoringConfig returns the heuristic used by the readiness wizard
func (uc *UseCases) ScoringConfig() *model.ScoringConfig {
	return uc.scoring
}

// update mutates a session atomically and bumps its idle timer
func (uc *UseCases) update(ctx context.Context, id model.SessionID, fn interfaces.SessionUpdateFunc) (*model.Session, error) {
	return uc.repo.Session().Update(ctx, id, func(s *model.Session) error {
		if err := fn(s); err != nil {
			return err
		}
		s.UpdatedAt = uc.now()
		return nil
	})
}

func schedulerKey(id model.SessionID, scope string) string {
	return id.String() + ":" + scope
}

func randomJitter(max time.Duration) time.Duration {
	if max <= 0 {
		return 0
	}
	return time.Duration(rand.Int64N(int64(max) + 1))
}
