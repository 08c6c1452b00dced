package config

import (
	"log/slog"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// DefaultSweepInterval is how often idle sessions are looked for
const DefaultSweepInterval = time.Minute

// Session holds CLI flags for visitor session lifetime
type Session struct {
	ttl           time.Duration
	sweepInterval time.Duration
	secureCookie  bool
}

// Flags returns CLI flags for session configuration
func (s *Session) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "session-ttl",
			Usage:       "Idle time after which a visitor session is discarded",
			Category:    "Session",
			Value:       usecase.DefaultSessionTTL,
			Sources:     cli.EnvVars("REPORTINGBOT_SESSION_TTL"),
			Destination: &s.ttl,
		},
		&cli.DurationFlag{
			Name:        "session-sweep-interval",
			Usage:       "How often idle sessions are swept",
			Category:    "Session",
			Value:       DefaultSweepInterval,
			Sources:     cli.EnvVars("REPORTINGBOT_SESSION_SWEEP_INTERVAL"),
			Destination: &s.sweepInterval,
		},
		&cli.BoolFlag{
			Name:        "secure-cookie",
			Usage:       "Mark the session cookie Secure (serve behind TLS)",
			Category:    "Session",
			Sources:     cli.EnvVars("REPORTINGBOT_SECURE_COOKIE"),
			Destination: &s.secureCookie,
		},
	}
}

// LogAttrs returns log attributes for the session configuration
func (s *Session) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.Duration("ttl", s.ttl),
		slog.Duration("sweep_interval", s.sweepInterval),
		slog.Bool("secure_cookie", s.secureCookie),
	}
}

// Options returns the use case options for the session lifetime
func (s *Session) Options() []usecase.Option {
	if s.ttl <= 0 {
		return nil
	}
	return []usecase.Option{usecase.WithSessionTTL(s.ttl)}
}

// SweepInterval returns the sweep period, never zero
func (s *Session) SweepInterval() time.Duration {
	if s.sweepInterval <= 0 {
		return DefaultSweepInterval
	}
	return s.sweepInterval
}

// SecureCookie reports whether the session cookie is marked Secure
func (s *Session) SecureCookie() bool {
	return s.secureCookie
}
