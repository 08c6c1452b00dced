package config

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"
)

// SiteConfig is the optional TOML file tuning the landing page behaviour
type SiteConfig struct {
	Scoring   ScoringConfig   `toml:"scoring"`
	Chat      ChatConfig      `toml:"chat"`
	CTA       CTAConfig       `toml:"cta"`
	Session   SessionConfig   `toml:"session"`
	Dashboard DashboardConfig `toml:"dashboard"`
}

// ScoringConfig overrides the readiness heuristic. Unset fields keep the defaults.
type ScoringConfig struct {
	Base         *float64   `toml:"base"`
	Weight       *float64   `toml:"weight"`
	Catalog      []string   `toml:"catalog"`
	FallbackNote string     `toml:"fallback_note"`
	NextSteps    []string   `toml:"next_steps"`
	Risks        []RiskRule `toml:"risk"`
}

// RiskRule adds Note to the report when Category is missing
type RiskRule struct {
	Category string `toml:"category"`
	Note     string `toml:"note"`
}

// ChatConfig sets the typing delay of the compliance bot
type ChatConfig struct {
	Delay  string `toml:"delay"`
	Jitter string `toml:"jitter"`
}

// CTAConfig sets the processing delay of the qualification stepper
type CTAConfig struct {
	Delay string `toml:"delay"`
}

// SessionConfig sets visitor session lifetime
type SessionConfig struct {
	TTL           string `toml:"ttl"`
	SweepInterval string `toml:"sweep_interval"`
}

// DashboardConfig sets how report figures are formatted
type DashboardConfig struct {
	Locale string `toml:"locale"`
}

// ToDomainScoringConfig merges the overrides into the default heuristic
func (s *ScoringConfig) ToDomainScoringConfig() *model.ScoringConfig {
	cfg := model.DefaultScoringConfig()
	if s.Base != nil {
		cfg.Base = *s.Base
	}
	if s.Weight != nil {
		cfg.Weight = *s.Weight
	}
	if len(s.Catalog) > 0 {
		cfg.Catalog = make(model.Catalog, len(s.Catalog))
		for i, c := range s.Catalog {
			cfg.Catalog[i] = model.DataCategory(c)
		}
	}
	if s.FallbackNote != "" {
		cfg.FallbackNote = s.FallbackNote
	}
	if len(s.NextSteps) > 0 {
		cfg.NextSteps = s.NextSteps
	}
	if len(s.Risks) > 0 {
		cfg.RiskRules = make([]model.RiskRule, len(s.Risks))
		for i, r := range s.Risks {
			cfg.RiskRules[i] = model.RiskRule{Category: model.DataCategory(r.Category), Note: r.Note}
		}
	}
	return cfg
}

func parseDuration(field, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, goerr.Wrap(ErrInvalidDuration, err.Error(), goerr.V(FieldKey, field), goerr.V(ValueKey, value))
	}
	if d < 0 {
		return 0, goerr.Wrap(ErrInvalidDuration, "duration must not be negative", goerr.V(FieldKey, field), goerr.V(ValueKey, value))
	}
	return d, nil
}

// parsePositiveDuration is parseDuration for intervals where zero makes no sense
func parsePositiveDuration(field, value string) (time.Duration, error) {
	d, err := parseDuration(field, value)
	if err != nil {
		return 0, err
	}
	if d == 0 {
		return 0, goerr.Wrap(ErrInvalidDuration, "duration must be positive", goerr.V(FieldKey, field), goerr.V(ValueKey, value))
	}
	return d, nil
}

// Validate checks if the SiteConfig is valid
func (c *SiteConfig) Validate() error {
	if err := c.Scoring.ToDomainScoringConfig().Validate(); err != nil {
		return goerr.Wrap(ErrInvalidConfig, err.Error(), goerr.V(FieldKey, "scoring"))
	}
	for i, r := range c.Scoring.Risks {
		if r.Category == "" || r.Note == "" {
			return goerr.Wrap(ErrInvalidConfig, "risk rule needs a category and a note", goerr.V(RuleIndexKey, i))
		}
	}

	durations := map[string]string{
		"chat.delay":             c.Chat.Delay,
		"chat.jitter":            c.Chat.Jitter,
		"cta.delay":              c.CTA.Delay,
		"session.ttl":            c.Session.TTL,
		"session.sweep_interval": c.Session.SweepInterval,
	}
	for field, value := range durations {
		if value == "" {
			continue
		}
		if _, err := parseDuration(field, value); err != nil {
			return err
		}
	}
	if c.Session.TTL != "" {
		if _, err := parsePositiveDuration("session.ttl", c.Session.TTL); err != nil {
			return err
		}
	}
	if c.Session.SweepInterval != "" {
		if _, err := parsePositiveDuration("session.sweep_interval", c.Session.SweepInterval); err != nil {
			return err
		}
	}

	if c.Dashboard.Locale != "" {
		if _, err := language.Parse(c.Dashboard.Locale); err != nil {
			return goerr.Wrap(ErrInvalidLocale, err.Error(), goerr.V(ValueKey, c.Dashboard.Locale))
		}
	}

	return nil
}

// Options converts the file into use case options. Call Validate first.
func (c *SiteConfig) Options() ([]usecase.Option, error) {
	opts := []usecase.Option{
		usecase.WithScoringConfig(c.Scoring.ToDomainScoringConfig()),
	}

	if c.Chat.Delay != "" || c.Chat.Jitter != "" {
		delay, jitter := usecase.DefaultChatDelay, usecase.DefaultChatJitter
		var err error
		if c.Chat.Delay != "" {
			if delay, err = parseDuration("chat.delay", c.Chat.Delay); err != nil {
				return nil, err
			}
		}
		if c.Chat.Jitter != "" {
			if jitter, err = parseDuration("chat.jitter", c.Chat.Jitter); err != nil {
				return nil, err
			}
		}
		opts = append(opts, usecase.WithChatDelay(delay, jitter))
	}

	if c.CTA.Delay != "" {
		delay, err := parseDuration("cta.delay", c.CTA.Delay)
		if err != nil {
			return nil, err
		}
		opts = append(opts, usecase.WithCTADelay(delay))
	}

	if c.Session.TTL != "" {
		ttl, err := parsePositiveDuration("session.ttl", c.Session.TTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, usecase.WithSessionTTL(ttl))
	}

	if c.Dashboard.Locale != "" {
		tag, err := language.Parse(c.Dashboard.Locale)
		if err != nil {
			return nil, goerr.Wrap(ErrInvalidLocale, err.Error(), goerr.V(ValueKey, c.Dashboard.Locale))
		}
		opts = append(opts, usecase.WithLocale(tag))
	}

	return opts, nil
}

// SweepInterval returns the configured sweep interval, or fallback when unset
func (c *SiteConfig) SweepInterval(fallback time.Duration) time.Duration {
	if c.Session.SweepInterval == "" {
		return fallback
	}
	d, err := parseDuration("session.sweep_interval", c.Session.SweepInterval)
	if err != nil || d == 0 {
		return fallback
	}
	return d
}

// LoadSiteConfiguration loads the site configuration from a TOML file
func LoadSiteConfiguration(path string) (*SiteConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config SiteConfig
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V(ConfigPathKey, path), goerr.V("cause", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &config, nil
}

// Site holds the CLI flag pointing at the optional site configuration file
type Site struct {
	path string
}

// Flags returns CLI flags for the site configuration
func (s *Site) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the site configuration TOML file",
			Sources:     cli.EnvVars("REPORTINGBOT_CONFIG"),
			Destination: &s.path,
		},
	}
}

// LogAttrs returns log attributes for the site configuration
func (s *Site) LogAttrs() []slog.Attr {
	return []slog.Attr{
		slog.String("config", s.path),
	}
}

// Configure loads the configuration file, or returns defaults when no path is set
func (s *Site) Configure() (*SiteConfig, error) {
	if s.path == "" {
		return &SiteConfig{}, nil
	}
	return LoadSiteConfiguration(s.path)
}
