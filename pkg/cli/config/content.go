package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/content"
	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// Content holds the CLI flag replacing the embedded page content
type Content struct {
	path string
}

// Flags returns CLI flags for content configuration
func (c *Content) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "content",
			Usage:       "Path to a YAML file replacing the built-in page content",
			Sources:     cli.EnvVars("REPORTINGBOT_CONTENT"),
			Destination: &c.path,
		},
	}
}

// LogAttrs returns log attributes for the content configuration
func (c *Content) LogAttrs() []slog.Attr {
	source := c.path
	if source == "" {
		source = "embedded"
	}
	return []slog.Attr{
		slog.String("content", source),
	}
}

// Configure loads the content document, the embedded one unless a path is set
func (c *Content) Configure() (*model.Content, error) {
	doc, err := content.Load(c.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load content", goerr.V(ConfigPathKey, c.path))
	}
	return doc, nil
}
