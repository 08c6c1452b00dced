package config_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/cli/config"
)

func TestLoggerRedactsSecrets(t *testing.T) {
	type chatLog struct {
		SessionID string
		Text      string `masq:"secret"`
	}

	for _, format := range []string{"json", "console"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := config.NewLoggerForTest("debug", format).New(&buf)
			gt.NoError(t, err).Required()

			logger.Info("chat message",
				slog.Any("message", chatLog{SessionID: "s-1", Text: "my account number is 1234"}),
				slog.String("secret_token", "hunter2"),
			)

			out := buf.String()
			gt.String(t, out).Contains("chat message")
			gt.String(t, out).Contains("s-1")
			gt.String(t, out).NotContains("1234")
			gt.String(t, out).NotContains("hunter2")
		})
	}
}

func TestLoggerRejectsBadSettings(t *testing.T) {
	var buf bytes.Buffer

	_, err := config.NewLoggerForTest("loud", "json").New(&buf)
	gt.Error(t, err).Is(config.ErrInvalidLogLevel)

	_, err = config.NewLoggerForTest("info", "xml").New(&buf)
	gt.Error(t, err).Is(config.ErrInvalidFormat)
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := config.NewLoggerForTest("warn", "json").New(&buf)
	gt.NoError(t, err).Required()

	logger.Info("quiet")
	logger.Warn("loud")
	gt.String(t, buf.String()).NotContains("quiet")
	gt.String(t, buf.String()).Contains("loud")
}
