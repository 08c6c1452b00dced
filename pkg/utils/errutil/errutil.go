package errutil

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

// Handle logs the error with a message and reports it to Sentry when a
// client is configured.
func Handle(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}

	log(ctx, msg, err)
	Report(ctx, err)
}

// HandleHTTP logs the error and writes an appropriate HTTP error response.
// Server errors are reported to Sentry and their detail is not exposed to
// the client.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	log(ctx, "HTTP error", err, slog.Int("status", statusCode))

	if statusCode >= http.StatusInternalServerError {
		Report(ctx, err)
		http.Error(w, http.StatusText(statusCode), statusCode)
		return
	}

	http.Error(w, err.Error(), statusCode)
}

// Report sends err to Sentry. It does nothing when Sentry is not initialized.
func Report(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub = hub.Clone()
	var ge *goerr.Error
	if errors.As(err, &ge) {
		hub.ConfigureScope(func(scope *sentry.Scope) {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		})
	}
	hub.CaptureException(err)
}

func log(ctx context.Context, msg string, err error, attrs ...any) {
	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg, append(attrs,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)...)
		return
	}

	logger.Error(msg, append(attrs, "error", err.Error())...)
}
