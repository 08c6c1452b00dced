package errutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/reportingbot/pkg/utils/errutil"
)

func TestHandleHTTP(t *testing.T) {
	ctx := context.Background()

	t.Run("client error exposes the message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, goerr.New("bad step", goerr.V("step", 9)), http.StatusBadRequest)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, w.Body.String()).Contains("bad step")
	})

	t.Run("server error hides the detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, errors.New("secret internals"), http.StatusInternalServerError)
		gt.Value(t, w.Code).Equal(http.StatusInternalServerError)
		gt.String(t, w.Body.String()).NotContains("secret internals")
	})

	t.Run("nil error writes nothing", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(ctx, w, nil, http.StatusInternalServerError)
		gt.Value(t, w.Body.Len()).Equal(0)
	})
}

func TestHandle_WithoutSentryClient(t *testing.T) {
	// must not panic when Sentry was never initialized
	errutil.Handle(context.Background(), goerr.New("boom"), "failed")
	errutil.Handle(context.Background(), nil, "ignored")
}
