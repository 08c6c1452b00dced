package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	httpctrl "github.com/secmon-lab/reportingbot/pkg/controller/http"
	"github.com/secmon-lab/reportingbot/pkg/repository/memory"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/async"
)

// client replays the session cookie like a browser would
type client struct {
	t         *testing.T
	server    http.Handler
	scheduler *async.Scheduler
	cookie    *http.Cookie
}

func newClient(t *testing.T, opts ...httpctrl.Options) *client {
	t.Helper()

	scheduler := async.NewScheduler()
	uc := usecase.New(memory.New(),
		usecase.WithScheduler(scheduler),
		usecase.WithChatDelay(0, 0),
		usecase.WithCTADelay(0),
	)
	t.Cleanup(uc.Close)

	server, err := httpctrl.New(uc, opts...)
	gt.NoError(t, err).Required()
	return &client{t: t, server: server, scheduler: scheduler}
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	req.RemoteAddr = "192.0.2.1:54321"
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}

	w := httptest.NewRecorder()
	c.server.ServeHTTP(w, req)

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == httpctrl.SessionCookieName {
			c.cookie = cookie
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postJSON(path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		gt.NoError(c.t, json.NewEncoder(&buf).Encode(body)).Required()
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &v)).Required()
	return v
}

type checkerBody struct {
	Step           int      `json:"step"`
	CanProceed     bool     `json:"can_proceed"`
	ResultsVisible bool     `json:"results_visible"`
	DataCategories []string `json:"data_categories"`
	Assessment     *struct {
		Score     int      `json:"score"`
		Band      string   `json:"band"`
		Missing   []string `json:"missing"`
		RiskNotes []string `json:"risk_notes"`
	} `json:"assessment"`
}

func TestLandingPage(t *testing.T) {
	c := newClient(t)

	w := c.get("/")
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Header().Get("Content-Type")).Contains("text/html")
	gt.String(t, w.Body.String()).Contains("Compliance Readiness Checker")
	gt.Value(t, c.cookie).NotNil().Required()
	gt.Bool(t, c.cookie.HttpOnly).True()
	gt.Value(t, c.cookie.SameSite).Equal(http.SameSiteLaxMode)

	first := c.cookie.Value
	c.get("/")
	gt.Value(t, c.cookie.Value).Equal(first)
}

func TestUnknownSessionCookieGetsFreshSession(t *testing.T) {
	c := newClient(t)
	c.cookie = &http.Cookie{Name: httpctrl.SessionCookieName, Value: "not-a-session"}

	w := c.get("/")
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.Value(t, c.cookie.Value).NotEqual("not-a-session")
}

func TestCheckerForms(t *testing.T) {
	c := newClient(t)

	w := c.postForm("/checker/answer", url.Values{"step": {"0"}, "value": {"commercial_bank"}})
	gt.Value(t, w.Code).Equal(http.StatusSeeOther)
	gt.Value(t, w.Header().Get("Location")).Equal("/#checker")

	c.postForm("/checker/next", nil)
	c.postForm("/checker/answer", url.Values{"step": {"1"}, "value": {"eu"}})
	c.postForm("/checker/next", nil)
	c.postForm("/checker/next", nil)
	for _, category := range []string{"Balance Sheet Data", "P&L Statements", "Capital Adequacy", "Liquidity Positions"} {
		c.postForm("/checker/answer", url.Values{"step": {"3"}, "value": {category}})
	}
	c.postForm("/checker/next", nil)

	st := decode[checkerBody](t, c.get("/api/checker"))
	gt.Bool(t, st.ResultsVisible).True()
	gt.Value(t, st.Assessment).NotNil().Required()
	gt.Value(t, st.Assessment.Score).Equal(70)
	gt.Value(t, st.Assessment.Missing).Equal([]string{"Risk Exposures", "Counterparty Data", "Transaction Records", "Collateral Data"})
	gt.Value(t, st.Assessment.RiskNotes).Equal([]string{"Large exposure reporting could fail validation."})

	gt.String(t, c.get("/").Body.String()).Contains("Your Readiness Report")

	t.Run("bad input is rejected", func(t *testing.T) {
		gt.Value(t, c.postForm("/checker/reset", nil).Code).Equal(http.StatusSeeOther)
		gt.Value(t, c.postForm("/checker/answer", url.Values{"step": {"x"}, "value": {"eu"}}).Code).Equal(http.StatusBadRequest)
		gt.Value(t, c.postForm("/checker/answer", url.Values{"step": {"0"}, "value": {"pirate_bank"}}).Code).Equal(http.StatusBadRequest)
	})

	t.Run("rejected form shows a flash above the page", func(t *testing.T) {
		w := c.postForm("/cta/answer", url.Values{"option": {"Bank"}})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.Value(t, w.Header().Get("Content-Type")).Equal("text/html; charset=utf-8")
		gt.String(t, w.Body.String()).Contains(`class="flash"`)
		gt.String(t, w.Body.String()).Contains(`id="timeline"`)

		gt.String(t, c.get("/").Body.String()).NotContains(`class="flash"`)
	})
}

func TestCheckerAPI(t *testing.T) {
	c := newClient(t)

	st := decode[checkerBody](t, c.postJSON("/api/checker/next", nil))
	gt.Value(t, st.Step).Equal(0)
	gt.Bool(t, st.CanProceed).False()

	st = decode[checkerBody](t, c.postJSON("/api/checker/answer", map[string]any{"step": 0, "value": "fintech"}))
	gt.Bool(t, st.CanProceed).True()

	st = decode[checkerBody](t, c.postJSON("/api/checker/next", nil))
	gt.Value(t, st.Step).Equal(1)

	st = decode[checkerBody](t, c.postJSON("/api/checker/back", nil))
	gt.Value(t, st.Step).Equal(0)

	w := c.postJSON("/api/checker/answer", map[string]any{"value": "fintech"})
	gt.Value(t, w.Code).Equal(http.StatusBadRequest)

	req := httptest.NewRequest(http.MethodPost, "/api/checker/answer", strings.NewReader("{"))
	gt.Value(t, c.do(req).Code).Equal(http.StatusBadRequest)
}

func TestAssessAPI(t *testing.T) {
	c := newClient(t)

	t.Run("complete answers are scored", func(t *testing.T) {
		w := c.postJSON("/api/assess", usecase.Answers{
			InstitutionType: "commercial_bank",
			Jurisdiction:    "eu",
			ReportingPeriod: "quarterly",
			DataCategories:  []string{"Balance Sheet Data", "P&L Statements", "Capital Adequacy", "Liquidity Positions"},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)

		var body struct {
			Score int    `json:"score"`
			Band  string `json:"band"`
		}
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body.Score).Equal(70)
		gt.Value(t, body.Band).Equal("moderate")
	})

	t.Run("incomplete answers are rejected", func(t *testing.T) {
		w := c.postJSON("/api/assess", usecase.Answers{InstitutionType: "commercial_bank", Jurisdiction: "eu"})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})
}

func TestChatAPI(t *testing.T) {
	c := newClient(t)

	type conversation struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
			Extras  []struct {
				Type string `json:"type"`
			} `json:"extras"`
		} `json:"messages"`
		Pending bool `json:"pending"`
	}

	conv := decode[conversation](t, c.get("/api/chat"))
	gt.Array(t, conv.Messages).Length(1)
	gt.Value(t, conv.Messages[0].Role).Equal("bot")

	w := c.postJSON("/api/chat", map[string]string{"message": "What are the Basel III requirements?"})
	gt.Value(t, w.Code).Equal(http.StatusAccepted)

	c.scheduler.Wait()
	conv = decode[conversation](t, c.get("/api/chat"))
	gt.Bool(t, conv.Pending).False()
	gt.Array(t, conv.Messages).Length(3)
	gt.Value(t, conv.Messages[1].Role).Equal("user")
	gt.Value(t, conv.Messages[2].Role).Equal("bot")
	gt.Array(t, conv.Messages[2].Extras).Length(2)

	conv = decode[conversation](t, c.postJSON("/api/chat/reset", nil))
	gt.Array(t, conv.Messages).Length(1)
}

func TestChatForm(t *testing.T) {
	c := newClient(t)

	w := c.postForm("/chat/send", url.Values{"message": {"When are my deadlines?"}})
	gt.Value(t, w.Code).Equal(http.StatusSeeOther)
	gt.Value(t, w.Header().Get("Location")).Equal("/#chat")

	c.scheduler.Wait()
	gt.String(t, c.get("/").Body.String()).Contains("When are my deadlines?")
}

func TestChatRateLimit(t *testing.T) {
	c := newClient(t, httpctrl.WithRateLimiter(httpctrl.NewRateLimiter(0.001, 2)))

	gt.Value(t, c.postJSON("/api/chat", map[string]string{"message": "hi"}).Code).Equal(http.StatusAccepted)
	gt.Value(t, c.postJSON("/api/chat", map[string]string{"message": "hi"}).Code).Equal(http.StatusAccepted)

	w := c.postJSON("/api/chat", map[string]string{"message": "hi"})
	gt.Value(t, w.Code).Equal(http.StatusTooManyRequests)
	gt.Value(t, w.Header().Get("Retry-After")).Equal("1")

	// Reading the conversation is not limited
	gt.Value(t, c.get("/api/chat").Code).Equal(http.StatusOK)
}

func TestCTAAPI(t *testing.T) {
	c := newClient(t)

	type qualification struct {
		Started       bool     `json:"started"`
		Step          int      `json:"step"`
		Answers       []string `json:"answers"`
		ResultVisible bool     `json:"result_visible"`
		Question      *struct {
			Question string   `json:"question"`
			Options  []string `json:"options"`
		} `json:"question"`
		Summary string `json:"summary"`
	}

	st := decode[qualification](t, c.get("/api/cta"))
	gt.Bool(t, st.Started).False()

	gt.Value(t, c.postJSON("/api/cta/answer", map[string]string{"option": "Bank"}).Code).Equal(http.StatusBadRequest)

	st = decode[qualification](t, c.postJSON("/api/cta/start", nil))
	gt.Bool(t, st.Started).True()
	gt.Value(t, st.Question).NotNil()

	for !st.ResultVisible {
		gt.Value(t, st.Question).NotNil().Required()
		w := c.postJSON("/api/cta/answer", map[string]string{"option": st.Question.Options[0]})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		c.scheduler.Wait()
		st = decode[qualification](t, c.get("/api/cta"))
	}
	gt.Array(t, st.Answers).Length(3)
	gt.String(t, st.Summary).Contains(st.Answers[0])

	st = decode[qualification](t, c.postJSON("/api/cta/reset", nil))
	gt.Bool(t, st.Started).False()
}

func TestDashboard(t *testing.T) {
	c := newClient(t)

	type dashboard struct {
		Mode            string `json:"mode"`
		CapitalAdequacy []struct {
			Display string `json:"display"`
		} `json:"capital_adequacy"`
	}

	d := decode[dashboard](t, c.get("/api/dashboard"))
	gt.Value(t, d.Mode).Equal("bot")
	gt.Array(t, d.CapitalAdequacy).Length(4)

	d = decode[dashboard](t, c.get("/api/dashboard?mode=manual"))
	gt.Value(t, d.Mode).Equal("manual")

	// The mode sticks to the session
	d = decode[dashboard](t, c.get("/api/dashboard"))
	gt.Value(t, d.Mode).Equal("manual")

	gt.Value(t, c.get("/api/dashboard?mode=fancy").Code).Equal(http.StatusBadRequest)

	w := c.postForm("/dashboard/mode", url.Values{"mode": {"bot"}})
	gt.Value(t, w.Code).Equal(http.StatusSeeOther)
	d = decode[dashboard](t, c.get("/api/dashboard"))
	gt.Value(t, d.Mode).Equal("bot")
}

func TestLookupAPIs(t *testing.T) {
	c := newClient(t)

	t.Run("timeline", func(t *testing.T) {
		var body struct {
			Region string `json:"region"`
			Events []struct {
				DaysRemaining int  `json:"days_remaining"`
				Late          bool `json:"late"`
			} `json:"events"`
		}
		w := c.get("/api/timeline?region=uk&delay=1")
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body.Region).Equal("uk")
		gt.Array(t, body.Events).Length(3)
		gt.Bool(t, body.Events[0].Late).True()
		gt.Bool(t, body.Events[2].Late).False()

		w = c.get("/api/timeline?region=mars")
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body.Region).Equal("eu")
	})

	t.Run("coverage", func(t *testing.T) {
		var body struct {
			Selected struct {
				ID string `json:"id"`
			} `json:"selected"`
		}
		gt.NoError(t, json.Unmarshal(c.get("/api/coverage?region=uk").Body.Bytes(), &body)).Required()
		gt.Value(t, body.Selected.ID).Equal("uk")
	})

	t.Run("comparison", func(t *testing.T) {
		var body struct {
			Columns []string `json:"columns"`
			Rows    []struct {
				Cells []struct {
					Score string `json:"score"`
				} `json:"cells"`
			} `json:"rows"`
		}
		gt.NoError(t, json.Unmarshal(c.get("/api/comparison").Body.Bytes(), &body)).Required()
		gt.Array(t, body.Columns).Length(3)
		gt.Array(t, body.Rows).Length(6)
		gt.Value(t, body.Rows[0].Cells[2].Score).Equal("good")
	})
}

func TestHealthAndStatic(t *testing.T) {
	c := newClient(t)

	w := c.get("/healthz")
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Body.String()).Contains(`"status":"ok"`)

	w = c.get("/static/site.css")
	gt.Value(t, w.Code).Equal(http.StatusOK)
	gt.String(t, w.Header().Get("Content-Type")).Contains("text/css")
}
