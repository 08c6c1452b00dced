package http

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/reportingbot/frontend"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
)

type Server struct {
	router       *chi.Mux
	uc           *usecase.UseCases
	limiter      *RateLimiter
	secureCookie bool
}

type Options func(*Server)

// WithRateLimiter replaces the per-IP limiter guarding the chat endpoints
func WithRateLimiter(limiter *RateLimiter) Options {
	return func(s *Server) {
		s.limiter = limiter
	}
}

// WithSecureCookie marks the session cookie Secure, for deployments behind TLS
func WithSecureCookie(secure bool) Options {
	return func(s *Server) {
		s.secureCookie = secure
	}
}

func New(uc *usecase.UseCases, opts ...Options) (*Server, error) {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.limiter == nil {
		s.limiter = NewRateLimiter(DefaultRateLimit, DefaultRateBurst)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(frontend.StaticFiles, "dist")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to bind dist dir for static")
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	r.Get("/healthz", healthHandler(uc))

	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(uc.Session, s.secureCookie))

		// Landing page and its no-JavaScript form endpoints
		r.Get("/", s.landingHandler)
		r.Route("/checker", func(r chi.Router) {
			r.Post("/answer", s.checkerAnswerForm)
			r.Post("/next", s.checkerNextForm)
			r.Post("/back", s.checkerBackForm)
			r.Post("/reset", s.checkerResetForm)
		})
		r.Route("/chat", func(r chi.Router) {
			r.With(s.limiter.Middleware).Post("/send", s.chatSendForm)
			r.Post("/reset", s.chatResetForm)
		})
		r.Route("/cta", func(r chi.Router) {
			r.Post("/start", s.ctaStartForm)
			r.Post("/answer", s.ctaAnswerForm)
			r.Post("/reset", s.ctaResetForm)
		})
		r.Post("/dashboard/mode", s.dashboardModeForm)

		r.Route("/api", func(r chi.Router) {
			r.Get("/checker", s.apiChecker)
			r.Post("/checker/answer", s.apiCheckerAnswer)
			r.Post("/checker/next", s.apiCheckerNext)
			r.Post("/checker/back", s.apiCheckerBack)
			r.Post("/checker/reset", s.apiCheckerReset)

			r.Get("/chat", s.apiChat)
			r.With(s.limiter.Middleware).Post("/chat", s.apiChatSend)
			r.Post("/chat/reset", s.apiChatReset)

			r.Get("/cta", s.apiCTA)
			r.Post("/cta/start", s.apiCTAStart)
			r.Post("/cta/answer", s.apiCTAAnswer)
			r.Post("/cta/reset", s.apiCTAReset)

			r.Get("/dashboard", s.apiDashboard)
			r.Get("/timeline", s.apiTimeline)
			r.Get("/coverage", s.apiCoverage)
			r.Get("/comparison", s.apiComparison)
			r.Post("/assess", s.apiAssess)
		})
	})

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
				"request_id", middleware.GetReqID(r.Context()),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
