package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/secmon-lab/reportingbot/pkg/domain/model"
	"github.com/secmon-lab/reportingbot/pkg/usecase"
	"github.com/secmon-lab/reportingbot/pkg/utils/errutil"
	"github.com/secmon-lab/reportingbot/pkg/utils/logging"
	"golang.org/x/time/rate"
)

// SessionCookieName carries the visitor's session ID
const SessionCookieName = "rb_session"

// Default limits of the chat endpoints per client IP
const (
	DefaultRateLimit = 2
	DefaultRateBurst = 5
)

// visitorTTL is how long an idle client keeps its limiter
const visitorTTL = 3 * time.Minute

type sessionIDCtxKey struct{}

func contextWithSessionID(ctx context.Context, id model.SessionID) context.Context {
	return context.WithValue(ctx, sessionIDCtxKey{}, id)
}

// sessionIDFrom returns the session resolved by sessionMiddleware
func sessionIDFrom(ctx context.Context) model.SessionID {
	if id, ok := ctx.Value(sessionIDCtxKey{}).(model.SessionID); ok {
		return id
	}
	return ""
}

// sessionMiddleware resolves the visitor's session from the cookie. Missing,
// malformed and expired sessions are replaced by a fresh one.
func sessionMiddleware(sessions *usecase.SessionUseCase, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var raw string
			if cookie, err := r.Cookie(SessionCookieName); err == nil {
				raw = cookie.Value
			}

			sess, created, err := sessions.Ensure(ctx, raw)
			if err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
				return
			}
			if created {
				http.SetCookie(w, &http.Cookie{
					Name:     SessionCookieName,
					Value:    sess.ID.String(),
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx = contextWithSessionID(ctx, sess.ID)
			ctx = logging.With(ctx, logging.From(ctx).With(slog.String("session_id", sess.ID.String())))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RateLimiter manages per-IP token buckets
type RateLimiter struct {
	visitors    map[string]*visitor
	mu          sync.Mutex
	limit       rate.Limit
	burst       int
	now         func() time.Time
	lastCleanup time.Time
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows rps requests per second per client IP, with bursts up to burst
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(rps),
		burst:    burst,
		now:      time.Now,
	}
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastCleanup) > time.Minute {
		for key, v := range rl.visitors {
			if now.Sub(v.lastSeen) > visitorTTL {
				delete(rl.visitors, key)
			}
		}
		rl.lastCleanup = now
	}

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.allow(ip) {
			logging.From(r.Context()).Warn("rate limit exceeded", "remote", ip, "path", r.URL.Path)
			w.Header().Set("Retry-After", "1")
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = strings.TrimSuffix(strings.TrimPrefix(r.RemoteAddr, "["), "]")
	}
	return ip
}
