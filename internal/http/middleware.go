package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	"github.com/rogerio-castellano/smart-inventory/internal/metrics"
)

const (
	msgNoToken      = "Access denied. No token provided."
	msgInvalidToken = "Invalid token."
	msgUnknownUser  = "User not found."
	msgForbidden    = "Access denied. Insufficient permissions."
)

// Authorizer guards routes with bearer tokens. When disabled every request
// passes untouched.
type Authorizer struct {
	auth    *auth.AuthService
	enabled bool
}

func NewAuthorizer(authSvc *auth.AuthService, enabled bool) *Authorizer {
	return &Authorizer{auth: authSvc, enabled: enabled}
}

// Authenticate resolves the bearer token and stores the user in the request
// context.
func (a *Authorizer) Authenticate(next http.Handler) http.Handler {
	if !a.enabled {
		return next
	}
	return a.RequireUser(next)
}

// RequireUser authenticates regardless of whether auth is enabled.
func (a *Authorizer) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			handlers.WriteError(w, http.StatusUnauthorized, msgNoToken)
			return
		}

		user, err := a.auth.Authenticate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			msg := msgInvalidToken
			if errors.Is(err, auth.ErrUnknownUser) {
				msg = msgUnknownUser
			}
			handlers.WriteError(w, http.StatusUnauthorized, msg)
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
	})
}

// Require rejects authenticated users whose role lacks p. It must run after
// Authenticate.
func (a *Authorizer) Require(p auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !a.enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok {
				handlers.WriteError(w, http.StatusUnauthorized, msgNoToken)
				return
			}
			if err := auth.Authorize(user, p); err != nil {
				handlers.WriteError(w, http.StatusForbidden, msgForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger writes one access log line per request.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			logger.Info().
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", time.Since(start)).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}

// Metrics records request counts and latency keyed by chi route pattern so
// item ids do not explode label cardinality.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
