package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/smart-inventory/docs"
	"github.com/rogerio-castellano/smart-inventory/internal/auth"
	"github.com/rogerio-castellano/smart-inventory/internal/http/handlers"
	rl "github.com/rogerio-castellano/smart-inventory/internal/http/rate_limiter"
	"github.com/rogerio-castellano/smart-inventory/internal/metrics"
)

type RouterOptions struct {
	AuthEnabled        bool
	CORSAllowedOrigins []string
	// TrustProxyHeaders rewrites RemoteAddr from proxy headers before
	// logging and rate limiting.
	TrustProxyHeaders bool
	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *rl.Limiter
	Logger      zerolog.Logger
}

func NewRouter(srv *handlers.Server, authSvc *auth.AuthService, opts RouterOptions) http.Handler {
	authz := NewAuthorizer(authSvc, opts.AuthEnabled)

	origins := opts.CORSAllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if opts.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		ExposedHeaders: []string{"X-Total-Count"},
		MaxAge:         300,
	}))
	if opts.RateLimiter != nil {
		r.Use(opts.RateLimiter.Middleware)
	}

	r.Get("/health", srv.HealthHandler)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", srv.HealthHandler)
		r.Post("/auth/login", srv.LoginHandler)
		r.With(authz.RequireUser).Get("/auth/me", srv.MeHandler)

		r.Group(func(r chi.Router) {
			r.Use(authz.Authenticate)

			view := authz.Require(auth.PermissionView)
			r.With(view).Get("/inventory", srv.ListItemsHandler)
			r.With(authz.Require(auth.PermissionCreate)).Post("/inventory", srv.CreateItemHandler)
			r.With(view).Get("/inventory/{id}", srv.GetItemHandler)
			r.With(authz.Require(auth.PermissionEdit)).Put("/inventory/{id}", srv.UpdateItemHandler)
			r.With(authz.Require(auth.PermissionDelete)).Delete("/inventory/{id}", srv.DeleteItemHandler)
			r.With(view).Get("/inventory/{id}/suggest-reorder", srv.SuggestReorderHandler)

			r.With(view).Get("/summary/low-stock", srv.LowStockSummaryHandler)
			r.With(view).Get("/stats", srv.StatsHandler)
			r.With(view).Get("/categories", srv.CategoriesHandler)
		})
	})

	return r
}
