package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/cashflow/internal/adapter/http/handler"
	"github.com/iho/cashflow/internal/adapter/http/middleware"
	"github.com/iho/cashflow/internal/domain"
	"github.com/iho/cashflow/internal/infrastructure/auth"
	"github.com/iho/cashflow/internal/infrastructure/metrics"
	"github.com/iho/cashflow/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AuthHandler          *handler.AuthHandler
	EntryHandler         *handler.EntryHandler
	ConsolidationHandler *handler.ConsolidationHandler
	HealthHandler        *handler.HealthHandler

	JWTManager       *auth.JWTManager
	AuthEnabled      bool
	IdempotencyStore usecase.IdempotencyStore
	IdempotencyTTL   time.Duration
	Metrics          *metrics.Metrics
	RateLimiter      *middleware.RateLimiter
	Logger           zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	if cfg.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.Metrics).Wrap)
	}
	r.Use(middleware.Recovery)
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	requireAuth := passthrough
	requireWriter := passthrough
	if cfg.AuthEnabled {
		requireAuth = middleware.AuthMiddleware(cfg.JWTManager)
		requireWriter = middleware.RequireRole(domain.RoleAdmin)
	}

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)

			r.Route("/entries", func(r chi.Router) {
				r.Get("/", cfg.EntryHandler.List)
				r.Get("/{id}", cfg.EntryHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(requireWriter)
					if cfg.IdempotencyStore != nil {
						r.Use(middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL).Wrap)
					}

					r.Post("/", cfg.EntryHandler.Create)
					r.Put("/{id}", cfg.EntryHandler.Update)
					r.Delete("/{id}", cfg.EntryHandler.Delete)
				})
			})

			r.Route("/consolidations", func(r chi.Router) {
				r.Get("/daily/{date}", cfg.ConsolidationHandler.GetDaily)
				r.Get("/range", cfg.ConsolidationHandler.GetRange)
				r.Get("/range/statistics", cfg.ConsolidationHandler.GetStatistics)
			})
		})
	})

	return r
}

func passthrough(next http.Handler) http.Handler {
	return next
}
