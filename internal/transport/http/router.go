// Package http assembles the HTTP API: summary and validation
// endpoints, health checks, and Prometheus metrics behind the shared
// middleware chain.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescope/internal/config"
	apierrors "salescope/internal/errors"
	"salescope/internal/middleware"
)

// NewRouter builds the full route tree for the web server.
func NewRouter(service SummaryServiceInterface, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	errorHandler := apierrors.NewErrorHandler(logger)
	metrics := NewMetrics()

	summaryHandler := NewSummaryHandler(service, logger, errorHandler)
	healthHandler := NewHealthHandler(service, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(metrics.Middleware)
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	}

	r.Mount("/api", summaryHandler.Routes())
	r.Get("/healthz", healthHandler.HealthCheck)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
