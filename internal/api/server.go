// Package api wires the Query API's chi router: middleware stack, health
// checks, swagger docs, and the /api/v1 route tree. Route handlers live in
// internal/api/handler and delegate to internal/query.Service.
package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/albapepper/strength-engine/internal/api/handler"
	"github.com/albapepper/strength-engine/internal/cache"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/query"
)

// NewRouter builds the Chi router with all middleware and routes wired.
func NewRouter(svc *query.Service, appCache *cache.Cache, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(svc, appCache, cfg, logger)

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/teams", h.ListTeams)
		r.Get("/strength/{name}", h.StrengthByName)
		r.Get("/odds/{home}/{away}", h.MatchOdds)
		r.Get("/coverage/{competitionID}", h.Coverage)
	})

	return r
}
