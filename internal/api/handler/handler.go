// Package handler implements the Query API's HTTP surface. Every handler
// delegates to internal/query.Service and never touches store.Repository
// or the odds package directly, keeping the HTTP layer a thin adapter.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/albapepper/strength-engine/internal/api/respond"
	"github.com/albapepper/strength-engine/internal/cache"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/query"
)

// Handler holds the dependencies every route needs.
type Handler struct {
	Query  *query.Service
	Cache  *cache.Cache
	Config *config.Config
	Logger *slog.Logger
}

func New(q *query.Service, c *cache.Cache, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{Query: q, Cache: c, Config: cfg, Logger: logger}
}

// Root reports basic service identity.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{
		"service": "strength-engine",
		"status":  "ok",
	})
}

// HealthCheck reports liveness without touching any dependency.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheckCache verifies Redis connectivity.
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	if h.Cache == nil {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "disabled"})
		return
	}
	if err := h.Cache.Ping(r.Context()); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
