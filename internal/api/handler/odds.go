package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/strength-engine/internal/api/respond"
)

// MatchOdds handles GET /api/v1/odds/{home}/{away}?season=&venue=away.
// venueHome defaults to true (home team plays at home) unless venue=away
// is given.
func (h *Handler) MatchOdds(w http.ResponseWriter, r *http.Request) {
	home := chi.URLParam(r, "home")
	away := chi.URLParam(r, "away")
	season := r.URL.Query().Get("season")
	venueHome := r.URL.Query().Get("venue") != "away"

	odds, err := h.Query.MatchOdds(r.Context(), home, away, season, venueHome)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, odds)
}
