package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/albapepper/strength-engine/internal/api/respond"
)

// StrengthByName handles GET /api/v1/strength/{name}?season=.
func (h *Handler) StrengthByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	season := r.URL.Query().Get("season")

	result, err := h.Query.StrengthByName(r.Context(), name, season)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, result)
}
