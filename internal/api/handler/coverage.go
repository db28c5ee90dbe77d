package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/api/respond"
	"github.com/albapepper/strength-engine/internal/apperr"
)

// Coverage handles GET /api/v1/coverage/{competitionID}?season=.
func (h *Handler) Coverage(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "competitionID")
	competitionID, err := uuid.Parse(raw)
	if err != nil {
		respond.Error(w, apperr.New(apperr.Invalid, "handler.Coverage", err))
		return
	}
	season := r.URL.Query().Get("season")

	report, err := h.Query.Coverage(r.Context(), competitionID, season)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, report)
}
