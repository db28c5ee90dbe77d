package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/api/respond"
	"github.com/albapepper/strength-engine/internal/apperr"
)

// ListTeams handles GET /api/v1/teams, optionally scoped by
// ?competition_id=.
func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	var competitionID *uuid.UUID
	if raw := r.URL.Query().Get("competition_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respond.Error(w, apperr.New(apperr.Invalid, "handler.ListTeams", err))
			return
		}
		competitionID = &id
	}

	teams, err := h.Query.ListTeams(r.Context(), competitionID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, teams)
}
