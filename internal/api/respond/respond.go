// Package respond centralizes the JSON response envelope the HTTP
// handlers use, so every endpoint reports errors the same way.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/albapepper/strength-engine/internal/apperr"
)

type envelope struct {
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// JSON writes data as a successful JSON envelope.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Data: data})
}

// Error writes err as a JSON envelope, mapping its apperr.Kind to an HTTP
// status the way spec.md §7 categorizes failures for API consumers.
func Error(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.Invalid:
		status = http.StatusBadRequest
	case apperr.Permanent:
		status = http.StatusNotFound
	case apperr.Transient, apperr.Storage:
		status = http.StatusServiceUnavailable
	case apperr.Configuration:
		status = http.StatusInternalServerError
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Error: err.Error()})
}
