// Package collector implements the Parameter Collectors (spec.md §4.2):
// one Collector per Parameter, each producing a raw value for a single
// team within a competition and season, or a typed reason why it could
// not (provider down, team unknown to the provider, insufficient history).
package collector

import (
	"context"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/model"
)

// Target identifies the (team, competition, season) a collector run is
// producing a value for, plus whatever external identifiers the provider
// needs to look the team up.
type Target struct {
	TeamID             uuid.UUID
	TeamExternalID     string
	CompetitionID      uuid.UUID
	CompetitionExtID   string
	Season             string
}

// Result is a collector's output: either a value, or an error describing
// why none could be produced. A nil error with a nil Value is never valid
// — unavailable data is always a typed apperr, never a bare zero.
type Result struct {
	Parameter model.Parameter
	Value     *float64
	Err       error
}

// Collector produces one parameter's raw value for one team. Implementations
// must be safe for concurrent use across distinct Targets; the orchestrator
// fans out many Targets across a bounded worker pool per spec.md §5.
type Collector interface {
	Parameter() model.Parameter
	Collect(ctx context.Context, target Target) Result
}

// Unavailable builds a Result carrying a typed error rather than a value.
func Unavailable(p model.Parameter, err error) Result {
	return Result{Parameter: p, Err: err}
}

// Value builds a successful Result.
func Value(p model.Parameter, v float64) Result {
	return Result{Parameter: p, Value: &v}
}
