// Package store implements the Data Store (spec.md §4.1): durable,
// concurrent-safe storage for teams, competitions, and the per-team raw,
// normalized, and aggregate parameter values that the rest of the system
// is derived from. Repository is the only layer aware of the underlying
// engine — normalizer, aggregator, orchestrator, and query consume this
// interface, never a SQL dialect directly (spec.md §9, Design Notes).
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/model"
)

// AggregateWrite is the payload the Aggregator hands the store for one
// team-in-competition after a refresh cycle: the full set of derived
// values, written atomically together with their timestamp.
type AggregateWrite struct {
	TeamID              uuid.UUID
	CompetitionID       uuid.UUID
	Season              string
	Normalized          map[model.Parameter]*float64
	OverallStrength     *float64
	LocalLeagueStrength *float64
	EuropeanStrength    *float64
	Confidence          float64
}

// CoverageRow summarizes non-null counts for one parameter within a
// competition — the unit the Orchestrator's coverage report and the Query
// API's freshness report are both built from (spec.md §6).
type CoverageRow struct {
	Parameter     model.Parameter
	NonNullCount  int
	TotalTeams    int
	OldestUpdated time.Time
	NewestUpdated time.Time
}

// Repository is the Data Store contract. Implementations must guarantee:
// writes are serializable at the row level, readers never observe a dirty
// (partially written) row, and a long read scan never blocks a single-row
// upsert (spec.md §4.1, §5).
type Repository interface {
	// EnsureTeam returns the Team with this name, creating it if this is
	// the first time it has been observed. Name is unique within scope.
	EnsureTeam(ctx context.Context, name string) (*model.Team, error)
	GetTeamByName(ctx context.Context, name string) (*model.Team, error)
	ListTeams(ctx context.Context, competitionID *uuid.UUID) ([]*model.Team, error)

	// EnsureCompetition returns the Competition matching (name, season),
	// creating it if a collector is discovering it for the first time.
	EnsureCompetition(ctx context.Context, name string, typ model.CompetitionType, country, season string, tier int) (*model.Competition, error)
	GetCompetition(ctx context.Context, id uuid.UUID) (*model.Competition, error)
	ListCompetitionsInSeason(ctx context.Context, season string, typ *model.CompetitionType) ([]*model.Competition, error)

	// UpsertRaw writes a single raw parameter value atomically — either
	// the whole row is written or nothing is (spec.md §5). Creates the
	// TeamInCompetition record if this is the first value observed for
	// the triple. value is never nil: collectors that cannot produce a
	// value return apperr.Transient/Permanent instead of calling this.
	UpsertRaw(ctx context.Context, teamID, competitionID uuid.UUID, season string, parameter model.Parameter, value float64) error

	// RawValues returns the raw value of one parameter for every team
	// that has a TeamInCompetition record in (competitionID, season).
	// This is the Normalizer's sole input (spec.md §4.3).
	RawValues(ctx context.Context, competitionID uuid.UUID, season string, parameter model.Parameter) (map[uuid.UUID]*float64, error)

	// ListTeamsInCompetition returns every team with a TeamInCompetition
	// record in (competitionID, season), used by the orchestrator's
	// cross-competition pass to drive its per-team aggregation.
	ListTeamsInCompetition(ctx context.Context, competitionID uuid.UUID, season string) ([]uuid.UUID, error)

	// WriteAggregate persists the Normalizer+Aggregator output for one
	// team-in-competition as a single atomic write.
	WriteAggregate(ctx context.Context, w AggregateWrite) error

	// Get returns the full TeamInCompetition record, or an
	// apperr.Permanent error if none exists for the triple.
	Get(ctx context.Context, teamID, competitionID uuid.UUID, season string) (*model.TeamInCompetition, error)

	// GetAllForTeam resolves a team across every competition it has a
	// record in for the given season (used by the Query API's strength
	// lookup, which accepts just a team name).
	GetAllForTeam(ctx context.Context, teamID uuid.UUID, season string) ([]*model.TeamInCompetition, error)

	// Coverage reports per-parameter non-null counts and freshness
	// bounds for a (competition, season) scope.
	Coverage(ctx context.Context, competitionID uuid.UUID, season string) ([]CoverageRow, error)
}
