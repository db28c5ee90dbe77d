// Package provider defines the boundary between the strength engine and
// external data sources. Collectors depend only on these interfaces;
// concrete clients (rating feeds, valuation feeds, results feeds) are
// injected at wiring time and are out of scope here (spec.md §6, Non-goals).
package provider

import (
	"context"
	"time"
)

// RatingSnapshot is one point-in-time rating reading for a team, as
// reported by an external rating provider (e.g. an Elo feed).
type RatingSnapshot struct {
	TeamExternalID string
	Rating         float64
	AsOf           time.Time
}

// RatingProvider supplies Elo-style ratings. Grounds the Elo collector.
type RatingProvider interface {
	Rating(ctx context.Context, teamExternalID string) (RatingSnapshot, error)
}

// ValuationSnapshot is a squad's aggregate market value.
type ValuationSnapshot struct {
	TeamExternalID string
	TotalValue     float64
	Currency       string
	SquadSize      int
	AsOf           time.Time
}

// ValuationProvider supplies squad market-value data. Grounds the
// squad_value collector; squad_depth reads per-player values from
// SquadProvider instead.
type ValuationProvider interface {
	Valuation(ctx context.Context, teamExternalID string) (ValuationSnapshot, error)
}

// Fixture is one scheduled or completed match as reported by a results
// feed, independent of the internal model.Match representation.
type Fixture struct {
	ExternalFixtureID string
	HomeExternalID     string
	AwayExternalID     string
	Kickoff            time.Time
	Finished           bool
	HomeScore          *int
	AwayScore          *int
}

// MatchProvider supplies recent results and head-to-head history. Grounds
// the form, h2h_performance, offensive_rating, and defensive_rating
// collectors.
type MatchProvider interface {
	RecentMatches(ctx context.Context, teamExternalID string, limit int) ([]Fixture, error)
	HeadToHead(ctx context.Context, homeExternalID, awayExternalID string, limit int) ([]Fixture, error)
}

// StandingsEntry is one row of a league table.
type StandingsEntry struct {
	TeamExternalID string
	Position       int
	Points         int
	GoalDifference int
}

// StandingsProvider supplies league position, used by the motivation
// collector's percentile-bucket mapping.
type StandingsProvider interface {
	Standings(ctx context.Context, competitionExternalID, season string) ([]StandingsEntry, error)
}

// SquadMember is one named player with an availability flag, used by the
// key_player_availability and squad_depth collectors.
type SquadMember struct {
	Name         string
	Position     string
	Age          int
	IsKeyPlayer  bool
	Available    bool
	MarketValue  float64
	ImportanceScore float64
}

// SquadProvider supplies current squad lists with availability and
// key-player flags.
type SquadProvider interface {
	Squad(ctx context.Context, teamExternalID string) ([]SquadMember, error)
}

// Bundle groups the concrete providers a deployment wires in. The
// orchestrator's collector registry is built from one of these; nothing in
// this module constructs a Bundle itself, since concrete feed clients are
// out of scope here.
type Bundle struct {
	Ratings   RatingProvider
	Valuation ValuationProvider
	Matches   MatchProvider
	Standings StandingsProvider
	Squads    SquadProvider
	// Opponents lists every external team ID the head-to-head collector
	// should search history against.
	Opponents func(ctx context.Context) ([]string, error)
}
