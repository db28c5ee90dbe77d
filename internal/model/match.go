package model

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus tracks a fixture's lifecycle.
type MatchStatus string

const (
	MatchScheduled MatchStatus = "scheduled"
	MatchFinished  MatchStatus = "finished"
	MatchAbandoned MatchStatus = "abandoned"
)

// Match is the optional entity used by some collectors (form, h2h,
// offensive/defensive rating) that need recent results. Uniqueness is by
// ExternalFixtureID (spec.md §3).
type Match struct {
	ExternalFixtureID string
	HomeTeamID        uuid.UUID
	AwayTeamID        uuid.UUID
	CompetitionID     uuid.UUID
	Season            string
	Kickoff           time.Time
	Status            MatchStatus
	HomeScore         *int
	AwayScore         *int
}

// Finished reports whether the match has a final score.
func (m *Match) Finished() bool {
	return m.Status == MatchFinished && m.HomeScore != nil && m.AwayScore != nil
}

// Points returns the 3/1/0 result points for the given team ID, and false
// if the match is not finished or the team did not play in it.
func (m *Match) Points(teamID uuid.UUID) (int, bool) {
	if !m.Finished() {
		return 0, false
	}
	switch teamID {
	case m.HomeTeamID:
		return resultPoints(*m.HomeScore, *m.AwayScore), true
	case m.AwayTeamID:
		return resultPoints(*m.AwayScore, *m.HomeScore), true
	default:
		return 0, false
	}
}

func resultPoints(scored, conceded int) int {
	switch {
	case scored > conceded:
		return 3
	case scored == conceded:
		return 1
	default:
		return 0
	}
}

// Opponent returns the other team's ID for a team known to have played in
// the match.
func (m *Match) Opponent(teamID uuid.UUID) uuid.UUID {
	if teamID == m.HomeTeamID {
		return m.AwayTeamID
	}
	return m.HomeTeamID
}
