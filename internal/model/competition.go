package model

import "github.com/google/uuid"

// CompetitionType distinguishes domestic leagues from international
// tournaments (spec.md §3).
type CompetitionType string

const (
	DomesticLeague  CompetitionType = "domestic-league"
	International   CompetitionType = "international"
)

// Competition identifies a league or tournament scope within a season —
// the unit of normalization (spec.md §3, GLOSSARY).
type Competition struct {
	ID              uuid.UUID
	Name            string
	Country         string // "international" for CompetitionType International
	Type            CompetitionType
	Season          string
	Tier            int
	ExternalLeagueID string
}

// Key identifies the (competition, season) normalization scope.
type CompetitionSeasonKey struct {
	CompetitionID uuid.UUID
	Season        string
}

func (c *Competition) Key() CompetitionSeasonKey {
	return CompetitionSeasonKey{CompetitionID: c.ID, Season: c.Season}
}
