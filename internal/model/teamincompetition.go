package model

import (
	"time"

	"github.com/google/uuid"
)

// TeamInCompetition is the central record of the data model: a team's
// presence within a specific (competition, season), carrying raw and
// normalized parameter values and derived strengths (spec.md §3).
//
// Raw values are always preserved; normalized and aggregate values are
// derived — they are never written directly by a collector, only by the
// Normalizer and Aggregator.
type TeamInCompetition struct {
	TeamID        uuid.UUID
	CompetitionID uuid.UUID
	Season        string

	// Raw holds one entry per Parameter that has ever been collected. A
	// missing key and an explicit nil both mean "no value" — collectors
	// only ever write through Store.UpsertRaw, which always sets a key.
	Raw map[Parameter]*float64

	// Normalized holds the per-parameter min-max rescaled value in [0,1],
	// computed by the Normalizer. nil means the raw value was nil.
	Normalized map[Parameter]*float64

	// OverallStrength is the weighted aggregate in [0,1], or nil if
	// undefined under the active partial-coverage policy (spec.md §4.4).
	OverallStrength *float64

	// LocalLeagueStrength is OverallStrength recomputed with every
	// parameter normalized strictly within this team's own
	// (competition, season) — identical to OverallStrength under the
	// default normalization scope, but kept distinct so cross-competition
	// lookups have an unambiguous same-scope value to read.
	LocalLeagueStrength *float64

	// EuropeanStrength is the team's strength recomputed with every
	// parameter normalized across the union of all domestic-league
	// competitions in the same season (spec.md §4.3).
	EuropeanStrength *float64

	// Confidence is the fraction of positive-weight parameters present,
	// i.e. 1.0 when every weighted parameter had a non-null normalized
	// value, lower under skip-and-renormalize partial coverage. Always
	// 1.0 when OverallStrength is nil under strict-null policy.
	Confidence float64

	LastUpdated time.Time
}

// NewTeamInCompetition creates an empty record for the (team, competition,
// season) triple. TeamInCompetition is unique per that triple (spec.md §3).
func NewTeamInCompetition(teamID, competitionID uuid.UUID, season string) *TeamInCompetition {
	return &TeamInCompetition{
		TeamID:        teamID,
		CompetitionID: competitionID,
		Season:        season,
		Raw:           make(map[Parameter]*float64),
		Normalized:    make(map[Parameter]*float64),
	}
}

// StrengthPercentage returns OverallStrength scaled to 0-100 for display.
// The 0-1 value is canonical; the percentage is a presentation convenience
// only, never persisted (spec.md §9, Open Question on strength drift).
func (t *TeamInCompetition) StrengthPercentage() *float64 {
	if t.OverallStrength == nil {
		return nil
	}
	pct := *t.OverallStrength * 100
	return &pct
}

// Key identifies the unique (team, competition, season) triple.
type TeamInCompetitionKey struct {
	TeamID        uuid.UUID
	CompetitionID uuid.UUID
	Season        string
}

func (t *TeamInCompetition) Key() TeamInCompetitionKey {
	return TeamInCompetitionKey{TeamID: t.TeamID, CompetitionID: t.CompetitionID, Season: t.Season}
}
