// Package query implements the Query API's read-only service layer
// (spec.md §4.7). It consumes only store.Repository and internal/odds —
// never a collector, the normalizer, or the aggregator — so a read never
// triggers a write or an external call.
package query

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/odds"
	"github.com/albapepper/strength-engine/internal/orchestrator"
	"github.com/albapepper/strength-engine/internal/store"
)

// Service answers the Query API's handlers.
type Service struct {
	Store store.Repository
	Odds  *odds.Engine
}

func New(repo store.Repository, oddsCfg config.OddsConfig) *Service {
	return &Service{Store: repo, Odds: odds.NewEngine(oddsCfg)}
}

// TeamStrength is the response shape for a single team's strength lookup
// (spec.md §6): the three derived strength variants, the per-parameter
// normalized values they were built from, and a display percentage.
type TeamStrength struct {
	Team                *model.Team
	CompetitionID       uuid.UUID
	Season              string
	OverallStrength     *float64
	LocalLeagueStrength *float64
	EuropeanStrength    *float64
	Normalized          map[model.Parameter]*float64
	StrengthPercent     *float64
	Confidence          float64
	LastUpdated         time.Time
}

// ListTeams returns every known team, optionally scoped to a competition.
func (s *Service) ListTeams(ctx context.Context, competitionID *uuid.UUID) ([]*model.Team, error) {
	return s.Store.ListTeams(ctx, competitionID)
}

// StrengthByName resolves a team by name and returns its strength in
// every competition it has a record in for the given season.
func (s *Service) StrengthByName(ctx context.Context, name, season string) ([]TeamStrength, error) {
	team, err := s.Store.GetTeamByName(ctx, name)
	if err != nil {
		return nil, err
	}
	records, err := s.Store.GetAllForTeam(ctx, team.ID, season)
	if err != nil {
		return nil, err
	}
	out := make([]TeamStrength, 0, len(records))
	for _, rec := range records {
		out = append(out, TeamStrength{
			Team:                team,
			CompetitionID:       rec.CompetitionID,
			Season:              rec.Season,
			OverallStrength:     rec.OverallStrength,
			LocalLeagueStrength: rec.LocalLeagueStrength,
			EuropeanStrength:    rec.EuropeanStrength,
			Normalized:          rec.Normalized,
			StrengthPercent:     rec.StrengthPercentage(),
			Confidence:          rec.Confidence,
			LastUpdated:         rec.LastUpdated,
		})
	}
	return out, nil
}

// MatchOdds computes priced odds for a fixture between two teams by name,
// in the given season, selecting the strength variant via odds.StrengthFor.
func (s *Service) MatchOdds(ctx context.Context, homeName, awayName, season string, venueHome bool) (odds.MatchOdds, error) {
	homeTeam, err := s.Store.GetTeamByName(ctx, homeName)
	if err != nil {
		return odds.MatchOdds{}, err
	}
	awayTeam, err := s.Store.GetTeamByName(ctx, awayName)
	if err != nil {
		return odds.MatchOdds{}, err
	}

	homeRecords, err := s.Store.GetAllForTeam(ctx, homeTeam.ID, season)
	if err != nil {
		return odds.MatchOdds{}, err
	}
	awayRecords, err := s.Store.GetAllForTeam(ctx, awayTeam.ID, season)
	if err != nil {
		return odds.MatchOdds{}, err
	}

	homeRec, awayRec, err := pairRecords(homeRecords, awayRecords)
	if err != nil {
		return odds.MatchOdds{}, err
	}

	homeStrength, awayStrength, variant, err := odds.StrengthFor(homeRec, awayRec)
	if err != nil {
		return odds.MatchOdds{}, err
	}

	return s.Odds.Price(homeStrength, awayStrength, venueHome, variant), nil
}

// pairRecords picks the shared-competition records when home and away
// play in the same competition, otherwise returns each team's first
// record so odds.StrengthFor falls back to cross-competition strength.
func pairRecords(home, away []*model.TeamInCompetition) (*model.TeamInCompetition, *model.TeamInCompetition, error) {
	if len(home) == 0 || len(away) == 0 {
		return nil, nil, apperr.Newf(apperr.Permanent, "query.pairRecords", "no strength record for one or both teams")
	}
	for _, h := range home {
		for _, a := range away {
			if h.CompetitionID == a.CompetitionID {
				return h, a, nil
			}
		}
	}
	return home[0], away[0], nil
}

// Coverage returns a freshness and completeness report for a competition.
func (s *Service) Coverage(ctx context.Context, competitionID uuid.UUID, season string) (orchestrator.CoverageReport, error) {
	rows, err := s.Store.Coverage(ctx, competitionID, season)
	if err != nil {
		return orchestrator.CoverageReport{}, err
	}
	return orchestrator.BuildCoverageReport(competitionID.String(), season, rows, time.Now()), nil
}
