package orchestrator

import (
	"context"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/aggregator"
	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/normalizer"
	"github.com/albapepper/strength-engine/internal/store"
)

// europeanWrite preserves a team's existing local-scope normalized and
// strength values while overwriting EuropeanStrength with the freshly
// computed cross-competition outcome.
func europeanWrite(rec *model.TeamInCompetition, outcome aggregator.Outcome) store.AggregateWrite {
	return store.AggregateWrite{
		TeamID:              rec.TeamID,
		CompetitionID:       rec.CompetitionID,
		Season:              rec.Season,
		Normalized:          rec.Normalized,
		OverallStrength:     rec.OverallStrength,
		LocalLeagueStrength: rec.LocalLeagueStrength,
		EuropeanStrength:    outcome.OverallStrength,
		Confidence:          rec.Confidence,
	}
}

// RefreshEuropeanStrength recomputes EuropeanStrength for every team
// across every domestic-league competition in a season, normalizing each
// parameter over the union of those competitions rather than within a
// single one (spec.md §4.3's cross-competition normalization scope).
// This must run after RefreshCompetition has produced raw values for
// every competition in the season — it only reads raw values, never
// collects them.
func (o *Orchestrator) RefreshEuropeanStrength(ctx context.Context, season string) error {
	domestic := model.DomesticLeague
	competitions, err := o.Store.ListCompetitionsInSeason(ctx, season, &domestic)
	if err != nil {
		return apperr.New(apperr.Storage, "orchestrator.RefreshEuropeanStrength", err)
	}
	if len(competitions) == 0 {
		return nil
	}

	// teamCompetition remembers which competition each team belongs to, so
	// the per-parameter union below can still call RawValues per
	// competition (the Repository has no cross-competition raw query) and
	// merge results into one map keyed by team.
	teamCompetition := make(map[uuid.UUID]uuid.UUID)
	for _, comp := range competitions {
		teamIDs, err := o.Store.ListTeamsInCompetition(ctx, comp.ID, season)
		if err != nil {
			return apperr.New(apperr.Storage, "orchestrator.RefreshEuropeanStrength", err)
		}
		for _, teamID := range teamIDs {
			teamCompetition[teamID] = comp.ID
		}
	}
	if len(teamCompetition) == 0 {
		return nil
	}

	normalizedByParam := make(map[model.Parameter]map[uuid.UUID]*float64, len(model.Parameters))
	for _, p := range model.Parameters {
		union := make(map[uuid.UUID]*float64, len(teamCompetition))
		for _, comp := range competitions {
			raw, err := o.Store.RawValues(ctx, comp.ID, season, p)
			if err != nil {
				return apperr.New(apperr.Storage, "orchestrator.RefreshEuropeanStrength", err)
			}
			for teamID, v := range raw {
				union[teamID] = v
			}
		}
		normalizedByParam[p] = normalizer.Normalize(union, p.LowerIsBetter())
	}

	for teamID, competitionID := range teamCompetition {
		normalized := make(map[model.Parameter]*float64, len(model.Parameters))
		for _, p := range model.Parameters {
			normalized[p] = normalizedByParam[p][teamID]
		}
		outcome := aggregator.Aggregate(normalized, o.Config.Weights, o.Config.PartialCoveragePolicy)

		rec, err := o.Store.Get(ctx, teamID, competitionID, season)
		if err != nil {
			return apperr.New(apperr.Storage, "orchestrator.RefreshEuropeanStrength", err)
		}

		if err := o.Store.WriteAggregate(ctx, europeanWrite(rec, outcome)); err != nil {
			return apperr.New(apperr.Storage, "orchestrator.RefreshEuropeanStrength", err)
		}
	}
	return nil
}
