package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// ratingWindow is the number of recent matches the offensive/defensive
// ratings sample, matching the teacher corpus's season-statistics basis
// but bounded to a trailing window for freshness.
const ratingWindow = 10

// goalsPerGameCeiling caps the goals-per-game rate that maps to a rating
// of 1.0, matching the teacher corpus's tactical style analysis.
const goalsPerGameCeiling = 3.0

// goalRatingSample computes goals for/against per game over a team's
// recent matches, shared by the offensive and defensive collectors.
func goalRatingSample(ctx context.Context, p provider.MatchProvider, teamExternalID string) (forPerGame, againstPerGame float64, played int, err error) {
	fixtures, err := p.RecentMatches(ctx, teamExternalID, ratingWindow)
	if err != nil {
		return 0, 0, 0, err
	}
	var goalsFor, goalsAgainst int
	for _, f := range fixtures {
		if !f.Finished || f.HomeScore == nil || f.AwayScore == nil {
			continue
		}
		played++
		if f.HomeExternalID == teamExternalID {
			goalsFor += *f.HomeScore
			goalsAgainst += *f.AwayScore
		} else {
			goalsFor += *f.AwayScore
			goalsAgainst += *f.HomeScore
		}
	}
	if played == 0 {
		return 0, 0, 0, nil
	}
	return float64(goalsFor) / float64(played), float64(goalsAgainst) / float64(played), played, nil
}

// OffensiveRatingCollector reports goals-per-game normalized against a
// fixed ceiling, grounded on the teacher corpus's tactical style analysis.
type OffensiveRatingCollector struct {
	Provider provider.MatchProvider
}

func NewOffensiveRatingCollector(p provider.MatchProvider) *OffensiveRatingCollector {
	return &OffensiveRatingCollector{Provider: p}
}

func (c *OffensiveRatingCollector) Parameter() model.Parameter { return model.OffensiveRating }

func (c *OffensiveRatingCollector) Collect(ctx context.Context, target Target) Result {
	forPerGame, _, played, err := goalRatingSample(ctx, c.Provider, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.OffensiveRating, apperr.New(apperr.Transient, "collector.OffensiveRating", err))
	}
	if played == 0 {
		return Unavailable(model.OffensiveRating, apperr.Newf(apperr.Permanent, "collector.OffensiveRating", "no finished matches for %s", target.TeamExternalID))
	}
	return Value(model.OffensiveRating, clamp(forPerGame/goalsPerGameCeiling, 0, 1))
}

// DefensiveRatingCollector reports an inverted goals-conceded-per-game
// rate, grounded on the teacher corpus's tactical style analysis.
type DefensiveRatingCollector struct {
	Provider provider.MatchProvider
}

func NewDefensiveRatingCollector(p provider.MatchProvider) *DefensiveRatingCollector {
	return &DefensiveRatingCollector{Provider: p}
}

func (c *DefensiveRatingCollector) Parameter() model.Parameter { return model.DefensiveRating }

func (c *DefensiveRatingCollector) Collect(ctx context.Context, target Target) Result {
	_, againstPerGame, played, err := goalRatingSample(ctx, c.Provider, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.DefensiveRating, apperr.New(apperr.Transient, "collector.DefensiveRating", err))
	}
	if played == 0 {
		return Unavailable(model.DefensiveRating, apperr.Newf(apperr.Permanent, "collector.DefensiveRating", "no finished matches for %s", target.TeamExternalID))
	}
	return Value(model.DefensiveRating, clamp(1.0-againstPerGame/goalsPerGameCeiling, 0, 1))
}
