package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// formWindow is the number of recent matches form considers (N=5).
const formWindow = 5

// formDecayPerMatch is the per-match-back recency multiplier: the most
// recent match has weight 1.0, each earlier one is multiplied by 0.9.
const formDecayPerMatch = 0.9

// FormCollector computes a recency-weighted, opponent-quality-scaled sum
// of match points over the team's last formWindow matches. Grounded on
// the teacher corpus's opponent-adjusted form calculation for the
// opponent scaling factor; the recency weighting and the weighted-sum
// output follow the fixed points-per-match contract directly.
type FormCollector struct {
	Matches provider.MatchProvider
	Ratings provider.RatingProvider
}

func NewFormCollector(matches provider.MatchProvider, ratings provider.RatingProvider) *FormCollector {
	return &FormCollector{Matches: matches, Ratings: ratings}
}

func (c *FormCollector) Parameter() model.Parameter { return model.Form }

func (c *FormCollector) Collect(ctx context.Context, target Target) Result {
	fixtures, err := c.Matches.RecentMatches(ctx, target.TeamExternalID, formWindow)
	if err != nil {
		return Unavailable(model.Form, apperr.New(apperr.Transient, "collector.Form", err))
	}
	finished := make([]provider.Fixture, 0, len(fixtures))
	for _, f := range fixtures {
		if f.Finished {
			finished = append(finished, f)
		}
	}
	if len(finished) == 0 {
		return Unavailable(model.Form, apperr.Newf(apperr.Permanent, "collector.Form", "no finished matches for %s", target.TeamExternalID))
	}

	var weightedSum float64
	timeWeight := 1.0
	for _, f := range finished {
		points := matchPoints(f, target.TeamExternalID)

		opponentWeight := 1.0
		if c.Ratings != nil {
			opponentID := f.AwayExternalID
			if f.AwayExternalID == target.TeamExternalID {
				opponentID = f.HomeExternalID
			}
			if snap, err := c.Ratings.Rating(ctx, opponentID); err == nil {
				opponentWeight = 0.5 + (snap.Rating-1000)/1000
				opponentWeight = clamp(opponentWeight, 0.5, 1.5)
			}
		}

		weightedSum += float64(points) * timeWeight * opponentWeight
		timeWeight *= formDecayPerMatch
	}

	return Value(model.Form, weightedSum)
}

func matchPoints(f provider.Fixture, teamExternalID string) int {
	isHome := f.HomeExternalID == teamExternalID
	var our, their int
	if f.HomeScore != nil {
		if isHome {
			our, their = *f.HomeScore, *f.AwayScore
		} else {
			our, their = *f.AwayScore, *f.HomeScore
		}
	}
	switch {
	case our > their:
		return 3
	case our == their:
		return 1
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
