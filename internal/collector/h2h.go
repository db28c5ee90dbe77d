package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// h2hWindow bounds how many historical head-to-head fixtures are sampled
// against each opponent.
const h2hWindow = 10

// h2hNeutralScore is reported when a team has no recorded head-to-head
// history at all, matching the teacher corpus's neutral fallback.
const h2hNeutralScore = 0.5

// H2HPerformanceCollector reports a team's average historical
// head-to-head performance against every opponent it currently shares a
// competition with. Grounded on the teacher corpus's H2H strength score:
// points ratio (0-0.7 weight) plus a goal-difference-per-match bonus
// (clamped +/-0.15), scaled from the original 0-100 range down to 0-1.
// Per-pairing refinement for a specific upcoming fixture is left to the
// Odds Engine; this collector reports a team-level baseline only.
type H2HPerformanceCollector struct {
	Matches provider.MatchProvider
	Teams   func(ctx context.Context) ([]string, error)
}

// NewH2HPerformanceCollector wires the match provider and a lister of
// opponent external IDs currently sharing the team's competition.
func NewH2HPerformanceCollector(matches provider.MatchProvider, opponents func(ctx context.Context) ([]string, error)) *H2HPerformanceCollector {
	return &H2HPerformanceCollector{Matches: matches, Teams: opponents}
}

func (c *H2HPerformanceCollector) Parameter() model.Parameter { return model.H2HPerformance }

func (c *H2HPerformanceCollector) Collect(ctx context.Context, target Target) Result {
	opponents, err := c.Teams(ctx)
	if err != nil {
		return Unavailable(model.H2HPerformance, apperr.New(apperr.Transient, "collector.H2HPerformance", err))
	}

	var scores []float64
	for _, opponentExtID := range opponents {
		if opponentExtID == target.TeamExternalID {
			continue
		}
		fixtures, err := c.Matches.HeadToHead(ctx, target.TeamExternalID, opponentExtID, h2hWindow)
		if err != nil || len(fixtures) == 0 {
			continue
		}
		scores = append(scores, h2hScoreAgainst(fixtures, target.TeamExternalID))
	}

	if len(scores) == 0 {
		return Value(model.H2HPerformance, h2hNeutralScore)
	}
	var sum float64
	for _, s := range scores {
		sum += s
	}
	return Value(model.H2HPerformance, sum/float64(len(scores)))
}

func h2hScoreAgainst(fixtures []provider.Fixture, teamExternalID string) float64 {
	matches := 0
	var wins, draws int
	var goalsFor, goalsAgainst int
	for _, f := range fixtures {
		if !f.Finished || f.HomeScore == nil || f.AwayScore == nil {
			continue
		}
		matches++
		points := matchPoints(f, teamExternalID)
		switch points {
		case 3:
			wins++
		case 1:
			draws++
		}
		if f.HomeExternalID == teamExternalID {
			goalsFor += *f.HomeScore
			goalsAgainst += *f.AwayScore
		} else {
			goalsFor += *f.AwayScore
			goalsAgainst += *f.HomeScore
		}
	}
	if matches == 0 {
		return h2hNeutralScore
	}

	points := wins*3 + draws
	pointsRatio := float64(points) / float64(matches*3)
	goalDiffPerMatch := float64(goalsFor-goalsAgainst) / float64(matches)

	base := pointsRatio * 0.70
	goalBonus := clamp(goalDiffPerMatch*0.10, -0.15, 0.15)

	return clamp(base+goalBonus, 0, 1)
}
