package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// TacticalMatchupCollector scores how balanced and consistent a team's
// attacking and defensive output is, derived from the same goal-rating
// sample as OffensiveRatingCollector/DefensiveRatingCollector. Grounded
// on the teacher corpus's tactical score formula: 30% balance (how close
// offense and defense are to each other) plus 70% overall consistency.
// Cross-team pairwise style clashes are resolved by the Odds Engine at
// match time, not here — this collector reports a per-team baseline only.
type TacticalMatchupCollector struct {
	Provider provider.MatchProvider
}

func NewTacticalMatchupCollector(p provider.MatchProvider) *TacticalMatchupCollector {
	return &TacticalMatchupCollector{Provider: p}
}

func (c *TacticalMatchupCollector) Parameter() model.Parameter { return model.TacticalMatchup }

func (c *TacticalMatchupCollector) Collect(ctx context.Context, target Target) Result {
	forPerGame, againstPerGame, played, err := goalRatingSample(ctx, c.Provider, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.TacticalMatchup, apperr.New(apperr.Transient, "collector.TacticalMatchup", err))
	}
	if played == 0 {
		return Unavailable(model.TacticalMatchup, apperr.Newf(apperr.Permanent, "collector.TacticalMatchup", "no finished matches for %s", target.TeamExternalID))
	}

	offensive := clamp(forPerGame/goalsPerGameCeiling, 0, 1)
	defensive := clamp(1.0-againstPerGame/goalsPerGameCeiling, 0, 1)

	balance := 1.0 - absFloat(offensive-defensive)
	consistency := (offensive + defensive) / 2
	score := balance*0.3 + consistency*0.7

	return Value(model.TacticalMatchup, score)
}
