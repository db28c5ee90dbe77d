package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// Position-ratio bucket boundaries (position / table size):
// titleRaceRatio marks the top quartile, europeanSpotsRatio the end of
// the European places, and relegationRatio the start of the bottom 15%
// treated as a relegation battle, matching the teacher corpus's cutoffs.
// closeRaceMargin is the points gap to the leader or to the last-placed
// team within which a bonus is added.
const titleRaceRatio = 0.25
const europeanSpotsRatio = 0.35
const relegationRatio = 0.85
const closeRaceMargin = 5

// MotivationCollector maps league position to a motivation score via the
// bucketed position-ratio curve in the teacher corpus's motivation factor
// collector: title race and relegation battles score highest, safe
// mid-table scores lowest.
type MotivationCollector struct {
	Provider provider.StandingsProvider
}

func NewMotivationCollector(p provider.StandingsProvider) *MotivationCollector {
	return &MotivationCollector{Provider: p}
}

func (c *MotivationCollector) Parameter() model.Parameter { return model.Motivation }

func (c *MotivationCollector) Collect(ctx context.Context, target Target) Result {
	table, err := c.Provider.Standings(ctx, target.CompetitionExtID, target.Season)
	if err != nil {
		return Unavailable(model.Motivation, apperr.New(apperr.Transient, "collector.Motivation", err))
	}
	if len(table) == 0 {
		return Unavailable(model.Motivation, apperr.Newf(apperr.Permanent, "collector.Motivation", "no standings for competition %s", target.CompetitionExtID))
	}

	total := len(table)
	var entry *provider.StandingsEntry
	for i := range table {
		if table[i].TeamExternalID == target.TeamExternalID {
			entry = &table[i]
			break
		}
	}
	if entry == nil {
		return Unavailable(model.Motivation, apperr.Newf(apperr.Permanent, "collector.Motivation", "team %s not found in standings", target.TeamExternalID))
	}

	leaderPoints := table[0].Points
	lastPoints := table[total-1].Points
	pointsBehindLeader := leaderPoints - entry.Points
	pointsAboveRelegation := entry.Points - lastPoints

	score := motivationFromPosition(entry.Position, total)
	if pointsBehindLeader <= closeRaceMargin {
		score += 0.10
	}
	if pointsAboveRelegation <= closeRaceMargin {
		score += 0.15
	}
	return Value(model.Motivation, clamp(score, 0.0, 1.0))
}

func motivationFromPosition(position, total int) float64 {
	ratio := float64(position) / float64(total)

	switch {
	case ratio <= titleRaceRatio:
		proximity := (titleRaceRatio - ratio) / titleRaceRatio
		return 0.85 + proximity*0.15
	case ratio <= europeanSpotsRatio:
		factor := (europeanSpotsRatio - ratio) / (europeanSpotsRatio - titleRaceRatio)
		return 0.70 + factor*0.10
	case ratio >= relegationRatio:
		proximity := (ratio - relegationRatio) / (1 - relegationRatio)
		return 0.90 + proximity*0.10
	default:
		midTableFactor := absFloat(ratio-0.5) / 0.5
		return 0.25 + midTableFactor*0.35
	}
}

func absFloat(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
