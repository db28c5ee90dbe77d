package odds

import (
	"fmt"
	"math"
)

// Scoreline is a deterministic, most-likely-score prediction. It is not a
// full scoreline distribution — just the single best guess the Query API
// surfaces alongside the market probabilities.
type Scoreline struct {
	Score       string
	Probability float64
}

// PredictScoreline maps match-outcome probabilities and expected goals to
// a single most likely final score: a lookup keyed on the dominant
// outcome bucket (strongly/modestly favored, or a close match) and on e
// rounded to the nearest half goal, per spec.md §4.5. A strongly favored
// side is given a two-goal margin, a modestly favored side a one-goal
// margin, and a close match splits the expected total evenly.
func PredictScoreline(p Probabilities) Scoreline {
	total := expectedGoalsBucket(p.ExpectedGoals)

	switch {
	case p.Home > p.Away && p.Home > p.Draw:
		margin := 1
		prob := p.Home * 0.20
		if p.Home > 0.60 {
			margin, prob = 2, p.Home*0.15
		}
		away := maxInt((total-margin)/2, 0)
		home := away + margin
		return Scoreline{Score: fmt.Sprintf("%d-%d", home, away), Probability: prob}
	case p.Away > p.Home && p.Away > p.Draw:
		margin := 1
		prob := p.Away * 0.20
		if p.Away > 0.60 {
			margin, prob = 2, p.Away*0.15
		}
		home := maxInt((total-margin)/2, 0)
		away := home + margin
		return Scoreline{Score: fmt.Sprintf("%d-%d", home, away), Probability: prob}
	default:
		home := total / 2
		away := total - home
		return Scoreline{Score: fmt.Sprintf("%d-%d", home, away), Probability: p.Draw * 0.25}
	}
}

// expectedGoalsBucket rounds e to the nearest half goal, then to the
// nearest whole goal, clamped to a plausible match total.
func expectedGoalsBucket(e float64) int {
	half := math.Round(e*2) / 2
	total := int(math.Round(half))
	return maxInt(0, minInt(total, 6))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
