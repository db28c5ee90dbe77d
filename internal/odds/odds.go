// Package odds implements the Odds Engine (spec.md §4.5): converts a pair
// of team strengths into match-outcome, goals-market, BTTS, and
// correct-score probabilities, then into decimal betting odds with a
// bookmaker margin applied. The BTTS formula mirrors the probability math
// the teacher corpus's betting odds engine uses; the 1X2 split and draw
// curve use a multiplicative home boost and a clamped draw term instead.
// Every formula is parametrized by config.OddsConfig instead of hardcoded
// constants so operators can retune without a deploy.
package odds

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/albapepper/strength-engine/internal/config"
)

// Probabilities is a full set of derived market probabilities for one
// fixture, each in [0,1] and each market's outcomes summing to 1, plus
// the expected goals figure the goals market and scoreline are derived
// from.
type Probabilities struct {
	Home, Draw, Away float64
	Over25, Under25  float64
	BTTSYes, BTTSNo  float64
	ExpectedGoals    float64
}

// Compute derives every market probability from a pair of strengths.
// venueHome indicates the home team is playing at home (the usual case);
// a neutral-venue fixture passes venueHome=false to skip the boost.
func Compute(cfg config.OddsConfig, homeStrength, awayStrength float64, venueHome bool) Probabilities {
	home, draw, away := matchOutcome(cfg, homeStrength, awayStrength, venueHome)
	over, under, e := goalsMarket(cfg, homeStrength, awayStrength)
	yes, no := btts(cfg, homeStrength, awayStrength)
	return Probabilities{
		Home: home, Draw: draw, Away: away,
		Over25: over, Under25: under,
		BTTSYes: yes, BTTSNo: no,
		ExpectedGoals: e,
	}
}

func matchOutcome(cfg config.OddsConfig, homeStrength, awayStrength float64, venueHome bool) (home, draw, away float64) {
	total := homeStrength + awayStrength
	homeBase, awayBase := 0.5, 0.5
	if total > 0 {
		homeBase, awayBase = homeStrength/total, awayStrength/total
	}

	if venueHome {
		homeBase *= 1 + cfg.HomeBoostAlpha
		awayBase *= 1 - cfg.HomeBoostAlpha
	}
	baseTotal := homeBase + awayBase
	if baseTotal <= 0 {
		homeBase, awayBase, baseTotal = 0.5, 0.5, 1.0
	}
	homeBase, awayBase = homeBase/baseTotal, awayBase/baseTotal

	diffNorm := math.Min(math.Abs(homeStrength-awayStrength)*cfg.DrawK, 1)
	draw = clamp(cfg.DrawMax-cfg.DrawBeta*diffNorm, cfg.DrawMin, cfg.DrawMax)

	remainder := 1 - draw
	home = homeBase * remainder
	away = awayBase * remainder
	return home, draw, away
}

// goalsMarket derives expected goals e as a monotonic increasing function
// of the combined attacking quality, then the over-2.5 probability as a
// monotonic increasing function of e (spec.md §4.5). f here is a simple
// linear map from the two strengths into a plausible goals range; a
// richer f fed by offensive/defensive parameters can replace it without
// changing this contract.
func goalsMarket(cfg config.OddsConfig, homeStrength, awayStrength float64) (over, under, expectedGoals float64) {
	expectedGoals = 1.0 + (homeStrength+awayStrength)*1.5
	over = clamp(0.35+expectedGoals*0.10, cfg.OverUnderMin, cfg.OverUnderMax)
	under = 1 - over
	return over, under, expectedGoals
}

func btts(cfg config.OddsConfig, homeStrength, awayStrength float64) (yes, no float64) {
	min := math.Min(homeStrength, awayStrength)
	avg := (homeStrength + awayStrength) / 2
	yes = clamp(0.50+min*0.25+avg*0.10, cfg.BTTSMin, cfg.BTTSMax)
	no = 1 - yes
	return yes, no
}

// ToDecimalOdds converts a probability into decimal betting odds with the
// configured bookmaker margin applied, (1 + margin) / probability, rounded
// to two decimal places. Returns false for a probability outside (0,1),
// which has no meaningful price.
func ToDecimalOdds(cfg config.OddsConfig, probability float64) (decimal.Decimal, bool) {
	if probability <= 0 || probability >= 1 {
		return decimal.Decimal{}, false
	}
	odds := (1 + cfg.Margin) / probability
	return decimal.NewFromFloat(odds).Round(2), true
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
