package odds

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/albapepper/strength-engine/internal/config"
)

func TestCompute_ProbabilitiesSumToOne(t *testing.T) {
	cfg := config.DefaultOddsConfig()

	cases := []struct {
		name       string
		home, away float64
		venueHome  bool
	}{
		{"even strengths at home", 0.6, 0.6, true},
		{"home much stronger", 0.9, 0.2, true},
		{"away much stronger", 0.2, 0.9, true},
		{"neutral venue", 0.5, 0.5, false},
		{"both zero strength", 0, 0, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Compute(cfg, c.home, c.away, c.venueHome)
			assert.InDelta(t, 1.0, p.Home+p.Draw+p.Away, 1e-9)
			assert.InDelta(t, 1.0, p.Over25+p.Under25, 1e-9)
			assert.InDelta(t, 1.0, p.BTTSYes+p.BTTSNo, 1e-9)
			assert.GreaterOrEqual(t, p.Draw, cfg.DrawMin)
			assert.LessOrEqual(t, p.Draw, cfg.DrawMax)
		})
	}
}

func TestCompute_HomeBoostIncreasesHomeProbability(t *testing.T) {
	cfg := config.DefaultOddsConfig()
	withBoost := Compute(cfg, 0.5, 0.5, true)
	withoutBoost := Compute(cfg, 0.5, 0.5, false)
	assert.Greater(t, withBoost.Home, withoutBoost.Home)
}

func TestCompute_CloserMatchHasHigherDrawProbability(t *testing.T) {
	cfg := config.DefaultOddsConfig()
	close := Compute(cfg, 0.55, 0.50, true)
	lopsided := Compute(cfg, 0.95, 0.10, true)
	assert.Greater(t, close.Draw, lopsided.Draw)
}

func TestToDecimalOdds(t *testing.T) {
	cfg := config.DefaultOddsConfig()

	t.Run("typical probability prices above fair odds", func(t *testing.T) {
		odds, ok := ToDecimalOdds(cfg, 0.5)
		assert.True(t, ok)
		// fair odds would be 2.00; margin pushes it above that.
		assert.True(t, odds.GreaterThan(decimal.NewFromFloat(2.0)))
	})

	t.Run("boundary probabilities are unpriceable", func(t *testing.T) {
		_, ok := ToDecimalOdds(cfg, 0)
		assert.False(t, ok)
		_, ok = ToDecimalOdds(cfg, 1)
		assert.False(t, ok)
	})
}

func TestPredictScoreline(t *testing.T) {
	cases := []struct {
		name string
		p    Probabilities
		want string
	}{
		{"strong home favorite", Probabilities{Home: 0.70, Draw: 0.15, Away: 0.15, ExpectedGoals: 2.0}, "2-0"},
		{"modest home favorite", Probabilities{Home: 0.45, Draw: 0.30, Away: 0.25, ExpectedGoals: 1.0}, "1-0"},
		{"strong away favorite", Probabilities{Home: 0.15, Draw: 0.15, Away: 0.70, ExpectedGoals: 2.0}, "0-2"},
		{"modest away favorite", Probabilities{Home: 0.25, Draw: 0.30, Away: 0.45, ExpectedGoals: 1.0}, "0-1"},
		{"close match", Probabilities{Home: 0.30, Draw: 0.40, Away: 0.30, ExpectedGoals: 2.0}, "1-1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PredictScoreline(c.p)
			assert.Equal(t, c.want, got.Score)
		})
	}
}

func TestMatchOutcome_DrawProbabilityVariesWithStrengthDifference(t *testing.T) {
	cfg := config.DefaultOddsConfig()

	// Scenario: s_A=0.7, s_B=0.5, default alpha/beta/k/margin.
	// |diff|=0.2 -> |diff|_norm=0.4 -> p_D = 0.33 - 0.13*0.4 = 0.278.
	_, draw, _ := matchOutcome(cfg, 0.7, 0.5, true)
	assert.InDelta(t, 0.278, draw, 1e-9)
}

func TestMatchOutcome_HomeBoostIsMultiplicativeOnBothSides(t *testing.T) {
	cfg := config.DefaultOddsConfig()
	cfg.DrawBeta = 0 // isolate the win-share split from the draw slice

	home, _, away := matchOutcome(cfg, 0.5, 0.5, true)

	// Equal strengths split 50/50 pre-boost; boosting home by (1+alpha)
	// and away by (1-alpha) then renormalizing must still favor home by
	// exactly the boost ratio (1+alpha)/(1-alpha).
	want := (1 + cfg.HomeBoostAlpha) / (1 - cfg.HomeBoostAlpha)
	assert.InDelta(t, want, home/away, 1e-9)
}
