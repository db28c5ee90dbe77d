package aggregator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
)

func ptr(v float64) *float64 { return &v }

func weights() map[model.Parameter]float64 {
	return map[model.Parameter]float64{
		model.Elo:                   0.5,
		model.SquadValue:            0.3,
		model.Form:                  0.2,
		model.SquadDepth:            0,
		model.KeyPlayerAvailability: 0,
		model.Motivation:            0,
		model.TacticalMatchup:       0,
		model.OffensiveRating:       0,
		model.DefensiveRating:       0,
		model.H2HPerformance:        0,
	}
}

func TestAggregate_FullCoverage(t *testing.T) {
	normalized := map[model.Parameter]*float64{
		model.Elo:        ptr(1.0),
		model.SquadValue: ptr(0.5),
		model.Form:       ptr(0.0),
	}
	out := Aggregate(normalized, weights(), config.SkipAndRenormalize)
	require.NotNil(t, out.OverallStrength)
	assert.InDelta(t, 0.65, *out.OverallStrength, 1e-9)
	assert.Equal(t, 1.0, out.Confidence)
}

func TestAggregate_SkipAndRenormalize_PartialCoverage(t *testing.T) {
	normalized := map[model.Parameter]*float64{
		model.Elo:        ptr(1.0),
		model.SquadValue: nil,
		model.Form:       ptr(0.0),
	}
	out := Aggregate(normalized, weights(), config.SkipAndRenormalize)
	require.NotNil(t, out.OverallStrength)
	// present weight = 0.5 (elo) + 0.2 (form) = 0.7
	// weighted sum = 0.5*1.0 + 0.2*0.0 = 0.5
	assert.InDelta(t, 0.5/0.7, *out.OverallStrength, 1e-9)
	assert.InDelta(t, 2.0/3.0, out.Confidence, 1e-9)
}

func TestAggregate_StrictNull_PartialCoverage(t *testing.T) {
	normalized := map[model.Parameter]*float64{
		model.Elo:        ptr(1.0),
		model.SquadValue: nil,
		model.Form:       ptr(0.0),
	}
	out := Aggregate(normalized, weights(), config.StrictNull)
	assert.Nil(t, out.OverallStrength)
	assert.Equal(t, 1.0, out.Confidence)
}

func TestAggregate_NoPositiveWeightParametersPresent(t *testing.T) {
	normalized := map[model.Parameter]*float64{}
	out := Aggregate(normalized, weights(), config.SkipAndRenormalize)
	assert.Nil(t, out.OverallStrength)
	assert.Equal(t, 0.0, out.Confidence)
}

func TestAggregate_ZeroWeightParametersIgnored(t *testing.T) {
	normalized := map[model.Parameter]*float64{
		model.Elo:        ptr(1.0),
		model.SquadValue: ptr(1.0),
		model.Form:       ptr(1.0),
		model.SquadDepth: ptr(0.0), // zero weight, must not affect result
	}
	out := Aggregate(normalized, weights(), config.SkipAndRenormalize)
	require.NotNil(t, out.OverallStrength)
	assert.InDelta(t, 1.0, *out.OverallStrength, 1e-9)
	assert.Equal(t, 1.0, out.Confidence)
}
