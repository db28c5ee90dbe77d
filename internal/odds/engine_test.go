package odds

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
)

func strengthPtr(v float64) *float64 { return &v }

func TestStrengthFor_SameCompetitionPrefersLocalLeagueStrength(t *testing.T) {
	compID := uuid.New()
	home := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: compID, Season: "2025-26",
		LocalLeagueStrength: strengthPtr(0.8), OverallStrength: strengthPtr(0.1),
	}
	away := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: compID, Season: "2025-26",
		LocalLeagueStrength: strengthPtr(0.4), OverallStrength: strengthPtr(0.9),
	}

	hs, as, variant, err := StrengthFor(home, away)
	require.NoError(t, err)
	assert.Equal(t, 0.8, hs)
	assert.Equal(t, 0.4, as)
	assert.Equal(t, SameCompetition, variant)
}

func TestStrengthFor_SameCompetitionFallsBackToOverallStrength(t *testing.T) {
	compID := uuid.New()
	home := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: compID, Season: "2025-26",
		OverallStrength: strengthPtr(0.6),
	}
	away := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: compID, Season: "2025-26",
		OverallStrength: strengthPtr(0.3),
	}

	hs, as, variant, err := StrengthFor(home, away)
	require.NoError(t, err)
	assert.Equal(t, 0.6, hs)
	assert.Equal(t, 0.3, as)
	assert.Equal(t, SameCompetition, variant)
}

func TestStrengthFor_CrossCompetitionRequiresEuropeanStrength(t *testing.T) {
	home := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: uuid.New(), Season: "2025-26",
		LocalLeagueStrength: strengthPtr(0.8), EuropeanStrength: strengthPtr(0.7),
	}
	away := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: uuid.New(), Season: "2025-26",
		LocalLeagueStrength: strengthPtr(0.4),
	}

	_, _, _, err := StrengthFor(home, away)
	assert.Error(t, err)
}

func TestStrengthFor_CrossCompetitionUsesEuropeanStrength(t *testing.T) {
	home := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: uuid.New(), Season: "2025-26",
		EuropeanStrength: strengthPtr(0.7),
	}
	away := &model.TeamInCompetition{
		TeamID: uuid.New(), CompetitionID: uuid.New(), Season: "2025-26",
		EuropeanStrength: strengthPtr(0.5),
	}

	hs, as, variant, err := StrengthFor(home, away)
	require.NoError(t, err)
	assert.Equal(t, 0.7, hs)
	assert.Equal(t, 0.5, as)
	assert.Equal(t, CrossCompetition, variant)
}

func TestEngine_Price(t *testing.T) {
	engine := NewEngine(config.DefaultOddsConfig())
	result := engine.Price(0.7, 0.4, true, SameCompetition)

	assert.True(t, result.Home.Priced)
	assert.True(t, result.Draw.Priced)
	assert.True(t, result.Away.Priced)
	assert.NotEmpty(t, result.Predicted.Score)
	assert.Greater(t, result.Home.Probability, result.Away.Probability)
	assert.Greater(t, result.ExpectedGoals, 0.0)
	assert.Equal(t, SameCompetition, result.StrengthVariant)
}
