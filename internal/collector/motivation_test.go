package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/provider"
)

type fakeStandingsProvider struct {
	table []provider.StandingsEntry
}

func (f *fakeStandingsProvider) Standings(_ context.Context, competitionExternalID, season string) ([]provider.StandingsEntry, error) {
	return f.table, nil
}

func TestMotivationCollector_TitleRaceScoresHighest(t *testing.T) {
	table := make([]provider.StandingsEntry, 20)
	for i := range table {
		table[i] = provider.StandingsEntry{TeamExternalID: teamName(i), Position: i + 1, Points: 80 - i*2}
	}
	c := NewMotivationCollector(&fakeStandingsProvider{table: table})
	// position 1 of 20: ratio 0.05, well inside the title-race bucket.
	result := c.Collect(context.Background(), Target{TeamExternalID: teamName(0)})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Value)
	assert.Greater(t, *result.Value, 0.85)
}

func TestMotivationCollector_MidTableSafetyScoresLowest(t *testing.T) {
	table := make([]provider.StandingsEntry, 20)
	for i := range table {
		table[i] = provider.StandingsEntry{TeamExternalID: teamName(i), Position: i + 1, Points: 60 - i}
	}
	c := NewMotivationCollector(&fakeStandingsProvider{table: table})
	// position 10 of 20 sits squarely mid-table, far from both races.
	result := c.Collect(context.Background(), Target{TeamExternalID: teamName(9)})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Value)
	assert.Less(t, *result.Value, 0.45)
}

func TestMotivationCollector_RelegationBattleScoresHigh(t *testing.T) {
	table := []provider.StandingsEntry{
		{TeamExternalID: "leader", Position: 1, Points: 80},
		{TeamExternalID: "mid", Position: 10, Points: 40},
		{TeamExternalID: "bottom", Position: 20, Points: 10},
	}
	c := NewMotivationCollector(&fakeStandingsProvider{table: table})
	result := c.Collect(context.Background(), Target{TeamExternalID: "bottom"})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Value)
	assert.Greater(t, *result.Value, 0.85)
}

func TestMotivationCollector_TeamNotInStandings_IsUnavailable(t *testing.T) {
	table := []provider.StandingsEntry{{TeamExternalID: "known", Position: 1, Points: 50}}
	c := NewMotivationCollector(&fakeStandingsProvider{table: table})
	result := c.Collect(context.Background(), Target{TeamExternalID: "unknown"})

	assert.Error(t, result.Err)
	assert.Nil(t, result.Value)
}

func teamName(i int) string {
	return "team-" + string(rune('a'+i))
}
