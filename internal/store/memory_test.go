package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/model"
)

func TestMemoryStore_EnsureTeamIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a, err := s.EnsureTeam(ctx, "Arsenal")
	require.NoError(t, err)
	b, err := s.EnsureTeam(ctx, "Arsenal")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
}

func TestMemoryStore_GetTeamByName_NotFound(t *testing.T) {
	s := NewMemoryStore()
	_, err := s.GetTeamByName(context.Background(), "Nobody FC")
	assert.Error(t, err)
}

func TestMemoryStore_UpsertRawAndRawValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	team, err := s.EnsureTeam(ctx, "Napoli")
	require.NoError(t, err)
	comp, err := s.EnsureCompetition(ctx, "Serie A", model.DomesticLeague, "Italy", "2025-26", 1)
	require.NoError(t, err)

	require.NoError(t, s.UpsertRaw(ctx, team.ID, comp.ID, "2025-26", model.Elo, 1800))

	values, err := s.RawValues(ctx, comp.ID, "2025-26", model.Elo)
	require.NoError(t, err)
	require.Contains(t, values, team.ID)
	require.NotNil(t, values[team.ID])
	assert.Equal(t, 1800.0, *values[team.ID])
}

func TestMemoryStore_RawValues_MutationDoesNotLeakIntoStore(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	team, err := s.EnsureTeam(ctx, "Lazio")
	require.NoError(t, err)
	comp, err := s.EnsureCompetition(ctx, "Serie A", model.DomesticLeague, "Italy", "2025-26", 1)
	require.NoError(t, err)
	require.NoError(t, s.UpsertRaw(ctx, team.ID, comp.ID, "2025-26", model.Elo, 1700))

	values, err := s.RawValues(ctx, comp.ID, "2025-26", model.Elo)
	require.NoError(t, err)
	*values[team.ID] = 9999

	again, err := s.RawValues(ctx, comp.ID, "2025-26", model.Elo)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, *again[team.ID])
}

func TestMemoryStore_WriteAggregate_RequiresExistingRecord(t *testing.T) {
	s := NewMemoryStore()
	err := s.WriteAggregate(context.Background(), AggregateWrite{
		TeamID: uuid.New(), CompetitionID: uuid.New(), Season: "2025-26",
	})
	assert.Error(t, err)
}

func TestMemoryStore_WriteAggregateThenGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	team, err := s.EnsureTeam(ctx, "Fiorentina")
	require.NoError(t, err)
	comp, err := s.EnsureCompetition(ctx, "Serie A", model.DomesticLeague, "Italy", "2025-26", 1)
	require.NoError(t, err)
	require.NoError(t, s.UpsertRaw(ctx, team.ID, comp.ID, "2025-26", model.Elo, 1600))

	strength := 0.73
	require.NoError(t, s.WriteAggregate(ctx, AggregateWrite{
		TeamID: team.ID, CompetitionID: comp.ID, Season: "2025-26",
		Normalized:          map[model.Parameter]*float64{model.Elo: &strength},
		OverallStrength:     &strength,
		LocalLeagueStrength: &strength,
		Confidence:          1.0,
	}))

	rec, err := s.Get(ctx, team.ID, comp.ID, "2025-26")
	require.NoError(t, err)
	require.NotNil(t, rec.OverallStrength)
	assert.Equal(t, strength, *rec.OverallStrength)

	// Mutating the returned record must not leak back into the store.
	*rec.OverallStrength = 0.01
	rec2, err := s.Get(ctx, team.ID, comp.ID, "2025-26")
	require.NoError(t, err)
	assert.Equal(t, strength, *rec2.OverallStrength)
}

func TestMemoryStore_Coverage(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	comp, err := s.EnsureCompetition(ctx, "Ligue 1", model.DomesticLeague, "France", "2025-26", 1)
	require.NoError(t, err)

	teamA, err := s.EnsureTeam(ctx, "PSG")
	require.NoError(t, err)
	teamB, err := s.EnsureTeam(ctx, "Marseille")
	require.NoError(t, err)

	require.NoError(t, s.UpsertRaw(ctx, teamA.ID, comp.ID, "2025-26", model.Elo, 2000))
	require.NoError(t, s.UpsertRaw(ctx, teamB.ID, comp.ID, "2025-26", model.Elo, 1900))
	require.NoError(t, s.UpsertRaw(ctx, teamA.ID, comp.ID, "2025-26", model.Form, 0.8))

	rows, err := s.Coverage(ctx, comp.ID, "2025-26")
	require.NoError(t, err)

	byParam := make(map[model.Parameter]CoverageRow)
	for _, r := range rows {
		byParam[r.Parameter] = r
	}

	assert.Equal(t, 2, byParam[model.Elo].NonNullCount)
	assert.Equal(t, 2, byParam[model.Elo].TotalTeams)
	assert.Equal(t, 1, byParam[model.Form].NonNullCount)
}
