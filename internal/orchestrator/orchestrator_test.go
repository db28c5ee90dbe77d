package orchestrator

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/collector"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/store"
)

func noopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// constCollector always returns the same value for every target, standing
// in for a real provider-backed collector in orchestrator tests.
type constCollector struct {
	param model.Parameter
	value float64
}

func (c constCollector) Parameter() model.Parameter { return c.param }
func (c constCollector) Collect(_ context.Context, _ collector.Target) collector.Result {
	return collector.Value(c.param, c.value)
}

func constRegistry(t *testing.T, values map[model.Parameter]float64) *collector.Registry {
	t.Helper()
	cs := make([]collector.Collector, 0, len(model.Parameters))
	for _, p := range model.Parameters {
		cs = append(cs, constCollector{param: p, value: values[p]})
	}
	r, err := collector.NewRegistry(cs...)
	require.NoError(t, err)
	return r
}

func testConfig() *config.Config {
	return &config.Config{
		Weights:               model.DefaultWeights(),
		PartialCoveragePolicy: config.SkipAndRenormalize,
		CollectorConcurrency:  4,
		CollectorRateLimit:    1000, // fast enough to not throttle the test
		Retry:                 config.DefaultRetryConfig(),
		RefreshCycleDeadline:  5 * time.Second,
	}
}

func allSameValue(v float64) map[model.Parameter]float64 {
	values := make(map[model.Parameter]float64, len(model.Parameters))
	for _, p := range model.Parameters {
		values[p] = v
	}
	return values
}

func TestRefreshCompetition_WritesAggregateForEveryTarget(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	comp, err := s.EnsureCompetition(ctx, "Premier League", model.DomesticLeague, "England", "2025-26", 1)
	require.NoError(t, err)
	teamA, err := s.EnsureTeam(ctx, "Arsenal")
	require.NoError(t, err)
	teamB, err := s.EnsureTeam(ctx, "Chelsea")
	require.NoError(t, err)

	registry := constRegistry(t, allSameValue(100))
	o := New(s, registry, testConfig(), noopLogger())

	targets := []collector.Target{
		{TeamID: teamA.ID, TeamExternalID: "a", CompetitionID: comp.ID, Season: "2025-26"},
		{TeamID: teamB.ID, TeamExternalID: "b", CompetitionID: comp.ID, Season: "2025-26"},
	}
	summary := o.RefreshCompetition(ctx, comp.ID, "2025-26", targets)

	assert.Equal(t, 2, summary.TeamsAttempted)
	assert.Equal(t, 2, summary.TeamsSucceeded)
	assert.Equal(t, 0, summary.TeamsFailed)
	assert.Empty(t, summary.Errors)

	recA, err := s.Get(ctx, teamA.ID, comp.ID, "2025-26")
	require.NoError(t, err)
	require.NotNil(t, recA.OverallStrength)
	// Every team collected the same raw value for every parameter, so the
	// degenerate min==max range normalizes every parameter to 0.5.
	assert.InDelta(t, 0.5, *recA.OverallStrength, 1e-9)
	assert.Equal(t, 1.0, recA.Confidence)
}

func TestRefreshCompetition_NoTargetsIsANoop(t *testing.T) {
	s := store.NewMemoryStore()
	registry := constRegistry(t, allSameValue(50))
	o := New(s, registry, testConfig(), noopLogger())

	summary := o.RefreshCompetition(context.Background(), uuid.New(), "2025-26", nil)
	assert.Equal(t, 0, summary.TeamsAttempted)
	assert.Equal(t, 0, summary.TeamsSucceeded)
}

func TestRefreshEuropeanStrength_NormalizesAcrossCompetitions(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	compA, err := s.EnsureCompetition(ctx, "La Liga", model.DomesticLeague, "Spain", "2025-26", 1)
	require.NoError(t, err)
	compB, err := s.EnsureCompetition(ctx, "Serie A", model.DomesticLeague, "Italy", "2025-26", 1)
	require.NoError(t, err)

	strong, err := s.EnsureTeam(ctx, "Real Madrid")
	require.NoError(t, err)
	weak, err := s.EnsureTeam(ctx, "Parma")
	require.NoError(t, err)

	for _, p := range model.Parameters {
		require.NoError(t, s.UpsertRaw(ctx, strong.ID, compA.ID, "2025-26", p, 2000))
		require.NoError(t, s.UpsertRaw(ctx, weak.ID, compB.ID, "2025-26", p, 1000))
	}

	o := New(s, nil, testConfig(), noopLogger())
	require.NoError(t, o.RefreshEuropeanStrength(ctx, "2025-26"))

	strongRec, err := s.Get(ctx, strong.ID, compA.ID, "2025-26")
	require.NoError(t, err)
	require.NotNil(t, strongRec.EuropeanStrength)
	assert.InDelta(t, 1.0, *strongRec.EuropeanStrength, 1e-9)

	weakRec, err := s.Get(ctx, weak.ID, compB.ID, "2025-26")
	require.NoError(t, err)
	require.NotNil(t, weakRec.EuropeanStrength)
	assert.InDelta(t, 0.0, *weakRec.EuropeanStrength, 1e-9)
}

func TestRefreshEuropeanStrength_NoCompetitionsIsANoop(t *testing.T) {
	s := store.NewMemoryStore()
	o := New(s, nil, testConfig(), noopLogger())
	assert.NoError(t, o.RefreshEuropeanStrength(context.Background(), "2099-00"))
}
