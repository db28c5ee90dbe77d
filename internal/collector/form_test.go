package collector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/provider"
)

type fakeMatchProvider struct {
	recent map[string][]provider.Fixture
	h2h    []provider.Fixture
}

func (f *fakeMatchProvider) RecentMatches(_ context.Context, teamExternalID string, limit int) ([]provider.Fixture, error) {
	matches := f.recent[teamExternalID]
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

func (f *fakeMatchProvider) HeadToHead(_ context.Context, homeExternalID, awayExternalID string, limit int) ([]provider.Fixture, error) {
	return f.h2h, nil
}

type fakeRatingProvider struct {
	ratings map[string]float64
}

func (f *fakeRatingProvider) Rating(_ context.Context, teamExternalID string) (provider.RatingSnapshot, error) {
	return provider.RatingSnapshot{TeamExternalID: teamExternalID, Rating: f.ratings[teamExternalID]}, nil
}

func score(h, a int) (*int, *int) { return &h, &a }

func TestFormCollector_AllWins_ScoresMaxForm(t *testing.T) {
	home, away := score(2, 0)
	matches := &fakeMatchProvider{
		recent: map[string][]provider.Fixture{
			"team-a": {
				{HomeExternalID: "team-a", AwayExternalID: "opp-1", Finished: true, HomeScore: home, AwayScore: away},
				{HomeExternalID: "team-a", AwayExternalID: "opp-2", Finished: true, HomeScore: home, AwayScore: away},
			},
		},
	}
	ratings := &fakeRatingProvider{ratings: map[string]float64{"opp-1": 1000, "opp-2": 1000}}

	c := NewFormCollector(matches, ratings)
	result := c.Collect(context.Background(), Target{TeamExternalID: "team-a"})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Value)
	// Neutral-rated (1000) opponents scale to an opponentWeight of 0.5,
	// so the weighted sum is 3*(1.0*0.5) + 3*(0.9*0.5) = 2.85.
	assert.InDelta(t, 2.85, *result.Value, 1e-9)
}

func TestFormCollector_NoFinishedMatches_IsUnavailable(t *testing.T) {
	matches := &fakeMatchProvider{
		recent: map[string][]provider.Fixture{
			"team-a": {{HomeExternalID: "team-a", AwayExternalID: "opp-1", Finished: false}},
		},
	}
	c := NewFormCollector(matches, nil)
	result := c.Collect(context.Background(), Target{TeamExternalID: "team-a"})

	assert.Error(t, result.Err)
	assert.Nil(t, result.Value)
}

func TestFormCollector_WinAgainstStrongOpponentWeightsMoreThanLossAgainstWeakOpponent(t *testing.T) {
	win, loss := score(1, 0)
	matches := &fakeMatchProvider{
		recent: map[string][]provider.Fixture{
			"team-a": {
				// most recent: win against a strong opponent
				{HomeExternalID: "team-a", AwayExternalID: "strong-opp", Finished: true, HomeScore: win, AwayScore: loss},
				// older: loss against a weak opponent
				{HomeExternalID: "weak-opp", AwayExternalID: "team-a", Finished: true, HomeScore: win, AwayScore: loss},
			},
		},
	}
	ratings := &fakeRatingProvider{ratings: map[string]float64{"strong-opp": 2000, "weak-opp": 500}}

	result := NewFormCollector(matches, ratings).Collect(context.Background(), Target{TeamExternalID: "team-a"})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Value)
	// win: 3pts * (1.0 recency * 1.5 strong-opponent scale) = 4.5
	// loss: 0pts * (0.9 recency * 0.5 weak-opponent scale) = 0
	// weighted sum = 4.5, comfortably above a weak-form result.
	assert.Greater(t, *result.Value, 3.0)
}
