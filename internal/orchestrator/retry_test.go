package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/config"
)

func fastRetryConfig() config.RetryConfig {
	return config.RetryConfig{
		Initial:     time.Millisecond,
		Factor:      2,
		Cap:         10 * time.Millisecond,
		MaxAttempts: 3,
	}
}

func TestWithRetry_SucceedsWithoutRetryingOnNilError(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestWithRetry_RetriesTransientUntilSuccess(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) error {
		calls++
		if calls < 2 {
			return apperr.New(apperr.Transient, "test", errors.New("temporary"))
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	calls := 0
	err := WithRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) error {
		calls++
		return apperr.New(apperr.Transient, "test", errors.New("still failing"))
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, apperr.Transient, apperr.KindOf(err))
}

func TestWithRetry_PermanentErrorReturnsImmediately(t *testing.T) {
	calls := 0
	sentinel := apperr.New(apperr.Permanent, "test", errors.New("unknown team"))
	err := WithRetry(context.Background(), fastRetryConfig(), func(ctx context.Context) error {
		calls++
		return sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Same(t, sentinel, err)
}

func TestWithRetry_ContextCancelledDuringBackoffStopsRetrying(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	cfg := config.RetryConfig{Initial: 50 * time.Millisecond, Factor: 2, Cap: time.Second, MaxAttempts: 5}

	go func() {
		time.Sleep(5 * time.Millisecond)
		cancel()
	}()

	err := WithRetry(ctx, cfg, func(ctx context.Context) error {
		calls++
		return apperr.New(apperr.Transient, "test", errors.New("temporary"))
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}
