package orchestrator

import (
	"context"
	"time"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/config"
)

// WithRetry runs fn with exponential backoff, retrying only on errors
// apperr classifies as Retryable (Transient or Storage). A Permanent,
// Invalid, Configuration, or Internal error returns immediately — retrying
// those would just waste the remaining budget (spec.md §4.6/§7).
func WithRetry(ctx context.Context, cfg config.RetryConfig, fn func(ctx context.Context) error) error {
	delay := cfg.Initial
	var lastErr error

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !apperr.Retryable(err) {
			return err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * cfg.Factor)
		if delay > cfg.Cap {
			delay = cfg.Cap
		}
	}

	return apperr.Newf(apperr.Transient, "orchestrator.WithRetry", "failed after %d attempts: %v", cfg.MaxAttempts, lastErr)
}
