package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// EloCollector reports a team's external Elo-style rating as-is; the
// Normalizer rescales it within its competition (spec.md §4.2/§4.3).
type EloCollector struct {
	Provider provider.RatingProvider
}

func NewEloCollector(p provider.RatingProvider) *EloCollector {
	return &EloCollector{Provider: p}
}

func (c *EloCollector) Parameter() model.Parameter { return model.Elo }

func (c *EloCollector) Collect(ctx context.Context, target Target) Result {
	snap, err := c.Provider.Rating(ctx, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.Elo, apperr.New(apperr.Transient, "collector.Elo", err))
	}
	return Value(model.Elo, snap.Rating)
}
