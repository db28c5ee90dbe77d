package collector

import (
	"context"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// SquadValueCollector reports total squad market value, an absolute
// currency figure later rescaled within its competition by the
// Normalizer. Grounded on the total_squad_value sum in the teacher
// corpus's squad-value collection script.
type SquadValueCollector struct {
	Provider provider.ValuationProvider
}

func NewSquadValueCollector(p provider.ValuationProvider) *SquadValueCollector {
	return &SquadValueCollector{Provider: p}
}

func (c *SquadValueCollector) Parameter() model.Parameter { return model.SquadValue }

func (c *SquadValueCollector) Collect(ctx context.Context, target Target) Result {
	v, err := c.Provider.Valuation(ctx, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.SquadValue, apperr.New(apperr.Transient, "collector.SquadValue", err))
	}
	if v.TotalValue <= 0 {
		return Unavailable(model.SquadValue, apperr.Newf(apperr.Permanent, "collector.SquadValue", "no valuation reported for %s", target.TeamExternalID))
	}
	return Value(model.SquadValue, v.TotalValue)
}
