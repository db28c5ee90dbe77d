package collector

import (
	"context"
	"sort"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// SquadDepthCollector reports a quality-weighted depth index: the average
// market value of a team's eleven most valuable players and of the next
// eleven, blended 60/40 and scaled by squad size. Grounded on the quality-weighted-depth approach in
// the teacher corpus's enhanced squad-value collector (first XI quality
// vs second XI quality, with a squad-size multiplier).
type SquadDepthCollector struct {
	Provider provider.SquadProvider
}

func NewSquadDepthCollector(p provider.SquadProvider) *SquadDepthCollector {
	return &SquadDepthCollector{Provider: p}
}

func (c *SquadDepthCollector) Parameter() model.Parameter { return model.SquadDepth }

func (c *SquadDepthCollector) Collect(ctx context.Context, target Target) Result {
	squad, err := c.Provider.Squad(ctx, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.SquadDepth, apperr.New(apperr.Transient, "collector.SquadDepth", err))
	}
	if len(squad) == 0 {
		return Unavailable(model.SquadDepth, apperr.Newf(apperr.Permanent, "collector.SquadDepth", "no squad reported for %s", target.TeamExternalID))
	}

	sort.Slice(squad, func(i, j int) bool { return squad[i].MarketValue > squad[j].MarketValue })

	firstXI := squad
	if len(squad) > 11 {
		firstXI = squad[:11]
	}
	var secondXI []provider.SquadMember
	if len(squad) > 11 {
		end := len(squad)
		if end > 22 {
			end = 22
		}
		secondXI = squad[11:end]
	}

	firstAvg := avgValue(firstXI)
	secondAvg := avgValue(secondXI)

	depthIndex := firstAvg*0.6 + secondAvg*0.4

	sizeFactor := float64(len(squad)-18) / 12
	if sizeFactor < 0 {
		sizeFactor = 0
	}
	if sizeFactor > 1 {
		sizeFactor = 1
	}
	depthIndex *= 0.8 + sizeFactor*0.4

	return Value(model.SquadDepth, depthIndex)
}

func avgValue(members []provider.SquadMember) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range members {
		sum += m.MarketValue
	}
	return sum / float64(len(members))
}
