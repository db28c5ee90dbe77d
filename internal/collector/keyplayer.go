package collector

import (
	"context"
	"sort"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// maxKeyPlayers caps how many top players by importance count toward the
// availability factor, matching the teacher corpus's key-player shortlist.
const maxKeyPlayers = 8

// minAvailabilityFactor is the floor applied regardless of how many key
// players are missing, matching the teacher corpus's clamp.
const minAvailabilityFactor = 0.2

// KeyPlayerAvailabilityCollector reports the fraction of key-player
// importance still available to a team, ranging from minAvailabilityFactor
// (most key players missing) to 1.0 (full squad available). Grounded on
// the teacher corpus's key player availability collector.
type KeyPlayerAvailabilityCollector struct {
	Provider provider.SquadProvider
}

func NewKeyPlayerAvailabilityCollector(p provider.SquadProvider) *KeyPlayerAvailabilityCollector {
	return &KeyPlayerAvailabilityCollector{Provider: p}
}

func (c *KeyPlayerAvailabilityCollector) Parameter() model.Parameter {
	return model.KeyPlayerAvailability
}

func (c *KeyPlayerAvailabilityCollector) Collect(ctx context.Context, target Target) Result {
	squad, err := c.Provider.Squad(ctx, target.TeamExternalID)
	if err != nil {
		return Unavailable(model.KeyPlayerAvailability, apperr.New(apperr.Transient, "collector.KeyPlayerAvailability", err))
	}

	var keyPlayers []provider.SquadMember
	for _, m := range squad {
		if m.IsKeyPlayer {
			keyPlayers = append(keyPlayers, m)
		}
	}
	sort.SliceStable(keyPlayers, func(i, j int) bool {
		return keyPlayers[i].ImportanceScore > keyPlayers[j].ImportanceScore
	})
	if len(keyPlayers) > maxKeyPlayers {
		keyPlayers = keyPlayers[:maxKeyPlayers]
	}
	if len(keyPlayers) == 0 {
		return Unavailable(model.KeyPlayerAvailability, apperr.Newf(apperr.Permanent, "collector.KeyPlayerAvailability", "no key players identified for %s", target.TeamExternalID))
	}

	var totalImportance, lostImportance float64
	for _, p := range keyPlayers {
		totalImportance += p.ImportanceScore
		if !p.Available {
			lostImportance += p.ImportanceScore
		}
	}
	if totalImportance == 0 {
		return Unavailable(model.KeyPlayerAvailability, apperr.Newf(apperr.Internal, "collector.KeyPlayerAvailability", "zero importance total for %s", target.TeamExternalID))
	}

	factor := 1.0 - lostImportance/totalImportance
	factor = clamp(factor, minAvailabilityFactor, 1.0)
	return Value(model.KeyPlayerAvailability, factor)
}
