package collector

import (
	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/provider"
)

// Registry maps every frozen Parameter to the Collector responsible for
// it. The orchestrator iterates model.Parameters, never the registry's
// own keys directly, so a missing entry surfaces as a startup error
// rather than a silently skipped parameter.
type Registry struct {
	byParameter map[model.Parameter]Collector
}

// NewRegistry builds a Registry from a complete set of collectors,
// failing fast if any frozen Parameter lacks one.
func NewRegistry(collectors ...Collector) (*Registry, error) {
	r := &Registry{byParameter: make(map[model.Parameter]Collector, len(collectors))}
	for _, c := range collectors {
		r.byParameter[c.Parameter()] = c
	}
	for _, p := range model.Parameters {
		if _, ok := r.byParameter[p]; !ok {
			return nil, apperr.Newf(apperr.Configuration, "collector.NewRegistry", "no collector registered for parameter %q", p)
		}
	}
	return r, nil
}

// Get returns the Collector for a parameter. Callers only ever pass
// members of model.Parameters, so a missing entry here is a programming
// error, not a runtime condition.
func (r *Registry) Get(p model.Parameter) Collector {
	return r.byParameter[p]
}

// All returns every registered collector in the frozen parameter order.
func (r *Registry) All() []Collector {
	out := make([]Collector, 0, len(model.Parameters))
	for _, p := range model.Parameters {
		out = append(out, r.byParameter[p])
	}
	return out
}

// BuildRegistry wires a Registry from a provider.Bundle, one Collector per
// frozen Parameter. A deployment assembles its Bundle from concrete feed
// clients and passes it here; this package never constructs those clients
// itself.
func BuildRegistry(b provider.Bundle) (*Registry, error) {
	return NewRegistry(
		NewEloCollector(b.Ratings),
		NewSquadValueCollector(b.Valuation),
		NewSquadDepthCollector(b.Squads),
		NewFormCollector(b.Matches, b.Ratings),
		NewKeyPlayerAvailabilityCollector(b.Squads),
		NewMotivationCollector(b.Standings),
		NewOffensiveRatingCollector(b.Matches),
		NewDefensiveRatingCollector(b.Matches),
		NewTacticalMatchupCollector(b.Matches),
		NewH2HPerformanceCollector(b.Matches, b.Opponents),
	)
}
