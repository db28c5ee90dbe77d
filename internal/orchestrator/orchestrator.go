// Package orchestrator sequences one refresh cycle: collect every
// parameter for every team in a competition, normalize within that
// competition's scope, aggregate into overall strength, and persist the
// result (spec.md §4.6). It is the only package that calls collectors,
// normalizer, and aggregator together — the Query API never does.
package orchestrator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/albapepper/strength-engine/internal/aggregator"
	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/collector"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/normalizer"
	"github.com/albapepper/strength-engine/internal/store"
)

// Orchestrator drives refresh cycles against a Repository using a fixed
// collector registry and configuration.
type Orchestrator struct {
	Store    store.Repository
	Registry *collector.Registry
	Config   *config.Config
	Logger   *slog.Logger

	// limiters holds one outbound token bucket per parameter, standing in
	// for a per-provider budget since each Parameter maps to exactly one
	// provider's collector in the registry. Built lazily so RefreshEuropeanStrength,
	// which never touches the registry, doesn't need one.
	limiters   map[model.Parameter]*rate.Limiter
	limitersMu sync.Mutex
}

func New(repo store.Repository, registry *collector.Registry, cfg *config.Config, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{Store: repo, Registry: registry, Config: cfg, Logger: logger}
}

// limiterFor returns the outbound rate limiter for a parameter's provider,
// constructing it on first use from Config.CollectorRateLimit.
func (o *Orchestrator) limiterFor(p model.Parameter) *rate.Limiter {
	o.limitersMu.Lock()
	defer o.limitersMu.Unlock()
	if o.limiters == nil {
		o.limiters = make(map[model.Parameter]*rate.Limiter, len(model.Parameters))
	}
	l, ok := o.limiters[p]
	if !ok {
		burst := o.Config.CollectorConcurrency
		if burst < 1 {
			burst = 1
		}
		l = rate.NewLimiter(rate.Limit(o.Config.CollectorRateLimit), burst)
		o.limiters[p] = l
	}
	return l
}

// RefreshCompetition runs one full cycle for every team currently
// registered in (competitionID, season): collect, normalize, aggregate,
// persist. Collector calls for a single parameter fan out across a
// bounded worker pool sized by Config.CollectorConcurrency, grouped by
// parameter so one slow provider cannot starve the others — the same
// worker-pool-per-group shape the teacher corpus's fixture scheduler uses.
func (o *Orchestrator) RefreshCompetition(ctx context.Context, competitionID uuid.UUID, season string, targets []collector.Target) RefreshSummary {
	start := time.Now()
	summary := RefreshSummary{TeamsAttempted: len(targets)}

	if len(targets) == 0 {
		summary.Duration = time.Since(start)
		return summary
	}

	cycleCtx, cancel := context.WithTimeout(ctx, o.Config.RefreshCycleDeadline)
	defer cancel()

	for _, p := range model.Parameters {
		o.collectParameter(cycleCtx, p, targets, &summary)
	}

	teamsWithErrors := make(map[uuid.UUID]bool)
	for _, target := range targets {
		if err := o.aggregateTeam(cycleCtx, target, competitionID, season); err != nil {
			teamsWithErrors[target.TeamID] = true
			summary.Errors = append(summary.Errors, err.Error())
		}
	}
	summary.TeamsFailed = len(teamsWithErrors)
	summary.TeamsSucceeded = summary.TeamsAttempted - summary.TeamsFailed

	summary.Duration = time.Since(start)
	o.Logger.Info("refresh cycle complete", "competition", competitionID, "season", season, "summary", summary.Summary())
	return summary
}

// collectParameter fans one parameter's collector out across every
// target, bounded by CollectorConcurrency, retrying transient failures.
func (o *Orchestrator) collectParameter(ctx context.Context, p model.Parameter, targets []collector.Target, summary *RefreshSummary) {
	c := o.Registry.Get(p)
	limiter := o.limiterFor(p)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Config.CollectorConcurrency)

	var mu sync.Mutex
	for _, target := range targets {
		target := target
		g.Go(func() error {
			var result collector.Result
			err := WithRetry(gctx, o.Config.Retry, func(ctx context.Context) error {
				if werr := limiter.Wait(ctx); werr != nil {
					return werr
				}
				result = c.Collect(ctx, target)
				return result.Err
			})

			mu.Lock()
			defer mu.Unlock()
			if err != nil || result.Value == nil {
				summary.ValuesFailed++
				if err != nil {
					summary.Errors = append(summary.Errors, err.Error())
				}
				return nil // a missing value for one team never aborts the group
			}
			if werr := o.Store.UpsertRaw(gctx, target.TeamID, target.CompetitionID, target.Season, p, *result.Value); werr != nil {
				summary.ValuesFailed++
				summary.Errors = append(summary.Errors, werr.Error())
				return nil
			}
			summary.ValuesCollected++
			return nil
		})
	}
	_ = g.Wait() // collector errors are recorded per-team above, never propagated
}

// aggregateTeam recomputes one team's normalized values and overall
// strength from the raw values just collected, then persists it.
func (o *Orchestrator) aggregateTeam(ctx context.Context, target collector.Target, competitionID uuid.UUID, season string) error {
	normalized := make(map[model.Parameter]*float64, len(model.Parameters))
	for _, p := range model.Parameters {
		raw, err := o.Store.RawValues(ctx, competitionID, season, p)
		if err != nil {
			return apperr.New(apperr.Storage, "orchestrator.aggregateTeam", err)
		}
		scaled := normalizer.Normalize(raw, p.LowerIsBetter())
		normalized[p] = scaled[target.TeamID]
	}

	outcome := aggregator.Aggregate(normalized, o.Config.Weights, o.Config.PartialCoveragePolicy)

	// Preserve any EuropeanStrength computed by a prior RefreshEuropeanStrength
	// pass — this write only refreshes the within-competition values.
	var europeanStrength *float64
	if existing, err := o.Store.Get(ctx, target.TeamID, competitionID, season); err == nil {
		europeanStrength = existing.EuropeanStrength
	}

	return o.Store.WriteAggregate(ctx, store.AggregateWrite{
		TeamID:              target.TeamID,
		CompetitionID:       competitionID,
		Season:              season,
		Normalized:          normalized,
		OverallStrength:     outcome.OverallStrength,
		LocalLeagueStrength: outcome.OverallStrength,
		EuropeanStrength:    europeanStrength,
		Confidence:          outcome.Confidence,
	})
}
