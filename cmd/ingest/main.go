// Command ingest drives refresh cycles against the Data Store: collecting
// every parameter for a competition's teams, normalizing, aggregating, and
// reporting coverage.
//
// Usage:
//
//	strength-ingest refresh --competition <uuid> --season 2025
//	strength-ingest refresh-european --season 2025
//	strength-ingest coverage --competition <uuid> --season 2025
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/strength-engine/internal/collector"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/orchestrator"
	"github.com/albapepper/strength-engine/internal/provider"
	"github.com/albapepper/strength-engine/internal/store"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// BuildProviderBundle is the deployment wiring seam: concrete feed clients
// are out of scope in this module, so whoever deploys this binary supplies
// them by overriding this var before main runs, or by forking this command
// with a real Bundle constructor wired in.
var BuildProviderBundle = func(cfg *config.Config) (provider.Bundle, error) {
	return provider.Bundle{}, fmt.Errorf("no provider bundle configured: wire internal/provider implementations and set BuildProviderBundle")
}

func main() {
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "strength-ingest",
		Short: "Strength engine ingestion and refresh CLI",
	}

	root.AddCommand(refreshCmd())
	root.AddCommand(refreshEuropeanCmd())
	root.AddCommand(coverageCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func refreshCmd() *cobra.Command {
	var competitionID, season string
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Collect, normalize, and aggregate every parameter for a competition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, repo store.Repository) error {
				compID, err := uuid.Parse(competitionID)
				if err != nil {
					return fmt.Errorf("parse --competition: %w", err)
				}
				bundle, err := BuildProviderBundle(cfg)
				if err != nil {
					return err
				}
				registry, err := collector.BuildRegistry(bundle)
				if err != nil {
					return fmt.Errorf("build collector registry: %w", err)
				}

				teams, err := repo.ListTeams(ctx, &compID)
				if err != nil {
					return fmt.Errorf("list teams in competition: %w", err)
				}
				comp, err := repo.GetCompetition(ctx, compID)
				if err != nil {
					return fmt.Errorf("load competition: %w", err)
				}
				targets := make([]collector.Target, 0, len(teams))
				for _, t := range teams {
					targets = append(targets, collector.Target{
						TeamID:           t.ID,
						TeamExternalID:   t.ExternalIDs["default"],
						CompetitionID:    compID,
						CompetitionExtID: comp.ExternalLeagueID,
						Season:           season,
					})
				}

				orch := orchestrator.New(repo, registry, cfg, logger)
				start := time.Now()
				summary := orch.RefreshCompetition(ctx, compID, season, targets)
				logger.Info("refresh finished",
					"competition", competitionID, "season", season,
					"duration", time.Since(start).Round(time.Second),
					"summary", summary.Summary())
				for _, e := range summary.Errors {
					logger.Error("refresh error", "error", e)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition UUID")
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2025-26")
	cmd.MarkFlagRequired("competition")
	cmd.MarkFlagRequired("season")
	return cmd
}

func refreshEuropeanCmd() *cobra.Command {
	var season string
	cmd := &cobra.Command{
		Use:   "refresh-european",
		Short: "Recompute cross-competition strength for every team in a season",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, repo store.Repository) error {
				orch := orchestrator.New(repo, nil, cfg, logger)
				start := time.Now()
				if err := orch.RefreshEuropeanStrength(ctx, season); err != nil {
					return err
				}
				logger.Info("european strength refresh finished",
					"season", season, "duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2025-26")
	cmd.MarkFlagRequired("season")
	return cmd
}

func coverageCmd() *cobra.Command {
	var competitionID, season string
	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Print a freshness and completeness report for a competition",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(func(ctx context.Context, cfg *config.Config, repo store.Repository) error {
				compID, err := uuid.Parse(competitionID)
				if err != nil {
					return fmt.Errorf("parse --competition: %w", err)
				}
				rows, err := repo.Coverage(ctx, compID, season)
				if err != nil {
					return err
				}
				report := orchestrator.BuildCoverageReport(competitionID, season, rows, time.Now())
				for _, line := range report.Rows {
					logger.Info("coverage",
						"parameter", line.Parameter,
						"coverage_percent", line.CoveragePercent,
						"oldest", line.OldestUpdated,
						"newest", line.NewestUpdated)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition UUID")
	cmd.Flags().StringVar(&season, "season", "", "Season label, e.g. 2025-26")
	cmd.MarkFlagRequired("competition")
	cmd.MarkFlagRequired("season")
	return cmd
}

// runIngest handles config loading, store connection, and signal-based
// cancellation shared by every subcommand.
func runIngest(fn func(ctx context.Context, cfg *config.Config, repo store.Repository) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer repo.Close()

	return fn(ctx, cfg, repo)
}
