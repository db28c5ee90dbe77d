package orchestrator

import (
	"fmt"
	"time"

	"github.com/albapepper/strength-engine/internal/model"
	"github.com/albapepper/strength-engine/internal/store"
)

// RefreshSummary tallies the outcome of one refresh cycle across every
// team and parameter attempted.
type RefreshSummary struct {
	TeamsAttempted  int
	TeamsSucceeded  int
	TeamsFailed     int
	ValuesCollected int
	ValuesFailed    int
	Errors          []string
	Duration        time.Duration
}

// Add merges another RefreshSummary into this one.
func (s *RefreshSummary) Add(other RefreshSummary) {
	s.TeamsAttempted += other.TeamsAttempted
	s.TeamsSucceeded += other.TeamsSucceeded
	s.TeamsFailed += other.TeamsFailed
	s.ValuesCollected += other.ValuesCollected
	s.ValuesFailed += other.ValuesFailed
	s.Errors = append(s.Errors, other.Errors...)
}

// Summary renders a one-line, log-friendly tally.
func (s *RefreshSummary) Summary() string {
	return fmt.Sprintf(
		"teams=%d/%d values=%d failed=%d errors=%d duration=%s",
		s.TeamsSucceeded, s.TeamsAttempted,
		s.ValuesCollected, s.ValuesFailed, len(s.Errors), s.Duration,
	)
}

// CoverageReport is the Orchestrator's own view of data completeness,
// built directly from store.CoverageRow — the same shape the Query API's
// freshness endpoint reads (spec.md §6).
type CoverageReport struct {
	CompetitionID string
	Season        string
	Rows          []CoverageLine
	GeneratedAt   time.Time
}

// CoverageLine is one parameter's coverage percentage and freshness
// bounds within the report's scope.
type CoverageLine struct {
	Parameter        model.Parameter
	CoveragePercent  float64
	OldestUpdated    time.Time
	NewestUpdated    time.Time
}

// BuildCoverageReport converts raw store rows into percentages.
func BuildCoverageReport(competitionID, season string, rows []store.CoverageRow, generatedAt time.Time) CoverageReport {
	lines := make([]CoverageLine, 0, len(rows))
	for _, r := range rows {
		pct := 0.0
		if r.TotalTeams > 0 {
			pct = float64(r.NonNullCount) / float64(r.TotalTeams) * 100
		}
		lines = append(lines, CoverageLine{
			Parameter:       r.Parameter,
			CoveragePercent: pct,
			OldestUpdated:   r.OldestUpdated,
			NewestUpdated:   r.NewestUpdated,
		})
	}
	return CoverageReport{CompetitionID: competitionID, Season: season, Rows: lines, GeneratedAt: generatedAt}
}
