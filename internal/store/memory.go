package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
)

// MemoryStore is a concurrency-safe in-memory Repository. It exists as the
// deterministic test double for the Postgres-backed store and as a
// dependency-free way to run the orchestrator and query layers locally.
//
// Locking model: one RWMutex guards the whole store. Single-row upserts
// take the write lock only long enough to copy in one value, so a
// concurrent bulk read (which takes the read lock, briefly, to copy out a
// consistent snapshot) never stalls behind network I/O — all I/O
// happens outside the lock, matching the "no dirty reads, scans don't
// block upserts" contract in spec.md §4.1/§5.
type MemoryStore struct {
	mu sync.RWMutex

	teamsByName map[string]*model.Team
	teamsByID   map[uuid.UUID]*model.Team

	competitions map[uuid.UUID]*model.Competition
	// competitionsByKey dedupes EnsureCompetition by (name, season).
	competitionsByKey map[string]uuid.UUID

	records map[model.TeamInCompetitionKey]*model.TeamInCompetition
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		teamsByName:       make(map[string]*model.Team),
		teamsByID:         make(map[uuid.UUID]*model.Team),
		competitions:      make(map[uuid.UUID]*model.Competition),
		competitionsByKey: make(map[string]uuid.UUID),
		records:           make(map[model.TeamInCompetitionKey]*model.TeamInCompetition),
	}
}

func (s *MemoryStore) EnsureTeam(_ context.Context, name string) (*model.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teamsByName[name]; ok {
		return t, nil
	}
	t := model.NewTeam(name)
	s.teamsByName[name] = t
	s.teamsByID[t.ID] = t
	return t, nil
}

func (s *MemoryStore) GetTeamByName(_ context.Context, name string) (*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teamsByName[name]
	if !ok {
		return nil, apperr.Newf(apperr.Permanent, "store.GetTeamByName", "team %q not found", name)
	}
	return t, nil
}

func (s *MemoryStore) ListTeams(_ context.Context, competitionID *uuid.UUID) ([]*model.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if competitionID == nil {
		out := make([]*model.Team, 0, len(s.teamsByID))
		for _, t := range s.teamsByID {
			out = append(out, t)
		}
		return out, nil
	}
	seen := make(map[uuid.UUID]bool)
	var out []*model.Team
	for key, rec := range s.records {
		if key.CompetitionID != *competitionID {
			continue
		}
		if seen[rec.TeamID] {
			continue
		}
		seen[rec.TeamID] = true
		if t, ok := s.teamsByID[rec.TeamID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func competitionKey(name, season string) string { return name + "\x00" + season }

func (s *MemoryStore) EnsureCompetition(_ context.Context, name string, typ model.CompetitionType, country, season string, tier int) (*model.Competition, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := competitionKey(name, season)
	if id, ok := s.competitionsByKey[key]; ok {
		return s.competitions[id], nil
	}
	c := &model.Competition{
		ID:      uuid.New(),
		Name:    name,
		Type:    typ,
		Country: country,
		Season:  season,
		Tier:    tier,
	}
	s.competitions[c.ID] = c
	s.competitionsByKey[key] = c.ID
	return c, nil
}

func (s *MemoryStore) GetCompetition(_ context.Context, id uuid.UUID) (*model.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.competitions[id]
	if !ok {
		return nil, apperr.Newf(apperr.Permanent, "store.GetCompetition", "competition %s not found", id)
	}
	return c, nil
}

func (s *MemoryStore) ListCompetitionsInSeason(_ context.Context, season string, typ *model.CompetitionType) ([]*model.Competition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.Competition
	for _, c := range s.competitions {
		if c.Season != season {
			continue
		}
		if typ != nil && c.Type != *typ {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *MemoryStore) UpsertRaw(_ context.Context, teamID, competitionID uuid.UUID, season string, parameter model.Parameter, value float64) error {
	if !parameter.Valid() {
		return apperr.Newf(apperr.Internal, "store.UpsertRaw", "unknown parameter %q", parameter)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.TeamInCompetitionKey{TeamID: teamID, CompetitionID: competitionID, Season: season}
	rec, ok := s.records[key]
	if !ok {
		rec = model.NewTeamInCompetition(teamID, competitionID, season)
		s.records[key] = rec
	}
	v := value
	rec.Raw[parameter] = &v
	rec.LastUpdated = time.Now()
	return nil
}

func (s *MemoryStore) RawValues(_ context.Context, competitionID uuid.UUID, season string, parameter model.Parameter) (map[uuid.UUID]*float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]*float64)
	for key, rec := range s.records {
		if key.CompetitionID != competitionID || key.Season != season {
			continue
		}
		if v, ok := rec.Raw[parameter]; ok {
			out[key.TeamID] = copyPtr(v)
		} else {
			out[key.TeamID] = nil
		}
	}
	return out, nil
}

func (s *MemoryStore) ListTeamsInCompetition(_ context.Context, competitionID uuid.UUID, season string) ([]uuid.UUID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []uuid.UUID
	for key := range s.records {
		if key.CompetitionID == competitionID && key.Season == season {
			out = append(out, key.TeamID)
		}
	}
	return out, nil
}

func (s *MemoryStore) WriteAggregate(_ context.Context, w AggregateWrite) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := model.TeamInCompetitionKey{TeamID: w.TeamID, CompetitionID: w.CompetitionID, Season: w.Season}
	rec, ok := s.records[key]
	if !ok {
		return apperr.Newf(apperr.Internal, "store.WriteAggregate", "no raw record for %v; aggregator must not run ahead of collectors", key)
	}
	rec.Normalized = copyMap(w.Normalized)
	rec.OverallStrength = copyPtr(w.OverallStrength)
	rec.LocalLeagueStrength = copyPtr(w.LocalLeagueStrength)
	rec.EuropeanStrength = copyPtr(w.EuropeanStrength)
	rec.Confidence = w.Confidence
	rec.LastUpdated = time.Now()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, teamID, competitionID uuid.UUID, season string) (*model.TeamInCompetition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[model.TeamInCompetitionKey{TeamID: teamID, CompetitionID: competitionID, Season: season}]
	if !ok {
		return nil, apperr.Newf(apperr.Permanent, "store.Get", "no record for team=%s competition=%s season=%s", teamID, competitionID, season)
	}
	return cloneRecord(rec), nil
}

func (s *MemoryStore) GetAllForTeam(_ context.Context, teamID uuid.UUID, season string) ([]*model.TeamInCompetition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*model.TeamInCompetition
	for key, rec := range s.records {
		if key.TeamID == teamID && key.Season == season {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

func (s *MemoryStore) Coverage(_ context.Context, competitionID uuid.UUID, season string) ([]CoverageRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalTeams := 0
	byParam := make(map[model.Parameter]*CoverageRow)
	for _, p := range model.Parameters {
		byParam[p] = &CoverageRow{Parameter: p}
	}

	for key, rec := range s.records {
		if key.CompetitionID != competitionID || key.Season != season {
			continue
		}
		totalTeams++
		for _, p := range model.Parameters {
			row := byParam[p]
			if v, ok := rec.Raw[p]; ok && v != nil {
				row.NonNullCount++
			}
			if row.OldestUpdated.IsZero() || rec.LastUpdated.Before(row.OldestUpdated) {
				row.OldestUpdated = rec.LastUpdated
			}
			if rec.LastUpdated.After(row.NewestUpdated) {
				row.NewestUpdated = rec.LastUpdated
			}
		}
	}

	out := make([]CoverageRow, 0, len(model.Parameters))
	for _, p := range model.Parameters {
		row := *byParam[p]
		row.TotalTeams = totalTeams
		out = append(out, row)
	}
	return out, nil
}

// --------------------------------------------------------------------------
// helpers
// --------------------------------------------------------------------------

func copyPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

func copyMap(m map[model.Parameter]*float64) map[model.Parameter]*float64 {
	out := make(map[model.Parameter]*float64, len(m))
	for k, v := range m {
		out[k] = copyPtr(v)
	}
	return out
}

func cloneRecord(rec *model.TeamInCompetition) *model.TeamInCompetition {
	clone := *rec
	clone.Raw = copyMap(rec.Raw)
	clone.Normalized = copyMap(rec.Normalized)
	clone.OverallStrength = copyPtr(rec.OverallStrength)
	clone.LocalLeagueStrength = copyPtr(rec.LocalLeagueStrength)
	clone.EuropeanStrength = copyPtr(rec.EuropeanStrength)
	return &clone
}
