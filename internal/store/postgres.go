package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/model"
)

// PostgresStore is the production Repository, backed by pgxpool. Unlike the
// schema it is descended from, business logic never lives in SQL functions
// here — every rule (normalization, aggregation, odds) belongs to a Go
// package, and Postgres only stores and retrieves rows (spec.md §9, Design
// Notes: "mixing SQL dialects across backends").
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates and validates a connection pool, registering the
// prepared statements every query below relies on.
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, apperr.New(apperr.Configuration, "store.NewPostgresStore", fmt.Errorf("parse database URL: %w", err))
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.NewPostgresStore", fmt.Errorf("create pool: %w", err))
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, apperr.New(apperr.Storage, "store.NewPostgresStore", fmt.Errorf("ping database: %w", err))
	}

	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (s *PostgresStore) HealthCheck(ctx context.Context) error {
	var n int
	if err := s.pool.QueryRow(ctx, "health_check").Scan(&n); err != nil {
		return apperr.New(apperr.Storage, "store.HealthCheck", err)
	}
	return nil
}

// registerPreparedStatements registers every statement the store issues.
// Plain CRUD only — no stored procedures, per the Data Store design notes.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		"health_check": "SELECT 1",

		"ensure_team": `
			INSERT INTO teams (id, name)
			VALUES ($1, $2)
			ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
			RETURNING id, name, nationality, confederation`,
		"get_team_by_name": `
			SELECT id, name, nationality, confederation FROM teams WHERE name = $1`,
		"list_teams_all": `
			SELECT id, name, nationality, confederation FROM teams ORDER BY name`,
		"list_teams_in_competition": `
			SELECT DISTINCT t.id, t.name, t.nationality, t.confederation
			FROM teams t
			JOIN team_in_competition tic ON tic.team_id = t.id
			WHERE tic.competition_id = $1
			ORDER BY t.name`,

		"ensure_competition": `
			INSERT INTO competitions (id, name, type, country, season, tier)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name, season) DO UPDATE SET name = EXCLUDED.name
			RETURNING id, name, type, country, season, tier, external_league_id`,
		"get_competition": `
			SELECT id, name, type, country, season, tier, external_league_id
			FROM competitions WHERE id = $1`,
		"list_competitions_in_season": `
			SELECT id, name, type, country, season, tier, external_league_id
			FROM competitions WHERE season = $1`,
		"list_competitions_in_season_typed": `
			SELECT id, name, type, country, season, tier, external_league_id
			FROM competitions WHERE season = $1 AND type = $2`,

		"upsert_raw": `
			INSERT INTO team_in_competition (team_id, competition_id, season, raw, last_updated)
			VALUES ($1, $2, $3, jsonb_build_object($4::text, $5::float8), now())
			ON CONFLICT (team_id, competition_id, season)
			DO UPDATE SET raw = team_in_competition.raw || jsonb_build_object($4::text, $5::float8),
			              last_updated = now()`,
		"raw_values_for_parameter": `
			SELECT team_id, raw->$3 FROM team_in_competition
			WHERE competition_id = $1 AND season = $2`,
		"team_ids_in_competition": `
			SELECT team_id FROM team_in_competition WHERE competition_id = $1 AND season = $2`,

		"write_aggregate": `
			UPDATE team_in_competition
			SET normalized = $4, overall_strength = $5, local_league_strength = $6,
			    european_strength = $7, confidence = $8, last_updated = now()
			WHERE team_id = $1 AND competition_id = $2 AND season = $3`,

		"get_record": `
			SELECT team_id, competition_id, season, raw, normalized, overall_strength,
			       local_league_strength, european_strength, confidence, last_updated
			FROM team_in_competition
			WHERE team_id = $1 AND competition_id = $2 AND season = $3`,
		"get_all_for_team": `
			SELECT team_id, competition_id, season, raw, normalized, overall_strength,
			       local_league_strength, european_strength, confidence, last_updated
			FROM team_in_competition
			WHERE team_id = $1 AND season = $2`,

		"coverage_scan": `
			SELECT raw, last_updated FROM team_in_competition
			WHERE competition_id = $1 AND season = $2`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}

func (s *PostgresStore) EnsureTeam(ctx context.Context, name string) (*model.Team, error) {
	t := &model.Team{ID: uuid.New(), Name: name}
	row := s.pool.QueryRow(ctx, "ensure_team", t.ID, name)
	var nat, conf *string
	if err := row.Scan(&t.ID, &t.Name, &nat, &conf); err != nil {
		return nil, apperr.New(apperr.Storage, "store.EnsureTeam", err)
	}
	t.Nationality = derefStr(nat)
	t.Confederation = derefStr(conf)
	return t, nil
}

func (s *PostgresStore) GetTeamByName(ctx context.Context, name string) (*model.Team, error) {
	row := s.pool.QueryRow(ctx, "get_team_by_name", name)
	t := &model.Team{}
	var nat, conf *string
	if err := row.Scan(&t.ID, &t.Name, &nat, &conf); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.Newf(apperr.Permanent, "store.GetTeamByName", "team %q not found", name)
		}
		return nil, apperr.New(apperr.Storage, "store.GetTeamByName", err)
	}
	t.Nationality = derefStr(nat)
	t.Confederation = derefStr(conf)
	return t, nil
}

func (s *PostgresStore) ListTeams(ctx context.Context, competitionID *uuid.UUID) ([]*model.Team, error) {
	var rows pgx.Rows
	var err error
	if competitionID == nil {
		rows, err = s.pool.Query(ctx, "list_teams_all")
	} else {
		rows, err = s.pool.Query(ctx, "list_teams_in_competition", *competitionID)
	}
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.ListTeams", err)
	}
	defer rows.Close()

	var out []*model.Team
	for rows.Next() {
		t := &model.Team{}
		var nat, conf *string
		if err := rows.Scan(&t.ID, &t.Name, &nat, &conf); err != nil {
			return nil, apperr.New(apperr.Storage, "store.ListTeams", err)
		}
		t.Nationality = derefStr(nat)
		t.Confederation = derefStr(conf)
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *PostgresStore) EnsureCompetition(ctx context.Context, name string, typ model.CompetitionType, country, season string, tier int) (*model.Competition, error) {
	row := s.pool.QueryRow(ctx, "ensure_competition", uuid.New(), name, string(typ), country, season, tier)
	c := &model.Competition{}
	var extID *string
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Country, &c.Season, &c.Tier, &extID); err != nil {
		return nil, apperr.New(apperr.Storage, "store.EnsureCompetition", err)
	}
	c.ExternalLeagueID = derefStr(extID)
	return c, nil
}

func (s *PostgresStore) GetCompetition(ctx context.Context, id uuid.UUID) (*model.Competition, error) {
	row := s.pool.QueryRow(ctx, "get_competition", id)
	c := &model.Competition{}
	var extID *string
	if err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Country, &c.Season, &c.Tier, &extID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.Newf(apperr.Permanent, "store.GetCompetition", "competition %s not found", id)
		}
		return nil, apperr.New(apperr.Storage, "store.GetCompetition", err)
	}
	c.ExternalLeagueID = derefStr(extID)
	return c, nil
}

func (s *PostgresStore) ListCompetitionsInSeason(ctx context.Context, season string, typ *model.CompetitionType) ([]*model.Competition, error) {
	var rows pgx.Rows
	var err error
	if typ == nil {
		rows, err = s.pool.Query(ctx, "list_competitions_in_season", season)
	} else {
		rows, err = s.pool.Query(ctx, "list_competitions_in_season_typed", season, string(*typ))
	}
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.ListCompetitionsInSeason", err)
	}
	defer rows.Close()

	var out []*model.Competition
	for rows.Next() {
		c := &model.Competition{}
		var extID *string
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.Country, &c.Season, &c.Tier, &extID); err != nil {
			return nil, apperr.New(apperr.Storage, "store.ListCompetitionsInSeason", err)
		}
		c.ExternalLeagueID = derefStr(extID)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpsertRaw(ctx context.Context, teamID, competitionID uuid.UUID, season string, parameter model.Parameter, value float64) error {
	if !parameter.Valid() {
		return apperr.Newf(apperr.Internal, "store.UpsertRaw", "unknown parameter %q", parameter)
	}
	if _, err := s.pool.Exec(ctx, "upsert_raw", teamID, competitionID, season, string(parameter), value); err != nil {
		return apperr.New(apperr.Storage, "store.UpsertRaw", err)
	}
	return nil
}

func (s *PostgresStore) RawValues(ctx context.Context, competitionID uuid.UUID, season string, parameter model.Parameter) (map[uuid.UUID]*float64, error) {
	rows, err := s.pool.Query(ctx, "raw_values_for_parameter", competitionID, season, string(parameter))
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.RawValues", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]*float64)
	for rows.Next() {
		var teamID uuid.UUID
		var v *float64
		if err := rows.Scan(&teamID, &v); err != nil {
			return nil, apperr.New(apperr.Storage, "store.RawValues", err)
		}
		out[teamID] = v
	}
	return out, rows.Err()
}

func (s *PostgresStore) ListTeamsInCompetition(ctx context.Context, competitionID uuid.UUID, season string) ([]uuid.UUID, error) {
	rows, err := s.pool.Query(ctx, "team_ids_in_competition", competitionID, season)
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.ListTeamsInCompetition", err)
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, apperr.New(apperr.Storage, "store.ListTeamsInCompetition", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (s *PostgresStore) WriteAggregate(ctx context.Context, w AggregateWrite) error {
	normalizedJSON, err := json.Marshal(w.Normalized)
	if err != nil {
		return apperr.New(apperr.Internal, "store.WriteAggregate", err)
	}
	tag, err := s.pool.Exec(ctx, "write_aggregate",
		w.TeamID, w.CompetitionID, w.Season,
		normalizedJSON, w.OverallStrength, w.LocalLeagueStrength, w.EuropeanStrength, w.Confidence)
	if err != nil {
		return apperr.New(apperr.Storage, "store.WriteAggregate", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.Newf(apperr.Internal, "store.WriteAggregate", "no raw record for team=%s competition=%s season=%s; aggregator must not run ahead of collectors", w.TeamID, w.CompetitionID, w.Season)
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, teamID, competitionID uuid.UUID, season string) (*model.TeamInCompetition, error) {
	row := s.pool.QueryRow(ctx, "get_record", teamID, competitionID, season)
	rec, err := scanRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperr.Newf(apperr.Permanent, "store.Get", "no record for team=%s competition=%s season=%s", teamID, competitionID, season)
		}
		return nil, apperr.New(apperr.Storage, "store.Get", err)
	}
	return rec, nil
}

func (s *PostgresStore) GetAllForTeam(ctx context.Context, teamID uuid.UUID, season string) ([]*model.TeamInCompetition, error) {
	rows, err := s.pool.Query(ctx, "get_all_for_team", teamID, season)
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.GetAllForTeam", err)
	}
	defer rows.Close()

	var out []*model.TeamInCompetition
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, apperr.New(apperr.Storage, "store.GetAllForTeam", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Coverage(ctx context.Context, competitionID uuid.UUID, season string) ([]CoverageRow, error) {
	rows, err := s.pool.Query(ctx, "coverage_scan", competitionID, season)
	if err != nil {
		return nil, apperr.New(apperr.Storage, "store.Coverage", err)
	}
	defer rows.Close()

	totalTeams := 0
	byParam := make(map[model.Parameter]*CoverageRow, len(model.Parameters))
	for _, p := range model.Parameters {
		byParam[p] = &CoverageRow{Parameter: p}
	}

	for rows.Next() {
		var raw map[string]*float64
		var lastUpdated time.Time
		if err := rows.Scan(&raw, &lastUpdated); err != nil {
			return nil, apperr.New(apperr.Storage, "store.Coverage", err)
		}
		totalTeams++
		for _, p := range model.Parameters {
			row := byParam[p]
			if v, ok := raw[string(p)]; ok && v != nil {
				row.NonNullCount++
			}
			if row.OldestUpdated.IsZero() || lastUpdated.Before(row.OldestUpdated) {
				row.OldestUpdated = lastUpdated
			}
			if lastUpdated.After(row.NewestUpdated) {
				row.NewestUpdated = lastUpdated
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.New(apperr.Storage, "store.Coverage", err)
	}

	out := make([]CoverageRow, 0, len(model.Parameters))
	for _, p := range model.Parameters {
		row := *byParam[p]
		row.TotalTeams = totalTeams
		out = append(out, row)
	}
	return out, nil
}

// rowScanner abstracts pgx.Row and pgx.Rows, both of which satisfy Scan.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*model.TeamInCompetition, error) {
	rec := &model.TeamInCompetition{}
	var rawJSON, normalizedJSON map[string]*float64
	if err := row.Scan(
		&rec.TeamID, &rec.CompetitionID, &rec.Season,
		&rawJSON, &normalizedJSON,
		&rec.OverallStrength, &rec.LocalLeagueStrength, &rec.EuropeanStrength,
		&rec.Confidence, &rec.LastUpdated,
	); err != nil {
		return nil, err
	}
	rec.Raw = make(map[model.Parameter]*float64, len(rawJSON))
	for k, v := range rawJSON {
		rec.Raw[model.Parameter(k)] = v
	}
	rec.Normalized = make(map[model.Parameter]*float64, len(normalizedJSON))
	for k, v := range normalizedJSON {
		rec.Normalized[model.Parameter(k)] = v
	}
	return rec, nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
