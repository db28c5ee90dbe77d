// Package config provides centralized configuration loaded from environment
// variables, shared by cmd/api and cmd/ingest. Configuration is loaded once
// into an immutable Config and threaded through by reference; hot-reload is
// only ever done by constructing a new Config between refresh cycles.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/albapepper/strength-engine/internal/apperr"
	"github.com/albapepper/strength-engine/internal/model"
)

// PartialCoveragePolicy controls what the Aggregator does when a
// positive-weight parameter is missing for a team.
type PartialCoveragePolicy string

const (
	SkipAndRenormalize PartialCoveragePolicy = "skip-and-renormalize"
	StrictNull         PartialCoveragePolicy = "strict-null"
)

// OddsConfig carries every tunable the Odds Engine needs; all bounds must
// stay stable across a single response (spec.md §4.5).
type OddsConfig struct {
	HomeBoostAlpha float64 // default 0.10
	DrawBeta       float64 // default 0.13
	DrawK          float64 // default 2.0
	DrawMin        float64 // default 0.20
	DrawMax        float64 // default 0.33
	Margin         float64 // default 0.05
	OverUnderMin   float64 // default 0.35
	OverUnderMax   float64 // default 0.75
	BTTSMin        float64 // default 0.35
	BTTSMax        float64 // default 0.80
}

// DefaultOddsConfig mirrors the defaults named throughout spec.md §4.5/§6.
func DefaultOddsConfig() OddsConfig {
	return OddsConfig{
		HomeBoostAlpha: 0.10,
		DrawBeta:       0.13,
		DrawK:          2.0,
		DrawMin:        0.20,
		DrawMax:        0.33,
		Margin:         0.05,
		OverUnderMin:   0.35,
		OverUnderMax:   0.75,
		BTTSMin:        0.35,
		BTTSMax:        0.80,
	}
}

// RetryConfig governs the orchestrator's exponential backoff for transient
// collector failures (spec.md §4.6/§5).
type RetryConfig struct {
	Initial     time.Duration // default 1s
	Factor      float64       // default 2
	Cap         time.Duration // default 60s
	MaxAttempts int           // default 5
}

// DefaultRetryConfig mirrors spec.md's stated defaults.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Initial:     1 * time.Second,
		Factor:      2,
		Cap:         60 * time.Second,
		MaxAttempts: 5,
	}
}

// Config is the full, immutable configuration surface described in
// spec.md §6.
type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Cache
	CacheEnabled bool
	RedisURL     string
	CacheTTL     time.Duration

	// Domain configuration
	Weights               map[model.Parameter]float64
	PartialCoveragePolicy PartialCoveragePolicy
	Odds                  OddsConfig
	CollectorConcurrency  int     // per provider, default 5
	CollectorRateLimit    float64 // outbound requests/sec per provider, default 10
	Retry                 RetryConfig
	Season                string
	RefreshCycleDeadline  time.Duration
}

// Load reads configuration from environment variables with sensible
// defaults.
func Load() (*Config, error) {
	dbURL := envOr("STRENGTH_DATABASE_URL", envOr("DATABASE_URL", ""))
	if dbURL == "" {
		return nil, apperr.Newf(apperr.Configuration, "config.Load",
			"STRENGTH_DATABASE_URL or DATABASE_URL must be set")
	}

	weights, err := loadWeights()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CacheEnabled: envBool("CACHE_ENABLED", true),
		RedisURL:     envOr("REDIS_URL", "redis://localhost:6379/0"),
		CacheTTL:     time.Duration(envInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		Weights:               weights,
		PartialCoveragePolicy: PartialCoveragePolicy(envOr("PARTIAL_COVERAGE_POLICY", string(SkipAndRenormalize))),
		Odds:                  loadOddsConfig(),
		CollectorConcurrency:  envInt("COLLECTOR_CONCURRENCY_PER_PROVIDER", 5),
		CollectorRateLimit:    envFloat("COLLECTOR_RATE_LIMIT_PER_SECOND", 10),
		Retry:                 loadRetryConfig(),
		Season:                envOr("SEASON", "2024"),
		RefreshCycleDeadline:  time.Duration(envInt("REFRESH_CYCLE_DEADLINE_SECONDS", 300)) * time.Second,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate enforces the configuration-error class of failures from
// spec.md §7: the weight-sum invariant and unknown-parameter names are
// fatal at startup.
func (c *Config) Validate() error {
	if c.PartialCoveragePolicy != SkipAndRenormalize && c.PartialCoveragePolicy != StrictNull {
		return apperr.Newf(apperr.Configuration, "config.Validate",
			"unknown partial_coverage_policy %q", c.PartialCoveragePolicy)
	}
	sum := 0.0
	for p, w := range c.Weights {
		if !p.Valid() {
			return apperr.Newf(apperr.Configuration, "config.Validate", "unknown parameter %q in weights", p)
		}
		if w < 0 {
			return apperr.Newf(apperr.Configuration, "config.Validate", "negative weight for %q", p)
		}
		sum += w
	}
	if math.Abs(sum-1.0) > 1e-6 {
		return apperr.Newf(apperr.Configuration, "config.Validate", "weights sum to %.9f, want 1.0 +/- 1e-6", sum)
	}
	if c.Odds.DrawMin > c.Odds.DrawMax {
		return apperr.Newf(apperr.Configuration, "config.Validate", "odds.draw_min > odds.draw_max")
	}
	if c.Odds.Margin < 0 {
		return apperr.Newf(apperr.Configuration, "config.Validate", "odds.margin must be >= 0")
	}
	return nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func loadWeights() (map[model.Parameter]float64, error) {
	defaults := model.DefaultWeights()
	weights := make(map[model.Parameter]float64, len(defaults))
	for p, w := range defaults {
		weights[p] = w
	}
	raw := envOr("WEIGHTS", "")
	if raw == "" {
		return weights, nil
	}
	// Format: "elo=0.2,squad_value=0.1,..." overriding named parameters.
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, apperr.Newf(apperr.Configuration, "config.loadWeights", "malformed WEIGHTS entry %q", pair)
		}
		p := model.Parameter(strings.TrimSpace(parts[0]))
		if !p.Valid() {
			return nil, apperr.Newf(apperr.Configuration, "config.loadWeights", "unknown parameter %q in WEIGHTS", p)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, apperr.Newf(apperr.Configuration, "config.loadWeights", "bad weight for %q: %v", p, err)
		}
		weights[p] = w
	}
	return weights, nil
}

func loadOddsConfig() OddsConfig {
	d := DefaultOddsConfig()
	return OddsConfig{
		HomeBoostAlpha: envFloat("ODDS_HOME_BOOST_ALPHA", d.HomeBoostAlpha),
		DrawBeta:       envFloat("ODDS_DRAW_BETA", d.DrawBeta),
		DrawK:          envFloat("ODDS_DRAW_K", d.DrawK),
		DrawMin:        envFloat("ODDS_DRAW_MIN", d.DrawMin),
		DrawMax:        envFloat("ODDS_DRAW_MAX", d.DrawMax),
		Margin:         envFloat("ODDS_MARGIN", d.Margin),
		OverUnderMin:   envFloat("ODDS_OVER_UNDER_MIN", d.OverUnderMin),
		OverUnderMax:   envFloat("ODDS_OVER_UNDER_MAX", d.OverUnderMax),
		BTTSMin:        envFloat("ODDS_BTTS_MIN", d.BTTSMin),
		BTTSMax:        envFloat("ODDS_BTTS_MAX", d.BTTSMax),
	}
}

func loadRetryConfig() RetryConfig {
	d := DefaultRetryConfig()
	return RetryConfig{
		Initial:     time.Duration(envInt("COLLECTOR_RETRY_INITIAL_MS", int(d.Initial.Milliseconds()))) * time.Millisecond,
		Factor:      envFloat("COLLECTOR_RETRY_FACTOR", d.Factor),
		Cap:         time.Duration(envInt("COLLECTOR_RETRY_CAP_MS", int(d.Cap.Milliseconds()))) * time.Millisecond,
		MaxAttempts: envInt("COLLECTOR_RETRY_MAX_ATTEMPTS", d.MaxAttempts),
	}
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
