// Command api is the Strength Engine Query API server.
//
// Usage:
//
//	strength-api
//	API_PORT=8080 strength-api

// @title Strength Engine Query API
// @version 1.0.0
// @description Serves team strength scores, coverage reports, and betting odds derived from the strength engine's data store.
// @BasePath /api/v1
// @schemes http https
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/strength-engine/internal/api"
	"github.com/albapepper/strength-engine/internal/cache"
	"github.com/albapepper/strength-engine/internal/config"
	"github.com/albapepper/strength-engine/internal/query"
	"github.com/albapepper/strength-engine/internal/store"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	_ = godotenv.Load(".env")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	logger.Info("connecting to database...")
	repo, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("database connected")

	var appCache *cache.Cache
	if cfg.CacheEnabled {
		appCache, err = cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			logger.Error("failed to connect to cache", "error", err)
			os.Exit(1)
		}
		defer appCache.Close()
		go func() {
			if err := appCache.Subscribe(ctx); err != nil && ctx.Err() == nil {
				logger.Error("cache invalidation subscriber stopped", "error", err)
			}
		}()
		logger.Info("cache connected", "url", cfg.RedisURL)
	} else {
		logger.Info("cache disabled")
	}

	svc := query.New(repo, cfg.Odds)
	router := api.NewRouter(svc, appCache, cfg, logger)

	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting strength engine query api",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
