package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/battleroyale/stats-dashboard/internal/audit"
	"github.com/battleroyale/stats-dashboard/internal/config"
	"github.com/battleroyale/stats-dashboard/internal/environment"
	"github.com/battleroyale/stats-dashboard/internal/handlers"
	"github.com/battleroyale/stats-dashboard/internal/logging"
	"github.com/battleroyale/stats-dashboard/internal/logic"
	"github.com/battleroyale/stats-dashboard/internal/upstream"
	"github.com/battleroyale/stats-dashboard/internal/worker"
)

// @title Stats Dashboard API
// @version 1.0
// @description Admin reports and economy edits for the Battle Royale backend.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Development: cfg.IsDevelopment(),
		File:        cfg.LogFile,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxBackups:  cfg.LogMaxBackups,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openAuditStore(ctx, cfg, logger)
	if err != nil {
		sugar.Fatalw("Failed to open audit store", "backend", cfg.AuditBackend, "error", err)
	}
	defer closeStore()

	auditPool := worker.NewPool(worker.PoolConfig{
		Store:  store,
		Logger: logger,
	})
	auditPool.Start(ctx)

	urls, err := environment.NewTable(cfg.UpstreamURLs)
	if err != nil {
		sugar.Fatalw("Invalid upstream URLs", "error", err)
	}
	client, err := upstream.New(upstream.Config{
		URLs:    urls,
		Timeout: cfg.UpstreamTimeout,
		Logger:  logger,
	})
	if err != nil {
		sugar.Fatalw("Failed to create upstream client", "error", err)
	}

	h := handlers.New(handlers.Config{
		Logger:             logger,
		Audit:              auditPool,
		Tournaments:        logic.NewTournamentService(client),
		UserStats:          logic.NewUserStatsService(client),
		Activity:           logic.NewActivityService(client),
		Economy:            logic.NewEconomyService(client, auditPool, logger),
		Overview:           logic.NewOverviewService(client),
		DefaultEnv:         cfg.DefaultTarget,
		TournamentWindow:   cfg.TournamentWindow,
		ReportWindow:       cfg.ReportWindow,
		Location:           cfg.DisplayLocation,
		AllowedOrigins:     cfg.AllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// Upstream calls are bounded by UPSTREAM_TIMEOUT.
		WriteTimeout: cfg.UpstreamTimeout + 10*time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	go func() {
		sugar.Infow("Server starting",
			"port", cfg.Port,
			"env", cfg.Env,
			"default_target", cfg.DefaultTarget,
			"audit", cfg.AuditBackend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
	auditPool.Stop()
	sugar.Info("Server stopped")
}

// openAuditStore connects the configured backend. The returned func releases
// its connections.
func openAuditStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (audit.Store, func(), error) {
	switch cfg.AuditBackend {
	case config.AuditRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		return audit.NewRedisStore(rdb, cfg.AuditMaxEntries, logger), func() { rdb.Close() }, nil

	case config.AuditPostgres:
		pool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := audit.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return store, pool.Close, nil

	default:
		return audit.NopStore{}, func() {}, nil
	}
}
