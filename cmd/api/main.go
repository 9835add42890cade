// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the characters GraphQL gateway.
//
// # Startup Sequence
//
//  1. Initialize a bootstrap logger.
//  2. Load configuration from environment variables.
//  3. Open the file and console log sinks.
//  4. Register Prometheus collectors.
//  5. Select the cache backend (redis, memory, none).
//  6. Wire the upstream client, repository, schema, and GraphQL handler.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/99designs/gqlgen/graphql/playground"

	"github.com/taibuivan/characters-gateway/internal/api"
	"github.com/taibuivan/characters-gateway/internal/character"
	"github.com/taibuivan/characters-gateway/internal/graph"
	"github.com/taibuivan/characters-gateway/internal/platform/cache"
	"github.com/taibuivan/characters-gateway/internal/platform/config"
	"github.com/taibuivan/characters-gateway/internal/platform/constants"
	"github.com/taibuivan/characters-gateway/internal/platform/logging"
	"github.com/taibuivan/characters-gateway/internal/platform/metric"
	redisstore "github.com/taibuivan/characters-gateway/internal/platform/redis"
	"github.com/taibuivan/characters-gateway/internal/platform/rest"
)

func main() {
	// ── 1. Bootstrap Logger ───────────────────────────────────────────────
	// Structured JSON until the configured sinks are open.
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(slog.String(constants.FieldApp, constants.AppName))
	slog.SetDefault(log)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	// ── 3. Log Sinks ──────────────────────────────────────────────────────
	sinks, err := logging.New(logging.Options{
		Environment: cfg.Environment,
		Dir:         cfg.LogDir,
		Debug:       cfg.Debug,
		MaxSizeMB:   cfg.LogMaxSizeMB,
		MaxAgeDays:  cfg.LogMaxAgeDays,
	})
	must(log, err, "open log sinks")
	defer func() {
		if cerr := sinks.Close(); cerr != nil {
			log.Error("log sink close error", slog.Any("error", cerr))
		}
	}()

	log = sinks.Logger
	slog.SetDefault(log)

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.String("upstream", cfg.UpstreamBaseURL),
		slog.String("cache_backend", cfg.CacheBackend),
	)

	// Root context: cancelled on shutdown so background workers stop.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	startupCtx, startupCancel := context.WithTimeout(rootCtx, constants.StartupTimeout)
	defer startupCancel()

	// ── 4. Metrics ────────────────────────────────────────────────────────
	registry, err := metric.NewRegistry(cfg.MetricsAppLabel)
	must(log, err, "register metrics")

	// ── 5. Cache Backend ──────────────────────────────────────────────────
	store, closeStore, err := openCache(startupCtx, cfg, log)
	must(log, err, "open cache backend")
	defer closeStore()

	liveness, readiness := api.NewHealthHandlers([]api.Check{
		{Name: store.Name(), Probe: store.Ping},
	}, log)

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	client, err := rest.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, nil)
	must(log, err, "create upstream client")

	repository := character.NewRESTRepository(client, registry.Metrics, log)

	sdl, err := graph.SDL()
	must(log, err, "load graphql schema")

	schema, err := graph.NewSchema(sdl, graph.NewResolver(repository, registry.Metrics), cfg.MaxParallelism, log)
	must(log, err, "build graphql schema")

	hints, err := graph.NewCacheHints(sdl, cfg.DefaultMaxAge)
	must(log, err, "analyse cache hints")

	graphqlHandler := graph.NewHandler(graph.Options{
		Schema:            schema,
		Hints:             hints,
		Cache:             store,
		Metrics:           registry.Metrics,
		Logger:            log,
		PersistedQueryTTL: cfg.PersistedQueryTTL,
	})

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		GraphQL:    graphqlHandler,
		Playground: playground.Handler("Characters", "/graphql"),
		Metrics:    registry.Handler(),
	})

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
	}

	log.Info("server stopped cleanly")
}

// openCache builds the configured backend and its release function.
func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache.Cache, func(), error) {
	switch cfg.CacheBackend {
	case config.CacheBackendRedis:
		rdb, err := redisstore.NewClient(ctx, redisstore.Options{
			Host:           cfg.RedisHost,
			Port:           cfg.RedisPort,
			Password:       cfg.RedisPassword,
			ConnectTimeout: cfg.RedisConnectTimeout,
		}, log)
		if err != nil {
			return nil, nil, err
		}
		return cache.NewRedis(rdb, constants.CacheNamespace), func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}, nil

	case config.CacheBackendMemory:
		memory, err := cache.NewMemory(cfg.CacheMaxCost, constants.CacheNamespace)
		if err != nil {
			return nil, nil, err
		}
		return memory, memory.Close, nil

	default:
		return cache.NewNoop(), func() {}, nil
	}
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned and
// handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
