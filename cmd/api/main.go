// Copyright (c) 2026 Aperture. All rights reserved.

// Command api is the entry point for the Aperture HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to Redis when configured (remote record backend).
//  4. Connect to the blob store (MinIO).
//  5. Assemble the record store with its failover policy.
//  6. Wire HTTP handlers.
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
	"time"

	"aperture/internal/api"
	"aperture/internal/auth"
	"aperture/internal/gallery"
	"aperture/internal/platform/blob"
	"aperture/internal/platform/config"
	"aperture/internal/platform/constants"
	redisstore "aperture/internal/platform/redis"
	"aperture/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "aperture"))
	slog.SetDefault(log)

	log.Info("[Aperture] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "aperture"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("remote_records", cfg.HasRedis()),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. Record Backends ────────────────────────────────────────────────
	// Backend selection happens exactly once, here. A configured Redis URL
	// makes the remote document the primary with the local file as
	// fallback; otherwise the file stands alone.
	fileBackend := gallery.NewFileBackend(cfg.DataDir)

	var primary, fallback gallery.Backend = fileBackend, nil
	var credentials auth.CredentialRepository = auth.NewFileCredentialRepository(cfg.DataDir)
	var checkRecords func() error

	if cfg.HasRedis() {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		primary, fallback = gallery.NewRedisBackend(rdb), fileBackend
		credentials = auth.NewRedisCredentialRepository(rdb)
		checkRecords = func() error {
			return redisstore.Ping(context.Background(), rdb)
		}
	}

	// ── 4. Blob Store ─────────────────────────────────────────────────────
	var blobs blob.Store
	var checkBlob func() error

	if cfg.HasBlobStore() {
		minioStore, err := blob.NewMinioStore(startupCtx, blob.Options{
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
			UseSSL:    cfg.S3UseSSL,
		}, log)
		must(log, err, "connect to blob store")
		blobs = minioStore
		checkBlob = func() error {
			return minioStore.Ping(context.Background())
		}
	} else {
		// Uploads cannot work without object storage. The rest of the API
		// (listing, reordering, deleting records) stays functional.
		log.Warn("blob_store_unconfigured")
		blobs = blob.Unconfigured{}
	}

	// ── 5. Session Service ────────────────────────────────────────────────
	sessionSvc, err := sec.NewSessionService(cfg.SessionSecret, constants.SessionIssuer)
	must(log, err, "initialize session service")

	// ── 6. Health handlers (wired with real dependency checkers) ─────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckRecords:   checkRecords,
		CheckBlobStore: checkBlob,
	}, log)

	// ── 7. Domain Wiring ──────────────────────────────────────────────────
	recordStore := gallery.NewStore(primary, fallback, log)
	galleryService := gallery.NewService(recordStore, blobs, log)
	galleryHandler := gallery.NewHandler(galleryService)

	authService := auth.NewService(credentials, sessionSvc, log)
	authHandler := auth.NewHandler(authService, cfg.IsProduction())

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Gallery:   galleryHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, sessionSvc, handlers)

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
