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

	"golang.org/x/time/rate"

	sqliteadapter "github.com/cgsnascar/portfolio/internal/adapter/driven/sqlite"
	httphandler "github.com/cgsnascar/portfolio/internal/adapter/driving/http"
	"github.com/cgsnascar/portfolio/internal/application"
	"github.com/cgsnascar/portfolio/internal/config"
	"github.com/cgsnascar/portfolio/internal/observability"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast without a review key).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireReviewKey(); err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.APIListenAddr,
		"db_path", cfg.DBPath,
		"submit_interval", cfg.SubmitInterval,
		"submit_burst", cfg.SubmitBurst,
		"cors_origin", cfg.CORSOrigin,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (dual reader/writer with WAL mode).
	db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "path", cfg.DBPath)

	// 4. Run migrations on writer connection.
	version, err := sqliteadapter.RunMigrations(db.Writer)
	if err != nil {
		return err
	}
	slog.Info("migrations complete", "version", version)

	// 5. Wire adapters and services.
	projectStore := sqliteadapter.NewProjectRepo(db)
	reviewStore := sqliteadapter.NewReviewRepo(db)
	reviewSvc := application.NewReviewService(reviewStore, cfg.ReviewKey)

	var limiter *rate.Limiter
	if cfg.SubmitInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(cfg.SubmitInterval), cfg.SubmitBurst)
	}

	// 6. Create HTTP handler.
	metrics := observability.NewMetrics()
	apiHandler := httphandler.NewHandler(projectStore, reviewSvc, limiter, db, metrics, slog.Default())

	srv := &http.Server{
		Addr:              cfg.APIListenAddr,
		Handler:           httphandler.NewServeMux(apiHandler, cfg.CORSOrigin),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.APIListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("portfolio api started", "listen_addr", cfg.APIListenAddr)

	// 7. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 8. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
