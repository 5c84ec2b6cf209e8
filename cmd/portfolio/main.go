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

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/cgsnascar/portfolio/internal/adapter/driven/portfolioapi"
	httphandler "github.com/cgsnascar/portfolio/internal/adapter/driving/http"
	webhandler "github.com/cgsnascar/portfolio/internal/adapter/driving/web"
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
	// 1. Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"api_base_url", cfg.APIBaseURL,
		"api_timeout", cfg.APITimeout,
		"submit_encoding", cfg.SubmitEncoding,
		"review_validation", cfg.ReviewValidation,
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewMetrics()

	// 3. Create the portfolio API client.
	apiClient, err := portfolioapi.NewClient(cfg.APIBaseURL,
		portfolioapi.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}),
		portfolioapi.WithEncoding(portfolioapi.Encoding(cfg.SubmitEncoding)),
		portfolioapi.WithMetrics(metrics),
	)
	if err != nil {
		return err
	}

	// 4. Create application services.
	panelSvc := application.NewPanelService(apiClient, slog.Default())
	submissionSvc := application.NewSubmissionService(apiClient, cfg.ReviewValidation, slog.Default())

	// 5. Create web handler and register routes.
	webHandler := webhandler.NewHandler(panelSvc, submissionSvc, webhandler.SiteConfig{
		Title:        cfg.SiteTitle,
		Description:  cfg.SiteDescription,
		OwnerName:    cfg.OwnerName,
		ContactEmail: cfg.ContactEmail,
	}, metrics, slog.Default())
	mux := http.NewServeMux()
	webhandler.RegisterRoutes(mux, webHandler)
	mux.Handle("GET /metrics", metrics.Handler())

	// Apply middleware.
	handler := httphandler.ApplyMiddleware(mux, slog.Default(), metrics)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
		}
	}()

	slog.Info("portfolio site started", "listen_addr", cfg.ListenAddr)

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	// 7. Graceful shutdown with 10s timeout.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
