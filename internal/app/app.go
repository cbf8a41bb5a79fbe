// Package app wires the analysis service together: configuration, logging,
// tracing, metrics, the websocket hub and the HTTP server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"salespulse/internal/analytics"
	"salespulse/internal/config"
	"salespulse/internal/infrastructure"
	"salespulse/internal/services"
	transporthttp "salespulse/internal/transport/http"
	"salespulse/internal/websocket"
)

// Application holds the assembled service.
type Application struct {
	Config  *config.Config
	Logger  *slog.Logger
	Tracing *infrastructure.Tracing
	Metrics *infrastructure.Metrics
	Hub     *websocket.Hub
	Server  *http.Server
}

// NewApplication loads configuration and assembles all components.
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initialize logger: %w", err)
	}

	tracing, err := infrastructure.InitializeTracing(infrastructure.TracingConfig{
		Enabled: true,
		Writer:  os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("initialize tracing: %w", err)
	}

	metrics := infrastructure.NewMetrics()
	hub := websocket.NewHub(logger)

	opts := analytics.Options{
		TopCustomers: cfg.Engine.TopCustomers,
		TopProducts:  cfg.Engine.TopProducts,
		TopReps:      cfg.Engine.TopReps,
		TopPairs:     cfg.Engine.TopPairs,
		Concurrency:  cfg.Engine.Concurrency,
	}
	analysis := services.NewAnalysisService(opts, metrics, hub, logger)
	if cfg.Engine.Today != "" {
		// Load already validated the format.
		today, err := time.Parse("2006-01-02", cfg.Engine.Today)
		if err != nil {
			return nil, fmt.Errorf("parse today override: %w", err)
		}
		analysis.SetDefaultToday(today)
	}
	health := services.NewHealthService()

	router := transporthttp.NewRouter(transporthttp.RouterDeps{
		Analysis: analysis,
		Health:   health,
		Hub:      hub,
		Metrics:  metrics,
		Config:   cfg,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &Application{
		Config:  cfg,
		Logger:  logger,
		Tracing: tracing,
		Metrics: metrics,
		Hub:     hub,
		Server:  server,
	}, nil
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully.
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Hub.Start()

	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info("server listening",
			slog.String("addr", a.Server.Addr))
		if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	a.Logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	a.Hub.Stop()
	if err := a.Tracing.Shutdown(shutdownCtx); err != nil {
		a.Logger.Warn("tracing shutdown", slog.Any("error", err))
	}

	a.Logger.Info("stopped")
	return nil
}
