// Package app wires configuration, the estimation engine, the sunshine
// collaborator and the REST server into a running service.
package app

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/sunwatt/sunwatt/internal/engine"
	"github.com/sunwatt/sunwatt/internal/log"
	"github.com/sunwatt/sunwatt/internal/restserver"
	"github.com/sunwatt/sunwatt/internal/sunshine"
	"github.com/sunwatt/sunwatt/pkg/config"
)

// App represents the main application
type App struct {
	cfg    *config.Data
	logger *zap.SugaredLogger
}

// New creates a new application instance
func New(cfg *config.Data, logger *zap.SugaredLogger) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
	}
}

// Run starts the application and blocks until shutdown
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eng := engine.New(a.logger)
	fetcher := sunshine.NewFetcher(a.cfg.Sunshine.Endpoint, a.cfg.Sunshine.Timeout(), a.logger)

	if a.cfg.Sunshine.Endpoint == "" {
		log.Info("no sunshine endpoint configured, climate-zone estimates will be used")
	}

	rest := restserver.NewController(ctx, &wg, a.cfg, eng, fetcher, a.logger)
	if err := rest.Start(); err != nil {
		return err
	}

	log.Info("application started successfully")

	// Set up signal handling
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigs:
		log.Info("shutdown signal received, initiating graceful shutdown...")
	case <-ctx.Done():
		log.Info("context cancelled, shutting down...")
	}

	cancel()

	log.Info("waiting for all workers to terminate...")
	wg.Wait()
	log.Info("shutdown complete")

	return nil
}
