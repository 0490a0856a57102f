package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/casting-agency/internal/database"
	"github.com/deppfellow/casting-agency/internal/handler"
	"github.com/deppfellow/casting-agency/internal/lib/health"
	"github.com/deppfellow/casting-agency/internal/middleware"
	"github.com/deppfellow/casting-agency/internal/repository"
	"github.com/deppfellow/casting-agency/internal/router"
	"github.com/deppfellow/casting-agency/internal/server"
	"github.com/deppfellow/casting-agency/internal/service"
)

const shutdownTimeout = 30 * time.Second

// runServe starts the API and blocks until SIGINT or SIGTERM, then drains
// in-flight requests for up to shutdownTimeout.
func runServe(ctx context.Context) error {
	cfg, loggerService, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer loggerService.Shutdown()

	// Local databases are migrated by hand while iterating on the schema.
	if cfg.Primary.Env != "local" {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		err := database.Migrate(migrateCtx, &log, cfg)
		cancel()
		if err != nil {
			log.Error().Err(err).Msg("failed to migrate database")
			return err
		}
	}

	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	mw, err := middleware.NewMiddlewares(srv)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize middleware")
		return errors.Join(err, srv.Shutdown(ctx))
	}

	r := router.NewRouter(srv, handlers, mw)
	srv.SetupHTTPServer(r)

	var monitor *health.Monitor
	if hc := cfg.Observability.HealthChecks; hc.Enabled {
		monitor = health.NewMonitor(srv.Health, hc.Interval, &log)
		monitor.OnCheck(mw.Metrics.RecordHealth)
		if err := monitor.Start(); err != nil {
			log.Error().Err(err).Msg("failed to start health monitor")
			return errors.Join(err, srv.Shutdown(ctx))
		}
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var startErr error
	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case startErr = <-serveErr:
		if startErr != nil {
			log.Error().Err(startErr).Msg("server stopped unexpectedly")
		}
	}

	if monitor != nil {
		monitor.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return errors.Join(startErr, err)
	}

	log.Info().Msg("server exited properly")
	return startErr
}
