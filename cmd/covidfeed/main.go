package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/covid-feed-etl/internal/adapter/csse"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/ddc"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/healthmap"
	httpadapter "github.com/couchcryptid/covid-feed-etl/internal/adapter/http"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/sheets"
	"github.com/couchcryptid/covid-feed-etl/internal/adapter/workpoint"
	"github.com/couchcryptid/covid-feed-etl/internal/config"
	"github.com/couchcryptid/covid-feed-etl/internal/observability"
	"github.com/couchcryptid/covid-feed-etl/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	daily := csse.NewClient(cfg.CaseAPIHost, cfg.UpstreamTimeout, logger)
	workpointClient := workpoint.NewClient(cfg.WorkpointAPIHost, cfg.UpstreamTimeout, logger)
	sheetsClient := sheets.NewClient(sheets.Endpoints{
		Cases:     cfg.CasesSheetURL,
		Hospitals: cfg.HospitalsSheetURL,
		SafeZones: cfg.SafeZoneSheetURL,
		Summary:   cfg.SummarySheetURL,
	}, cfg.UpstreamTimeout, logger)
	dashboard := ddc.NewClient(cfg.DashboardURL, cfg.UpstreamTimeout, logger, metrics)
	facilities := healthmap.NewClient(cfg.HealthMapURL, cfg.UpstreamTimeout, logger)

	if cfg.DashboardURL == "" {
		logger.Info("dashboard scraping disabled")
	}
	if cfg.HealthMapURL == "" {
		logger.Info("health map feed disabled")
	}

	service := report.New(daily, workpointClient, sheetsClient, dashboard, facilities, cfg.DefaultCountry, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, service, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
