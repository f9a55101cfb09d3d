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

	"github.com/jonboulle/clockwork"

	httpadapter "github.com/couchcryptid/lake-evaporation-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/lake-evaporation-service/internal/adapter/kafka"
	"github.com/couchcryptid/lake-evaporation-service/internal/adapter/portal"
	"github.com/couchcryptid/lake-evaporation-service/internal/adapter/raster"
	"github.com/couchcryptid/lake-evaporation-service/internal/config"
	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
	"github.com/couchcryptid/lake-evaporation-service/internal/observability"
	"github.com/couchcryptid/lake-evaporation-service/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	timezone, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone", "timezone", cfg.Timezone, "error", err)
		os.Exit(1)
	}

	client := portal.NewClient(cfg.PortalBaseURL, portal.Credentials{
		Username: cfg.PortalUsername,
		Email:    cfg.PortalEmail,
		Password: cfg.PortalPassword,
	}, cfg.PortalTimeout, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := client.Login(ctx); err != nil {
		logger.Error("portal login failed", "error", err)
		os.Exit(1)
	}

	discovery := portal.NewDiscovery(client, logger)
	fetcher := portal.NewFetcher(client, discovery, logger)
	writer := portal.NewWriter(client, logger)

	// Raster cloud cover fallback (feature-flagged via RASTER_ENABLED).
	var clouds pipeline.CloudFetcher
	if cfg.RasterEnabled {
		clouds = raster.NewFetcher(client, cfg.RasterDatasourceID,
			cfg.RasterEuropeModel, cfg.RasterGlobalModel, cfg.RasterCacheSize, logger)
		logger.Info("raster cloud fallback enabled",
			"datasource", cfg.RasterDatasourceID,
			"europe_model", cfg.RasterEuropeModel,
			"global_model", cfg.RasterGlobalModel,
		)
	} else {
		logger.Info("raster cloud fallback disabled")
	}

	// Kafka result publishing (enabled when KAFKA_RESULT_TOPIC is set).
	var publisher pipeline.Publisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.PublisherEnabled() {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		logger.Info("kafka result publishing enabled", "topic", cfg.KafkaResultTopic)
	} else {
		logger.Info("kafka result publishing disabled")
	}

	coeffs := domain.DefaultCoefficients()
	coeffs.AngstromA = cfg.AngstromA
	coeffs.AngstromB = cfg.AngstromB

	p := pipeline.New(discovery, fetcher, clouds, writer, publisher,
		clockwork.NewRealClock(), logger, metrics, pipeline.Options{
			OrgID:           cfg.PortalOrgID,
			Interval:        cfg.RunInterval,
			Timezone:        timezone,
			ExpectedSamples: cfg.ExpectedSamples,
			DefaultAlbedo:   cfg.Albedo,
			Units: domain.SourceUnits{
				Temperature: cfg.TemperatureUnit,
				WindSpeed:   cfg.WindSpeedUnit,
				AirPressure: cfg.AirPressureUnit,
			},
			Coefficients: coeffs,
		})

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, cycleStatus{p}, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if err := client.Logout(shutdownCtx); err != nil {
		logger.Warn("portal logout error", "error", err)
	}

	logger.Info("shutdown complete")
}

// cycleStatus adapts the pipeline's cycle summary to the HTTP status
// endpoint.
type cycleStatus struct {
	p *pipeline.Pipeline
}

func (c cycleStatus) LastCycle() (httpadapter.CycleStatus, bool) {
	summary, ok := c.p.LastCycle()
	if !ok {
		return httpadapter.CycleStatus{}, false
	}
	return httpadapter.CycleStatus{
		RunID:       summary.RunID,
		StartedAt:   summary.StartedAt,
		Date:        summary.Date,
		Locations:   summary.Locations,
		Succeeded:   summary.Succeeded,
		Skipped:     summary.Skipped,
		Failed:      summary.Failed,
		DurationSec: summary.Duration.Seconds(),
	}, true
}
