package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// processLocation turns one location's raw day into a written result. The
// outcome distinguishes skipped days (incomplete data) from real failures.
func (p *Pipeline) processLocation(ctx context.Context, logger *slog.Logger, loc domain.Location, start, end time.Time) (domain.Result, string, error) {
	raw, err := p.fetcher.FetchDay(ctx, loc, start, end)
	if err != nil {
		return domain.Result{}, outcomeError, fmt.Errorf("fetch day: %w", err)
	}

	if err := domain.CheckCompleteness(raw, p.opts.ExpectedSamples); err != nil {
		logger.Warn("incomplete sensor data, skipping day",
			"location", loc.Name,
			"date", start.Format("2006-01-02"),
			"error", err,
		)
		return domain.Result{}, outcomeSkipped, nil
	}

	agg := domain.ConvertUnits(domain.Aggregate(raw), p.opts.Units)
	if err := domain.Validate(agg); err != nil {
		p.metrics.CalculationErrors.Inc()
		return domain.Result{}, outcomeError, fmt.Errorf("validate aggregate: %w", err)
	}

	dayOfYear := start.YearDay()

	sunshine, method := p.resolveSunshine(ctx, logger, loc, raw, agg, dayOfYear, start, end)
	p.metrics.SunshineMethod.WithLabelValues(string(method)).Inc()

	albedo := loc.Albedo
	if albedo == 0 {
		albedo = p.opts.DefaultAlbedo
	}

	components, err := p.opts.Coefficients.Evaporation(agg, loc.Geometry, albedo, dayOfYear, sunshine)
	if err != nil {
		p.metrics.CalculationErrors.Inc()
		return domain.Result{}, outcomeError, fmt.Errorf("evaporation: %w", err)
	}

	result := domain.Result{
		Date:           start,
		Location:       loc,
		Weather:        agg,
		Components:     components,
		SunshineMethod: method,
		ProcessedAt:    domain.Now(),
	}

	if err := p.writer.WriteResult(ctx, result); err != nil {
		p.metrics.WriteErrors.Inc()
		return domain.Result{}, outcomeError, fmt.Errorf("write result: %w", err)
	}

	p.metrics.EvaporationTotal.WithLabelValues(loc.Name).Set(components.Total)

	logger.Info("location processed",
		"location", loc.Name,
		"evaporation_mm", components.Total,
		"sunshine_method", method,
	)
	return result, outcomeSuccess, nil
}

// resolveSunshine determines sunshine hours for the day, trying each source
// in order of fidelity: the sunshine sensor, inversion of the global
// radiation sensor, cloud layers from the raster model, and the Hargreaves
// temperature-range estimate. With no source at all the day is calculated
// with zero sunshine and a warning, which is still a meaningful overcast
// lower bound.
func (p *Pipeline) resolveSunshine(ctx context.Context, logger *slog.Logger, loc domain.Location, raw domain.RawDay, agg domain.WeatherAggregate, dayOfYear int, start, end time.Time) (float64, domain.SunshineMethod) {
	coeffs := p.opts.Coefficients
	lat := loc.Geometry.Latitude

	if agg.SunshineHours != nil {
		return *agg.SunshineHours, domain.SunshineMeasured
	}

	if len(raw.GlobalRadiation) > 0 {
		rs := domain.MeanDailyRadiation(raw.GlobalRadiation)
		hours, err := coeffs.SunshineFromRadiation(rs, lat, dayOfYear)
		if err == nil {
			return hours, domain.SunshineRadiation
		}
		logger.Warn("sunshine from radiation failed", "location", loc.Name, "error", err)
	}

	if p.clouds != nil {
		cover, err := p.clouds.FetchCloudCover(ctx, loc, start, end)
		if err == nil {
			hours, err := coeffs.SunshineFromCloudLayers(lat, dayOfYear, cover)
			if err == nil {
				return hours, domain.SunshineCloudLayers
			}
			logger.Warn("sunshine from cloud layers failed", "location", loc.Name, "error", err)
		} else {
			logger.Warn("cloud cover unavailable", "location", loc.Name, "error", err)
		}
	}

	if agg.TMax > agg.TMin {
		hours, err := coeffs.SunshineFromTemperatureRange(lat, dayOfYear, agg.TMin, agg.TMax, loc.Coastal)
		if err == nil {
			return hours, domain.SunshineHargreaves
		}
		logger.Warn("sunshine from temperature range failed", "location", loc.Name, "error", err)
	}

	logger.Warn("no sunshine source available, assuming fully overcast",
		"location", loc.Name,
		"date", start.Format("2006-01-02"),
	)
	return 0, domain.SunshineNone
}
