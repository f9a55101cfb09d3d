package portal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// Fetcher pulls one day of raw sensor samples for a location from the
// portal, resolving the location's series references on the way.
type Fetcher struct {
	client    *Client
	discovery *Discovery
	logger    *slog.Logger
}

// NewFetcher creates a Fetcher sharing the discovery's reference lookup maps.
func NewFetcher(client *Client, discovery *Discovery, logger *slog.Logger) *Fetcher {
	return &Fetcher{client: client, discovery: discovery, logger: logger}
}

// FetchDay fetches all sensor samples of a location for [start, end). The
// four required sensors fail the fetch when unavailable; the optional
// sunshine and radiation sensors degrade to nil slices with a warning, so
// the sunshine estimators further down can take over.
func (f *Fetcher) FetchDay(ctx context.Context, loc domain.Location, start, end time.Time) (domain.RawDay, error) {
	var raw domain.RawDay

	required := []struct {
		name string
		ref  string
		dst  *[]domain.Sample
	}{
		{"temperature", loc.Series.Temperature, &raw.Temperature},
		{"humidity", loc.Series.Humidity, &raw.Humidity},
		{"wind_speed", loc.Series.WindSpeed, &raw.WindSpeed},
		{"air_pressure", loc.Series.AirPressure, &raw.AirPressure},
	}
	for _, sensor := range required {
		samples, err := f.fetch(ctx, sensor.ref, start, end)
		if err != nil {
			return domain.RawDay{}, fmt.Errorf("fetch %s for %s: %w", sensor.name, loc.Name, err)
		}
		*sensor.dst = samples
	}

	optional := []struct {
		name string
		ref  string
		dst  *[]domain.Sample
	}{
		{"sunshine_hours", loc.Series.SunshineHours, &raw.SunshineHours},
		{"global_radiation", loc.Series.GlobalRadiation, &raw.GlobalRadiation},
	}
	for _, sensor := range optional {
		if sensor.ref == "" {
			continue
		}
		samples, err := f.fetch(ctx, sensor.ref, start, end)
		if err != nil {
			f.logger.Warn("optional sensor unavailable",
				"sensor", sensor.name,
				"location", loc.Name,
				"error", err,
			)
			continue
		}
		*sensor.dst = samples
	}

	return raw, nil
}

func (f *Fetcher) fetch(ctx context.Context, ref string, start, end time.Time) ([]domain.Sample, error) {
	id, err := f.discovery.Resolve(ref)
	if err != nil {
		return nil, err
	}
	return f.client.SeriesData(ctx, id, start, end)
}
