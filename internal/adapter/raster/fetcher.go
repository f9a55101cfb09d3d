// Package raster estimates layered cloud cover for arbitrary coordinates
// from gridded weather model output served by the portal's raster endpoints.
// European lakes are read from the high-resolution icon_eu model with gfs as
// fallback; everywhere else gfs is used directly.
package raster

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/couchcryptid/lake-evaporation-service/internal/adapter/portal"
	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// Europe bounding box, approximate.
const (
	europeMinLat = 35.0
	europeMaxLat = 72.0
	europeMinLon = -25.0
	europeMaxLon = 45.0
)

// Cloud layer parameter names per model. icon_eu uses the DWD grib names,
// gfs the NOAA ones; unknown models are assumed to follow gfs naming.
var cloudParams = map[string][3]string{
	"icon_eu": {"CLCL", "CLCM", "CLCH"},
	"gfs":     {"LCDC", "MCDC", "HCDC"},
}

// API is the slice of the portal client the raster fetcher needs.
type API interface {
	RasterSeriesList(ctx context.Context, datasourceID int) ([]portal.RasterSeries, error)
	RasterPointData(ctx context.Context, datasourceID int, seriesID string, lat, lon float64, start, end time.Time) ([]domain.Sample, string, error)
}

// Fetcher resolves and reads cloud layer series for a location. Resolved
// series IDs are held in an LRU cache so the raster series listing is not
// re-fetched for every lake on every cycle.
type Fetcher struct {
	api          API
	datasourceID int
	europeModel  string
	globalModel  string
	logger       *slog.Logger
	cache        *seriesCache
}

// NewFetcher creates a raster cloud cover fetcher.
func NewFetcher(api API, datasourceID int, europeModel, globalModel string, cacheSize int, logger *slog.Logger) *Fetcher {
	return &Fetcher{
		api:          api,
		datasourceID: datasourceID,
		europeModel:  europeModel,
		globalModel:  globalModel,
		logger:       logger,
		cache:        newSeriesCache(cacheSize),
	}
}

// ModelsFor returns the primary and fallback weather model for a coordinate.
// Outside Europe primary and fallback are the same global model.
func (f *Fetcher) ModelsFor(lat, lon float64) (primary, fallback string) {
	if lat >= europeMinLat && lat <= europeMaxLat && lon >= europeMinLon && lon <= europeMaxLon {
		return f.europeModel, f.globalModel
	}
	return f.globalModel, f.globalModel
}

// FetchCloudCover reads daily mean low, medium and high cloud cover in octas
// for a location over [start, end). A layer with no data from the primary
// model is retried against the fallback model before the whole fetch fails.
func (f *Fetcher) FetchCloudCover(ctx context.Context, loc domain.Location, start, end time.Time) (domain.CloudCover, error) {
	lat, lon := loc.Geometry.Latitude, loc.Longitude
	primary, fallback := f.ModelsFor(lat, lon)

	// The series listing is shared by all three layers of this call and
	// only fetched when a layer misses the ID cache.
	var listing []portal.RasterSeries
	listingFor := func() ([]portal.RasterSeries, error) {
		if listing != nil {
			return listing, nil
		}
		series, err := f.api.RasterSeriesList(ctx, f.datasourceID)
		if err != nil {
			return nil, err
		}
		listing = series
		return listing, nil
	}

	var layers [3]float64
	for i := 0; i < 3; i++ {
		octas, err := f.fetchLayer(ctx, primary, i, lat, lon, start, end, listingFor)
		if err != nil && fallback != primary {
			f.logger.Info("cloud layer unavailable from primary model, trying fallback",
				"location", loc.Name,
				"model", primary,
				"fallback", fallback,
				"error", err,
			)
			octas, err = f.fetchLayer(ctx, fallback, i, lat, lon, start, end, listingFor)
		}
		if err != nil {
			return domain.CloudCover{}, fmt.Errorf("cloud cover for %s: %w", loc.Name, err)
		}
		layers[i] = octas
	}

	return domain.CloudCover{Low: layers[0], Medium: layers[1], High: layers[2]}, nil
}

func (f *Fetcher) fetchLayer(ctx context.Context, model string, layer int, lat, lon float64, start, end time.Time, listingFor func() ([]portal.RasterSeries, error)) (float64, error) {
	params, ok := cloudParams[model]
	if !ok {
		params = cloudParams["gfs"]
	}
	param := params[layer]

	seriesID, err := f.findSeries(model, param, listingFor)
	if err != nil {
		return 0, err
	}

	samples, unit, err := f.api.RasterPointData(ctx, f.datasourceID, seriesID, lat, lon, start, end)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, fmt.Errorf("no %s data from model %s", param, model)
	}

	var sum float64
	for _, s := range samples {
		sum += s.Value
	}
	return toOctas(sum/float64(len(samples)), unit), nil
}

// findSeries resolves a model parameter to a series ID, using the cache
// first and the full listing on a miss. A series belongs to a model when its
// path contains the model segment, e.g. "/icon_eu/CLCL".
func (f *Fetcher) findSeries(model, param string, listingFor func() ([]portal.RasterSeries, error)) (string, error) {
	key := fmt.Sprintf("%d|%s|%s", f.datasourceID, model, param)
	if id, ok := f.cache.get(key); ok {
		return id, nil
	}

	listing, err := listingFor()
	if err != nil {
		return "", err
	}

	segment := "/" + strings.ToLower(model) + "/"
	for _, series := range listing {
		if series.Name != param {
			continue
		}
		if !strings.Contains(strings.ToLower(series.Path), segment) {
			continue
		}
		f.cache.put(key, series.TimeseriesID)
		return series.TimeseriesID, nil
	}

	return "", fmt.Errorf("no raster series %s for model %s", param, model)
}

// toOctas converts a cloud cover value to octas. Models deliver either
// percent or octas directly.
func toOctas(value float64, unit string) float64 {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "%", "percent":
		return value * 8 / 100
	default:
		return value
	}
}
