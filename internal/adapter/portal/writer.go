package portal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// Writer writes computed evaporation values back to the target series. The
// value lands at midnight of the target day and is valid for that whole day.
type Writer struct {
	client *Client
	logger *slog.Logger
}

// NewWriter creates a Writer on top of an authenticated client.
func NewWriter(client *Client, logger *slog.Logger) *Writer {
	return &Writer{client: client, logger: logger}
}

// WriteResult writes one daily evaporation value to the result's target
// series with calculation metadata attached.
func (w *Writer) WriteResult(ctx context.Context, result domain.Result) error {
	midnight := time.Date(
		result.Date.Year(), result.Date.Month(), result.Date.Day(),
		0, 0, 0, 0, result.Date.Location(),
	)

	metadata := map[string]any{
		"algorithm":        "Shuttleworth",
		"value_unit":       "mm",
		"value_type":       "daily_evaporation",
		"calculation_date": result.ProcessedAt.Format(time.RFC3339),
		"sunshine_method":  string(result.SunshineMethod),
	}

	w.logger.Info("writing evaporation value",
		"location", result.Location.Name,
		"series", result.Location.SeriesID,
		"date", midnight.Format("2006-01-02"),
		"value_mm", fmt.Sprintf("%.3f", result.Components.Total),
	)

	return w.client.WriteValue(ctx, result.Location.SeriesID, midnight, result.Components.Total, metadata)
}
