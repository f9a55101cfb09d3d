package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

func TestSerializeToMessage(t *testing.T) {
	processed := time.Date(2026, 6, 20, 3, 0, 0, 0, time.UTC)
	result := domain.Result{
		Date: time.Date(2026, 6, 19, 0, 0, 0, 0, time.UTC),
		Location: domain.Location{
			SeriesID: "ts-evap-1",
			Name:     "Chiemsee",
			Geometry: domain.Geometry{Latitude: 47.87, Altitude: 518},
		},
		Weather:        domain.WeatherAggregate{TMin: 17, TMax: 33},
		Components:     domain.Components{Total: 4.321, Aerodynamic: 1.9, Radiation: 2.421},
		SunshineMethod: domain.SunshineCloudLayers,
		ProcessedAt:    processed,
	}

	msg, err := serializeToMessage(result)
	require.NoError(t, err)

	assert.Equal(t, []byte("ts-evap-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"sunshine_method":"cloud_layers"`)
	assert.Contains(t, string(msg.Value), `"t_min":17`)

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "location", msg.Headers[0].Key)
	assert.Equal(t, []byte("Chiemsee"), msg.Headers[0].Value)
	assert.Equal(t, "date", msg.Headers[1].Key)
	assert.Equal(t, []byte("2026-06-19"), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(processed.Format(time.RFC3339)), msg.Headers[2].Value)
}
