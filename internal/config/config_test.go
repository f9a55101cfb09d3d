package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORTAL_BASE_URL", "https://portal.example.com/api")
	t.Setenv("PORTAL_USERNAME", "evap-service")
	t.Setenv("PORTAL_PASSWORD", "s3cret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.com/api", cfg.PortalBaseURL)
	assert.Equal(t, 30*time.Second, cfg.PortalTimeout)
	assert.Equal(t, 24*time.Hour, cfg.RunInterval)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, 0.23, cfg.Albedo)
	assert.Equal(t, 0.25, cfg.AngstromA)
	assert.Equal(t, 0.50, cfg.AngstromB)
	assert.Equal(t, 24, cfg.ExpectedSamples)
	assert.True(t, cfg.RasterEnabled)
	assert.Equal(t, "icon_eu", cfg.RasterEuropeModel)
	assert.Equal(t, "gfs", cfg.RasterGlobalModel)
	assert.Equal(t, 1000, cfg.RasterCacheSize)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Empty(t, cfg.KafkaResultTopic)
	assert.False(t, cfg.PublisherEnabled())
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORTAL_ORG_ID", "org-42")
	t.Setenv("PORTAL_TIMEOUT", "5s")
	t.Setenv("RUN_INTERVAL", "6h")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("ALBEDO", "0.08")
	t.Setenv("ANGSTROM_A", "0.23")
	t.Setenv("ANGSTROM_B", "0.48")
	t.Setenv("EXPECTED_SAMPLES_PER_DAY", "96")
	t.Setenv("TEMPERATURE_UNIT", "fahrenheit")
	t.Setenv("RASTER_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_RESULT_TOPIC", "lake-evaporation-results")
	t.Setenv("LOG_FORMAT", "text")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "org-42", cfg.PortalOrgID)
	assert.Equal(t, 5*time.Second, cfg.PortalTimeout)
	assert.Equal(t, 6*time.Hour, cfg.RunInterval)
	assert.Equal(t, "Europe/Berlin", cfg.Timezone)
	assert.Equal(t, 0.08, cfg.Albedo)
	assert.Equal(t, 0.23, cfg.AngstromA)
	assert.Equal(t, 0.48, cfg.AngstromB)
	assert.Equal(t, 96, cfg.ExpectedSamples)
	assert.Equal(t, "fahrenheit", cfg.TemperatureUnit)
	assert.False(t, cfg.RasterEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.PublisherEnabled())
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_EmailInsteadOfUsername(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://portal.example.com/api")
	t.Setenv("PORTAL_EMAIL", "evap@example.com")
	t.Setenv("PORTAL_PASSWORD", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "evap@example.com", cfg.PortalEmail)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T)
		wantMsg string
	}{
		{
			"missing base URL",
			func(t *testing.T) {
				t.Setenv("PORTAL_USERNAME", "u")
				t.Setenv("PORTAL_PASSWORD", "p")
			},
			"PORTAL_BASE_URL",
		},
		{
			"missing password",
			func(t *testing.T) {
				t.Setenv("PORTAL_BASE_URL", "https://x")
				t.Setenv("PORTAL_USERNAME", "u")
			},
			"PORTAL_PASSWORD",
		},
		{
			"missing identity",
			func(t *testing.T) {
				t.Setenv("PORTAL_BASE_URL", "https://x")
				t.Setenv("PORTAL_PASSWORD", "p")
			},
			"PORTAL_USERNAME or PORTAL_EMAIL",
		},
		{
			"albedo out of range",
			func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("ALBEDO", "1.5")
			},
			"ALBEDO",
		},
		{
			"bad interval",
			func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("RUN_INTERVAL", "nope")
			},
			"RUN_INTERVAL",
		},
		{
			"bad timezone",
			func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("TIMEZONE", "Atlantis/Lost")
			},
			"TIMEZONE",
		},
		{
			"topic without brokers",
			func(t *testing.T) {
				setRequiredEnv(t)
				t.Setenv("KAFKA_BROKERS", " ")
				t.Setenv("KAFKA_RESULT_TOPIC", "results")
			},
			"KAFKA_BROKERS",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.setup(t)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}
