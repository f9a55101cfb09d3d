package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Portal API access.
	PortalBaseURL  string
	PortalUsername string
	PortalEmail    string
	PortalPassword string
	PortalOrgID    string // empty means discover across all organizations
	PortalTimeout  time.Duration

	// Scheduling.
	RunInterval time.Duration
	Timezone    string // IANA name for the day boundary of target dates

	// Calculation parameters.
	Albedo          float64
	AngstromA       float64
	AngstromB       float64
	ExpectedSamples int // samples per sensor per day for completeness checks
	TemperatureUnit string
	WindSpeedUnit   string
	AirPressureUnit string

	// Raster fallback for cloud-layer sunshine estimation.
	RasterEnabled      bool
	RasterDatasourceID int
	RasterEuropeModel  string
	RasterGlobalModel  string
	RasterCacheSize    int

	// Optional Kafka result publishing (enabled when the topic is set).
	KafkaBrokers     []string
	KafkaResultTopic string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	portalTimeout, err := parseDuration("PORTAL_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, err
	}
	runInterval, err := parseDuration("RUN_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	albedo, err := parseFloat("ALBEDO", 0.23)
	if err != nil {
		return nil, err
	}
	angstromA, err := parseFloat("ANGSTROM_A", 0.25)
	if err != nil {
		return nil, err
	}
	angstromB, err := parseFloat("ANGSTROM_B", 0.50)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		PortalBaseURL:  os.Getenv("PORTAL_BASE_URL"),
		PortalUsername: os.Getenv("PORTAL_USERNAME"),
		PortalEmail:    os.Getenv("PORTAL_EMAIL"),
		PortalPassword: os.Getenv("PORTAL_PASSWORD"),
		PortalOrgID:    os.Getenv("PORTAL_ORG_ID"),
		PortalTimeout:  portalTimeout,

		RunInterval: runInterval,
		Timezone:    envOrDefault("TIMEZONE", "UTC"),

		Albedo:          albedo,
		AngstromA:       angstromA,
		AngstromB:       angstromB,
		ExpectedSamples: parseIntOrDefault("EXPECTED_SAMPLES_PER_DAY", 24),
		TemperatureUnit: os.Getenv("TEMPERATURE_UNIT"),
		WindSpeedUnit:   os.Getenv("WIND_SPEED_UNIT"),
		AirPressureUnit: os.Getenv("AIR_PRESSURE_UNIT"),

		RasterEnabled:      envOrDefault("RASTER_ENABLED", "true") == "true",
		RasterDatasourceID: parseIntOrDefault("RASTER_DATASOURCE_ID", 1),
		RasterEuropeModel:  envOrDefault("RASTER_EUROPE_MODEL", "icon_eu"),
		RasterGlobalModel:  envOrDefault("RASTER_GLOBAL_MODEL", "gfs"),
		RasterCacheSize:    parseIntOrDefault("RASTER_CACHE_SIZE", 1000),

		KafkaBrokers:     parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaResultTopic: os.Getenv("KAFKA_RESULT_TOPIC"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.PortalBaseURL == "" {
		return nil, errors.New("PORTAL_BASE_URL is required")
	}
	if cfg.PortalPassword == "" {
		return nil, errors.New("PORTAL_PASSWORD is required")
	}
	if cfg.PortalUsername == "" && cfg.PortalEmail == "" {
		return nil, errors.New("PORTAL_USERNAME or PORTAL_EMAIL is required")
	}
	if cfg.Albedo < 0 || cfg.Albedo > 1 {
		return nil, fmt.Errorf("ALBEDO %v outside [0, 1]", cfg.Albedo)
	}
	if cfg.AngstromB <= 0 {
		return nil, errors.New("ANGSTROM_B must be positive")
	}
	if cfg.RunInterval <= 0 {
		return nil, errors.New("RUN_INTERVAL must be positive")
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	if cfg.KafkaResultTopic != "" && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_RESULT_TOPIC is set but KAFKA_BROKERS is empty")
	}

	return cfg, nil
}

// PublisherEnabled reports whether results should also be published to Kafka.
func (c *Config) PublisherEnabled() bool {
	return c.KafkaResultTopic != ""
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseFloat(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func parseIntOrDefault(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
