package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// evaporation pipeline.
type Metrics struct {
	LocationsProcessed *prometheus.CounterVec // labels: outcome={success,skipped,error}
	CalculationErrors  prometheus.Counter
	WriteErrors        prometheus.Counter
	PipelineRunning    prometheus.Gauge

	CycleDuration     prometheus.Histogram
	LocationsPerCycle prometheus.Histogram

	EvaporationTotal *prometheus.GaugeVec   // labels: location
	SunshineMethod   *prometheus.CounterVec // labels: method

	PortalRequests        *prometheus.CounterVec   // labels: operation, outcome={success,error}
	PortalRequestDuration *prometheus.HistogramVec // labels: operation

	ResultsPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.LocationsProcessed,
		m.CalculationErrors,
		m.WriteErrors,
		m.PipelineRunning,
		m.CycleDuration,
		m.LocationsPerCycle,
		m.EvaporationTotal,
		m.SunshineMethod,
		m.PortalRequests,
		m.PortalRequestDuration,
		m.ResultsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		LocationsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "locations_processed_total",
			Help:      "Locations processed per outcome.",
		}, []string{"outcome"}),
		CalculationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "calculation_errors_total",
			Help:      "Evaporation calculations that failed (validation or solar geometry).",
		}),
		WriteErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "write_errors_total",
			Help:      "Failed portal write-backs.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lake_evap",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		CycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lake_evap",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of a complete discover-fetch-calculate-write cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
		LocationsPerCycle: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "lake_evap",
			Name:      "locations_per_cycle",
			Help:      "Number of discovered locations per cycle.",
			Buckets:   []float64{1, 2, 5, 10, 20, 50, 100},
		}),
		EvaporationTotal: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "lake_evap",
			Name:      "evaporation_mm_per_day",
			Help:      "Most recent daily evaporation per location.",
		}, []string{"location"}),
		SunshineMethod: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "sunshine_method_total",
			Help:      "Sunshine determination method used per calculation.",
		}, []string{"method"}),
		PortalRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "portal_requests_total",
			Help:      "Portal API requests by operation and outcome.",
		}, []string{"operation", "outcome"}),
		PortalRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lake_evap",
			Name:      "portal_request_duration_seconds",
			Help:      "Portal API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"operation"}),
		ResultsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "results_published_total",
			Help:      "Results published to the Kafka result topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lake_evap",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka publishes.",
		}),
	}
}
