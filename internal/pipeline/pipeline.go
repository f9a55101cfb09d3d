package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
	"github.com/couchcryptid/lake-evaporation-service/internal/observability"
)

// Discoverer finds the lake evaporation targets to process.
type Discoverer interface {
	DiscoverLocations(ctx context.Context, orgID string) ([]domain.Location, error)
}

// Fetcher pulls one day of raw sensor samples for a location.
type Fetcher interface {
	FetchDay(ctx context.Context, loc domain.Location, start, end time.Time) (domain.RawDay, error)
}

// CloudFetcher reads daily layered cloud cover from a gridded weather model.
type CloudFetcher interface {
	FetchCloudCover(ctx context.Context, loc domain.Location, start, end time.Time) (domain.CloudCover, error)
}

// ResultWriter persists a computed result to the portal.
type ResultWriter interface {
	WriteResult(ctx context.Context, result domain.Result) error
}

// Publisher pushes the results of a cycle to downstream consumers.
type Publisher interface {
	PublishResults(ctx context.Context, results []domain.Result) error
}

// Options carries the calculation and scheduling settings of the pipeline.
type Options struct {
	OrgID           string // empty means all organizations
	Interval        time.Duration
	Timezone        *time.Location // day boundary for target dates
	ExpectedSamples int
	DefaultAlbedo   float64
	Units           domain.SourceUnits
	Coefficients    domain.Coefficients
}

// CycleSummary describes the most recent completed cycle.
type CycleSummary struct {
	RunID     string
	StartedAt time.Time
	Date      string
	Locations int
	Succeeded int
	Skipped   int
	Failed    int
	Duration  time.Duration
}

const (
	outcomeSuccess = "success"
	outcomeSkipped = "skipped"
	outcomeError   = "error"
)

// Pipeline runs the discover-fetch-calculate-write cycle on an interval.
// Locations fail independently: one lake's bad day never blocks the others.
type Pipeline struct {
	discoverer Discoverer
	fetcher    Fetcher
	clouds     CloudFetcher // nil when the raster fallback is disabled
	writer     ResultWriter
	publisher  Publisher // nil when Kafka publishing is disabled

	clock   clockwork.Clock
	logger  *slog.Logger
	metrics *observability.Metrics
	opts    Options

	ready atomic.Bool

	mu        sync.Mutex
	lastCycle *CycleSummary
}

// New creates a Pipeline. clouds and publisher may be nil to disable the
// raster fallback and Kafka publishing.
func New(d Discoverer, f Fetcher, clouds CloudFetcher, w ResultWriter, pub Publisher, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	return &Pipeline{
		discoverer: d,
		fetcher:    f,
		clouds:     clouds,
		writer:     w,
		publisher:  pub,
		clock:      clock,
		logger:     logger,
		metrics:    metrics,
		opts:       opts,
	}
}

// CheckReadiness returns nil once the pipeline has completed at least one
// cycle, or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return fmt.Errorf("no cycle completed yet")
	}
	return nil
}

// LastCycle returns a summary of the most recent completed cycle.
func (p *Pipeline) LastCycle() (CycleSummary, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.lastCycle == nil {
		return CycleSummary{}, false
	}
	return *p.lastCycle, true
}

// Run executes cycles until the context is cancelled. A failed cycle is
// retried with exponential backoff instead of waiting out the full interval,
// so a portal outage at cycle time does not cost a whole day of values.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "interval", p.opts.Interval)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	initialBackoff := time.Minute
	maxBackoff := 30 * time.Minute
	backoff := initialBackoff

	for {
		err := p.runCycle(ctx)
		if ctx.Err() != nil {
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		}

		wait := p.opts.Interval
		if err != nil {
			p.logger.Error("cycle failed", "error", err, "retry_in", backoff)
			wait = backoff
			backoff = nextBackoff(backoff, maxBackoff)
		} else {
			backoff = initialBackoff
		}

		select {
		case <-ctx.Done():
			p.logger.Info("pipeline stopping", "reason", ctx.Err())
			return nil
		case <-p.clock.After(wait):
		}
	}
}

// runCycle processes the previous day for every discovered location.
func (p *Pipeline) runCycle(ctx context.Context) error {
	runID := uuid.NewString()
	started := p.clock.Now()
	logger := p.logger.With("run_id", runID)

	start, end := p.targetDay()
	logger.Info("cycle started", "date", start.Format("2006-01-02"))

	locations, err := p.discoverer.DiscoverLocations(ctx, p.opts.OrgID)
	if err != nil {
		return fmt.Errorf("discover locations: %w", err)
	}
	p.metrics.LocationsPerCycle.Observe(float64(len(locations)))

	results := make([]domain.Result, 0, len(locations))
	var succeeded, skipped, failed int

	for _, loc := range locations {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		result, outcome, err := p.processLocation(ctx, logger, loc, start, end)
		p.metrics.LocationsProcessed.WithLabelValues(outcome).Inc()

		switch outcome {
		case outcomeSuccess:
			succeeded++
			results = append(results, result)
		case outcomeSkipped:
			skipped++
		default:
			failed++
			logger.Error("location failed", "location", loc.Name, "error", err)
		}
	}

	if p.publisher != nil && len(results) > 0 {
		if err := p.publisher.PublishResults(ctx, results); err != nil {
			p.metrics.PublishErrors.Inc()
			logger.Error("publish results failed", "error", err, "results", len(results))
		} else {
			p.metrics.ResultsPublished.Add(float64(len(results)))
		}
	}

	duration := p.clock.Since(started)
	p.metrics.CycleDuration.Observe(duration.Seconds())
	p.setLastCycle(CycleSummary{
		RunID:     runID,
		StartedAt: started,
		Date:      start.Format("2006-01-02"),
		Locations: len(locations),
		Succeeded: succeeded,
		Skipped:   skipped,
		Failed:    failed,
		Duration:  duration,
	})
	p.ready.Store(true)

	logger.Info("cycle finished",
		"locations", len(locations),
		"succeeded", succeeded,
		"skipped", skipped,
		"failed", failed,
		"duration", duration,
	)
	return nil
}

// targetDay returns the previous day [midnight, midnight) in the configured
// timezone.
func (p *Pipeline) targetDay() (start, end time.Time) {
	now := p.clock.Now().In(p.opts.Timezone)
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, p.opts.Timezone)
	return end.AddDate(0, 0, -1), end
}

func (p *Pipeline) setLastCycle(c CycleSummary) {
	p.mu.Lock()
	p.lastCycle = &c
	p.mu.Unlock()
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
