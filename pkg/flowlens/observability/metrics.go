package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records flowlens metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordSubmission records an analysis submission, noting whether
	// the cache short-circuited it.
	RecordSubmission(ctx context.Context, cacheHit bool)

	// RecordPoll records one status observation with the observed status.
	RecordPoll(ctx context.Context, status string)

	// RecordJobRun records a terminal job outcome with total duration
	// from submission to the terminal observation.
	RecordJobRun(ctx context.Context, success bool, duration time.Duration)

	// RecordCacheWrite records a result-cache write.
	RecordCacheWrite(ctx context.Context, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	submissions    metric.Int64Counter
	polls          metric.Int64Counter
	jobRuns        metric.Int64Counter
	jobLatency     metric.Float64Histogram
	cacheEntrySize metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("flowlens")

	submissions, err := meter.Int64Counter("flowlens.analysis.submissions",
		metric.WithDescription("Number of analysis submissions"),
	)
	if err != nil {
		return nil, err
	}

	polls, err := meter.Int64Counter("flowlens.job.polls",
		metric.WithDescription("Number of job status observations"),
	)
	if err != nil {
		return nil, err
	}

	jobRuns, err := meter.Int64Counter("flowlens.job.runs",
		metric.WithDescription("Number of terminal job outcomes"),
	)
	if err != nil {
		return nil, err
	}

	jobLatency, err := meter.Float64Histogram("flowlens.job.latency_ms",
		metric.WithDescription("Job duration from submission to terminal state in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheEntrySize, err := meter.Int64Histogram("flowlens.cache.entry_size_bytes",
		metric.WithDescription("Size of written cache entries in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		submissions:    submissions,
		polls:          polls,
		jobRuns:        jobRuns,
		jobLatency:     jobLatency,
		cacheEntrySize: cacheEntrySize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder backed by the global
// OTel meter provider. Falls back to NoopMetrics if initialization
// fails.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordSubmission records an analysis submission.
func (m *otelMetrics) RecordSubmission(ctx context.Context, cacheHit bool) {
	m.submissions.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("cache_hit", cacheHit),
	))
}

// RecordPoll records a status observation.
func (m *otelMetrics) RecordPoll(ctx context.Context, status string) {
	m.polls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("status", status),
	))
}

// RecordJobRun records a terminal job outcome.
func (m *otelMetrics) RecordJobRun(ctx context.Context, success bool, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.Bool("success", success),
	}
	m.jobRuns.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.jobLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}

// RecordCacheWrite records a result-cache write.
func (m *otelMetrics) RecordCacheWrite(ctx context.Context, sizeBytes int64) {
	m.cacheEntrySize.Record(ctx, sizeBytes)
}
