package flowlens

import (
	"log/slog"
	"time"

	"github.com/flowlens/flowlens/pkg/flowlens/observability"
)

// defaultPollInterval mirrors the backend's expected cadence for
// long-running analysis jobs.
const defaultPollInterval = 30 * time.Second

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithPollInterval sets the fixed delay between status observations.
// Default: 30 seconds. Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.interval = d
		}
	}
}

// WithMaxPolls bounds the number of status observations per job as a
// defensive limit. Default: 0, meaning poll indefinitely until the job
// turns terminal or the context is cancelled.
func WithMaxPolls(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.maxPolls = n
		}
	}
}

// WithLogger enables structured logging through the given logger.
// Default: nil (silent).
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
// Default: observability.NoopMetrics.
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(a *Analyzer) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithTracing enables OTel span creation for jobs and individual
// polls using the given span manager.
func WithTracing(spans observability.SpanManager) Option {
	return func(a *Analyzer) {
		if spans != nil {
			a.spans = spans
			a.tracing = true
		}
	}
}

// WithDiagramService enables Analyzer.GenerateDiagram.
func WithDiagramService(ds DiagramService) Option {
	return func(a *Analyzer) {
		a.diagrams = ds
	}
}
