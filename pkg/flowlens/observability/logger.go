// Package observability provides production-grade observability
// features for flowlens: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// LogSubmitStart logs the start of a job submission.
func LogSubmitStart(logger *slog.Logger, handleID, sessionID string) {
	if logger == nil {
		return
	}
	logger.Info("analysis submission starting",
		slog.String("handle_id", handleID),
		slog.String("session_id", sessionID),
	)
}

// LogCacheHit logs a cache hit that short-circuits a submission.
func LogCacheHit(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Info("cached analysis result reused",
		slog.String("cache_key", key),
	)
}

// LogCacheMiss logs a cache miss preceding a network submission.
func LogCacheMiss(logger *slog.Logger, key string) {
	if logger == nil {
		return
	}
	logger.Debug("no cached analysis result",
		slog.String("cache_key", key),
	)
}

// LogJobSubmitted logs a successful job submission.
func LogJobSubmitted(logger *slog.Logger, handleID, jobID string) {
	if logger == nil {
		return
	}
	logger.Info("analysis job submitted",
		slog.String("handle_id", handleID),
		slog.String("job_id", jobID),
	)
}

// LogSubmitError logs a failed job submission.
func LogSubmitError(logger *slog.Logger, handleID string, err error) {
	if logger == nil {
		return
	}
	logger.Error("analysis submission failed",
		slog.String("handle_id", handleID),
		slog.String("error", err.Error()),
	)
}

// LogPoll logs one status observation.
func LogPoll(logger *slog.Logger, jobID string, attempt int, status string) {
	if logger == nil {
		return
	}
	logger.Debug("job status polled",
		slog.String("job_id", jobID),
		slog.Int("attempt", attempt),
		slog.String("status", status),
	)
}

// LogJobComplete logs terminal job completion.
func LogJobComplete(logger *slog.Logger, jobID string, durationMs float64, polls int) {
	if logger == nil {
		return
	}
	logger.Info("analysis job completed",
		slog.String("job_id", jobID),
		slog.Float64("duration_ms", durationMs),
		slog.Int("polls", polls),
	)
}

// LogJobFailed logs terminal job failure.
func LogJobFailed(logger *slog.Logger, jobID string, err error, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Error("analysis job failed",
		slog.String("job_id", jobID),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogPollCancelled logs poller teardown before a terminal state.
func LogPollCancelled(logger *slog.Logger, jobID string) {
	if logger == nil {
		return
	}
	logger.Info("polling cancelled",
		slog.String("job_id", jobID),
	)
}

// LogCacheWrite logs a successful cache write.
func LogCacheWrite(logger *slog.Logger, key string, sizeBytes int) {
	if logger == nil {
		return
	}
	logger.Debug("analysis result cached",
		slog.String("cache_key", key),
		slog.Int("size_bytes", sizeBytes),
	)
}

// LogCacheError logs a cache failure (non-fatal).
func LogCacheError(logger *slog.Logger, key string, op string, err error) {
	if logger == nil {
		return
	}
	logger.Warn("cache operation failed",
		slog.String("cache_key", key),
		slog.String("operation", op),
		slog.String("error", err.Error()),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}
