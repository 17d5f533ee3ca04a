package flowlens

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/flowlens/flowlens/pkg/flowlens/fingerprint"
	"github.com/flowlens/flowlens/pkg/flowlens/observability"
)

// Service is the backend surface the orchestration core depends on.
// The api package provides the HTTP implementation; tests substitute
// mocks.
type Service interface {
	// SubmitAnalysis creates an analysis job and returns its
	// identifier with the initial status.
	SubmitAnalysis(ctx context.Context, req AnalysisRequest) (SubmitAck, error)

	// AnalysisStatus observes the current state of a job.
	AnalysisStatus(ctx context.Context, jobID string) (JobStatusResponse, error)
}

// DiagramService converts process descriptions into diagrams.
type DiagramService interface {
	GenerateDiagram(ctx context.Context, req DiagramRequest) (DiagramResponse, error)
}

// DocumentService exposes the external document store. The analysis
// core itself never calls it; it is the contract the document picker
// and citation deep links rely on.
type DocumentService interface {
	// Documents lists the available knowledge-base documents.
	Documents(ctx context.Context) ([]Document, error)

	// Document fetches one document including its text content.
	Document(ctx context.Context, documentID string) (Document, error)
}

// Analyzer coordinates analysis jobs: fingerprint derivation, cache
// lookup, submission, polling to a terminal state, and cache writes on
// completion. Construct once per application instance and share.
//
// The scheduling model is cooperative: Submit and Poll run in the
// caller's goroutine, network calls are the only suspension points,
// and within one Poll invocation status queries are strictly
// sequential: a new query is never issued before the previous
// response was processed and the interval elapsed.
type Analyzer struct {
	svc      Service
	diagrams DiagramService
	cache    *ResultCache
	interval time.Duration
	maxPolls int
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	tracing  bool
}

// NewAnalyzer creates an Analyzer around a backend service and a
// result cache. The cache may be nil, which disables caching entirely
// (every submission goes to the network).
func NewAnalyzer(svc Service, cache *ResultCache, opts ...Option) *Analyzer {
	a := &Analyzer{
		svc:      svc,
		cache:    cache,
		interval: defaultPollInterval,
		metrics:  observability.NoopMetrics{},
		spans:    observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Submit starts an analysis for the request and returns its handle.
//
// The cache is consulted first: on a hit the returned handle is
// already COMPLETED and wraps the cached result, indistinguishable
// from a freshly computed one except for latency. On a miss one
// network submission is issued; a transport failure or non-2xx
// response yields a FAILED handle carrying a *SubmissionError. Submit
// never retries; the caller decides by submitting again.
//
// The cache is not written here. Writes happen only when Poll observes
// completion.
func (a *Analyzer) Submit(ctx context.Context, req AnalysisRequest) *JobHandle {
	h := &JobHandle{
		id:          uuid.NewString(),
		fingerprint: fingerprint.Analysis(req.SessionID, req),
		request:     req,
		status:      StatusSubmitted,
		message:     msgSubmitting,
	}

	observability.LogSubmitStart(a.logger, h.id, req.SessionID)

	if a.cache != nil {
		if result, ok := a.cache.Result(h.fingerprint); ok {
			observability.LogCacheHit(a.logger, h.fingerprint)
			a.metrics.RecordSubmission(ctx, true)
			h.complete(result, true)
			return h
		}
		observability.LogCacheMiss(a.logger, h.fingerprint)
	}
	a.metrics.RecordSubmission(ctx, false)

	ack, err := a.svc.SubmitAnalysis(ctx, req)
	if err != nil {
		serr := &SubmissionError{SessionID: req.SessionID, Err: err}
		observability.LogSubmitError(a.logger, h.id, serr)
		h.fail(serr)
		return h
	}

	observability.LogJobSubmitted(a.logger, h.id, ack.JobID)
	h.setProcessing(ack.JobID)
	return h
}

// Poll drives a non-terminal handle to COMPLETED or FAILED.
//
// The first status query fires immediately; subsequent queries fire
// once per poll interval. On COMPLETED the result is written to the
// cache under the handle's fingerprint and returned. On FAILED (or a
// failed status query, which is treated identically) the terminal
// error is returned and also available via the handle.
//
// Cancelling ctx tears the loop down deterministically: no status
// query is ever issued after ctx is done, and Poll returns a
// *CancellationError. The handle stays non-terminal; the backend job
// may still be running; only client-side observation stops.
//
// At most one Poll loop may own a handle at a time; a second
// concurrent call returns ErrAlreadyPolling.
func (a *Analyzer) Poll(ctx context.Context, h *JobHandle) (AnalysisResult, error) {
	if h == nil {
		return AnalysisResult{}, ErrNilHandle
	}
	if h.Terminal() {
		if err := h.Err(); err != nil {
			return AnalysisResult{}, err
		}
		result, _ := h.Result()
		return result, nil
	}
	if !h.startPolling() {
		return AnalysisResult{}, ErrAlreadyPolling
	}
	defer h.stopPolling()

	pollCtx := ctx
	if a.tracing {
		jobCtx, span := a.spans.StartJobSpan(ctx, h.request.SessionID, h.id)
		pollCtx = jobCtx
		defer func() {
			a.spans.EndSpanWithError(span, h.Err())
		}()
	}

	done := observability.TimedOperation()

	for attempt := 1; ; attempt++ {
		// Cancellation is checked before every query; nothing is
		// issued once the context is done.
		if err := ctx.Err(); err != nil {
			return AnalysisResult{}, a.cancelled(h, err)
		}

		resp, err := a.observe(pollCtx, h, attempt)
		if err != nil {
			// Context cancellation surfacing through the transport is
			// teardown, not a backend failure.
			if ctx.Err() != nil {
				return AnalysisResult{}, a.cancelled(h, ctx.Err())
			}
			perr := &PollingError{JobID: h.jobID, Err: err}
			h.fail(perr)
			observability.LogJobFailed(a.logger, h.jobID, perr, done())
			a.metrics.RecordJobRun(ctx, false, time.Duration(done())*time.Millisecond)
			return AnalysisResult{}, perr
		}

		switch resp.Status {
		case StatusCompleted:
			if resp.Result == nil {
				ferr := &JobFailedError{JobID: h.jobID, Message: ErrMissingResult.Error()}
				h.fail(ferr)
				observability.LogJobFailed(a.logger, h.jobID, ferr, done())
				a.metrics.RecordJobRun(ctx, false, time.Duration(done())*time.Millisecond)
				return AnalysisResult{}, ferr
			}
			a.store(ctx, h.fingerprint, *resp.Result)
			h.complete(*resp.Result, false)
			observability.LogJobComplete(a.logger, h.jobID, done(), attempt)
			a.metrics.RecordJobRun(ctx, true, time.Duration(done())*time.Millisecond)
			return *resp.Result, nil

		case StatusFailed:
			ferr := &JobFailedError{JobID: h.jobID, Message: resp.Error}
			h.fail(ferr)
			observability.LogJobFailed(a.logger, h.jobID, ferr, done())
			a.metrics.RecordJobRun(ctx, false, time.Duration(done())*time.Millisecond)
			return AnalysisResult{}, ferr

		default:
			// Still in flight: refresh the status line only.
			h.setMessage(msgAnalyzing)
		}

		if a.maxPolls > 0 && attempt >= a.maxPolls {
			perr := &PollingError{JobID: h.jobID, Err: ErrPollLimitExceeded}
			h.fail(perr)
			observability.LogJobFailed(a.logger, h.jobID, perr, done())
			a.metrics.RecordJobRun(ctx, false, time.Duration(done())*time.Millisecond)
			return AnalysisResult{}, perr
		}

		timer := time.NewTimer(a.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return AnalysisResult{}, a.cancelled(h, ctx.Err())
		case <-timer.C:
		}
	}
}

// Run is Submit followed by Poll. A cache hit or submission failure
// returns without ever entering the polling loop.
func (a *Analyzer) Run(ctx context.Context, req AnalysisRequest) (AnalysisResult, *JobHandle, error) {
	h := a.Submit(ctx, req)
	if h.Terminal() {
		if err := h.Err(); err != nil {
			return AnalysisResult{}, h, err
		}
		result, _ := h.Result()
		return result, h, nil
	}
	result, err := a.Poll(ctx, h)
	return result, h, err
}

// GenerateDiagram converts a description into a diagram, using the
// same fingerprint+cache contract as analysis: the diagram cache is
// checked first, and only successful responses are stored.
func (a *Analyzer) GenerateDiagram(ctx context.Context, sessionID string, req DiagramRequest) (DiagramResponse, error) {
	if a.diagrams == nil {
		return DiagramResponse{}, ErrNoDiagramService
	}

	key := fingerprint.Diagram(sessionID, req)
	if a.cache != nil {
		if resp, ok := a.cache.Diagram(key); ok {
			observability.LogCacheHit(a.logger, key)
			return resp, nil
		}
		observability.LogCacheMiss(a.logger, key)
	}

	resp, err := a.diagrams.GenerateDiagram(ctx, req)
	if err != nil {
		return DiagramResponse{}, err
	}
	if resp.Success && a.cache != nil {
		if err := a.cache.PutDiagram(key, resp); err != nil {
			observability.LogCacheError(a.logger, key, "put", err)
		}
	}
	return resp, nil
}

// observe issues exactly one status query with per-poll observability.
func (a *Analyzer) observe(ctx context.Context, h *JobHandle, attempt int) (JobStatusResponse, error) {
	queryCtx := ctx
	var span trace.Span
	if a.tracing {
		queryCtx, span = a.spans.StartPollSpan(ctx, h.jobID, attempt)
	}

	resp, err := a.svc.AnalysisStatus(queryCtx, h.jobID)

	if a.tracing {
		a.spans.EndSpanWithError(span, err)
	}
	if err != nil {
		return JobStatusResponse{}, err
	}

	observability.LogPoll(a.logger, h.jobID, attempt, string(resp.Status))
	a.metrics.RecordPoll(ctx, string(resp.Status))
	return resp, nil
}

func (a *Analyzer) cancelled(h *JobHandle, cause error) error {
	observability.LogPollCancelled(a.logger, h.jobID)
	h.setMessage("Analysis cancelled")
	return &CancellationError{JobID: h.jobID, Cause: cause}
}

// store writes a completed result to the cache. Failures are logged
// and swallowed: a result that could not be cached is still a result.
func (a *Analyzer) store(ctx context.Context, fp string, result AnalysisResult) {
	if a.cache == nil {
		return
	}
	size, err := a.cache.PutResult(fp, result)
	if err != nil {
		observability.LogCacheError(a.logger, fp, "put", err)
		return
	}
	observability.LogCacheWrite(a.logger, fp, size)
	a.metrics.RecordCacheWrite(ctx, int64(size))
}
