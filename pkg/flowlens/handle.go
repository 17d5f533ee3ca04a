package flowlens

import "sync"

// Status line messages surfaced to the UI. The UI renders the current
// message directly without further interpretation.
const (
	msgSubmitting = "Submitting analysis request…"
	msgAnalyzing  = "AI is analyzing the process…"
	msgComplete   = "Analysis complete"
	msgFailedFmt  = "Analysis failed: "
)

// JobHandle tracks one analysis job from submission to its terminal
// state. Handles are created by Analyzer.Submit and driven by
// Analyzer.Poll; a handle born from a cache hit or a submission
// failure is already terminal.
//
// All accessors are safe for concurrent use.
type JobHandle struct {
	id          string
	jobID       string
	fingerprint string
	request     AnalysisRequest

	mu      sync.Mutex
	status  JobStatus
	message string
	result  *AnalysisResult
	err     error
	cached  bool
	polling bool
}

// ID is the client-side correlation identifier for logging and
// tracing. It is unrelated to the backend job ID.
func (h *JobHandle) ID() string { return h.id }

// JobID is the backend-assigned job identifier.
// Empty for cache hits and failed submissions.
func (h *JobHandle) JobID() string { return h.jobID }

// Fingerprint is the cache key derived from the originating request.
func (h *JobHandle) Fingerprint() string { return h.fingerprint }

// Request returns the originating analysis request.
func (h *JobHandle) Request() AnalysisRequest { return h.request }

// Cached reports whether the handle was satisfied from the cache
// without a network submission.
func (h *JobHandle) Cached() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cached
}

// Status returns the current job status.
func (h *JobHandle) Status() JobStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}

// Message returns the latest human-readable status line.
func (h *JobHandle) Message() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.message
}

// Terminal reports whether the job reached COMPLETED or FAILED.
func (h *JobHandle) Terminal() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status.Terminal()
}

// Result returns the analysis result and true once the job completed.
func (h *JobHandle) Result() (AnalysisResult, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.result == nil {
		return AnalysisResult{}, false
	}
	return *h.result, true
}

// Err returns the terminal error for a FAILED handle, nil otherwise.
func (h *JobHandle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *JobHandle) setProcessing(jobID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.jobID = jobID
	h.status = StatusProcessing
	h.message = msgAnalyzing
}

func (h *JobHandle) setMessage(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.message = msg
}

func (h *JobHandle) complete(result AnalysisResult, cached bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = StatusCompleted
	h.result = &result
	h.cached = cached
	// Same message for cached and fresh completions; a hit is
	// indistinguishable from the UI side except for latency. Cached()
	// stays available for observability.
	h.message = msgComplete
}

func (h *JobHandle) fail(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status = StatusFailed
	h.err = err
	h.message = msgFailedFmt + err.Error()
}

// startPolling marks the handle as being observed by a polling loop.
// Returns false if another loop already owns it.
func (h *JobHandle) startPolling() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.polling {
		return false
	}
	h.polling = true
	return true
}

func (h *JobHandle) stopPolling() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.polling = false
}
