package flowlens

import (
	"errors"
	"fmt"
)

// Sentinel errors for orchestration.
var (
	// ErrNilHandle indicates Poll() was called with a nil handle.
	ErrNilHandle = errors.New("job handle cannot be nil")

	// ErrAlreadyPolling indicates a second polling loop was started for
	// the same handle. At most one loop may observe a handle.
	ErrAlreadyPolling = errors.New("handle already has an active polling loop")

	// ErrPollLimitExceeded indicates the defensive maximum poll count
	// was reached before the job turned terminal.
	ErrPollLimitExceeded = errors.New("poll limit exceeded")

	// ErrNoPendingRequest indicates no hand-off buffer exists for the
	// session. The diagram surface has not staged a request yet.
	ErrNoPendingRequest = errors.New("no pending analysis request for session")

	// ErrNoDiagramService indicates GenerateDiagram was called on an
	// Analyzer constructed without a diagram service.
	ErrNoDiagramService = errors.New("no diagram service configured")

	// ErrMissingResult indicates the backend reported COMPLETED without
	// attaching a result payload.
	ErrMissingResult = errors.New("job completed without a result")
)

// SubmissionError wraps a failure to create an analysis job.
// It is terminal for the handle; the caller decides whether to retry
// by submitting again.
type SubmissionError struct {
	// SessionID identifies the session the submission belonged to.
	SessionID string
	// Err is the underlying transport or HTTP error.
	Err error
}

// Error implements the error interface.
func (e *SubmissionError) Error() string {
	return fmt.Sprintf("submit analysis for session %s: %v", e.SessionID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// PollingError wraps a failure to observe a job's status. It is
// surfaced identically to a backend-reported job failure: the loop
// stops and the handle turns FAILED.
type PollingError struct {
	// JobID is the job whose status query failed.
	JobID string
	// Err is the underlying transport or HTTP error.
	Err error
}

// Error implements the error interface.
func (e *PollingError) Error() string {
	return fmt.Sprintf("poll job %s: %v", e.JobID, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *PollingError) Unwrap() error {
	return e.Err
}

// JobFailedError reports that the backend terminated the job with
// status FAILED. Message is the backend's error text, passed through
// verbatim.
type JobFailedError struct {
	// JobID is the failed job.
	JobID string
	// Message is the backend-provided error text.
	Message string
}

// Error implements the error interface.
func (e *JobFailedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("job %s failed", e.JobID)
	}
	return e.Message
}

// CancellationError reports that polling was torn down before the job
// turned terminal. Only client-side observation stops; the backend job
// may continue running.
type CancellationError struct {
	// JobID is the job that was being observed.
	JobID string
	// Cause is context.Canceled or context.DeadlineExceeded.
	Cause error
}

// Error implements the error interface.
func (e *CancellationError) Error() string {
	return fmt.Sprintf("polling cancelled for job %s: %v", e.JobID, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CancellationError) Unwrap() error {
	return e.Cause
}
