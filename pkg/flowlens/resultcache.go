package flowlens

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flowlens/flowlens/pkg/flowlens/cache"
	"github.com/flowlens/flowlens/pkg/flowlens/fingerprint"
	"github.com/flowlens/flowlens/pkg/flowlens/observability"
)

// ResultCache is the typed layer over a cache.Store. It serializes
// analysis results, generated diagrams, and the per-session pending
// request buffer as JSON.
//
// Entries live forever: there is no TTL and no invalidation path other
// than clearing the underlying store. If document content changes
// server-side without changing the fingerprint inputs, stale results
// are served until the store is cleared.
type ResultCache struct {
	store  cache.Store
	logger *slog.Logger
}

// NewResultCache wraps a store. The logger may be nil.
func NewResultCache(store cache.Store, logger *slog.Logger) *ResultCache {
	return &ResultCache{store: store, logger: logger}
}

// Result returns the cached analysis result for a fingerprint.
// A corrupt stored value is discarded and reported as a miss; lookups
// never fail.
func (c *ResultCache) Result(fp string) (AnalysisResult, bool) {
	var result AnalysisResult
	if !c.load(fp, &result) {
		return AnalysisResult{}, false
	}
	return result, true
}

// PutResult stores an analysis result under its fingerprint,
// overwriting any previous entry. Returns the serialized size.
func (c *ResultCache) PutResult(fp string, result AnalysisResult) (int, error) {
	return c.save(fp, result)
}

// Diagram returns the cached diagram-generation response for a key.
func (c *ResultCache) Diagram(key string) (DiagramResponse, bool) {
	var resp DiagramResponse
	if !c.load(key, &resp) {
		return DiagramResponse{}, false
	}
	return resp, true
}

// PutDiagram stores a diagram-generation response under its key.
func (c *ResultCache) PutDiagram(key string, resp DiagramResponse) error {
	_, err := c.save(key, resp)
	return err
}

// SavePendingRequest stages a request in the per-session hand-off
// buffer between the diagram surface and the analysis surface.
func (c *ResultCache) SavePendingRequest(req AnalysisRequest) error {
	_, err := c.save(fingerprint.StateKey(req.SessionID), req)
	return err
}

// LoadPendingRequest returns the staged request for a session, or
// ErrNoPendingRequest if the buffer is empty or unreadable.
func (c *ResultCache) LoadPendingRequest(sessionID string) (AnalysisRequest, error) {
	var req AnalysisRequest
	if !c.load(fingerprint.StateKey(sessionID), &req) {
		return AnalysisRequest{}, ErrNoPendingRequest
	}
	return req, nil
}

// ClearPendingRequest removes the staged request for a session.
func (c *ResultCache) ClearPendingRequest(sessionID string) error {
	return c.store.Delete(fingerprint.StateKey(sessionID))
}

// Close releases the underlying store.
func (c *ResultCache) Close() error {
	return c.store.Close()
}

func (c *ResultCache) load(key string, out any) bool {
	data, err := c.store.Get(key)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			observability.LogCacheError(c.logger, key, "get", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		// Corrupt entry: discard and treat as a miss rather than
		// surfacing an error or serving garbage.
		observability.LogCacheError(c.logger, key, "decode", err)
		if derr := c.store.Delete(key); derr != nil {
			observability.LogCacheError(c.logger, key, "delete", derr)
		}
		return false
	}
	return true
}

func (c *ResultCache) save(key string, value any) (int, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return 0, fmt.Errorf("encode cache entry: %w", err)
	}
	if err := c.store.Put(key, data); err != nil {
		return 0, err
	}
	return len(data), nil
}
