package flowlens_test

import (
	"testing"

	"github.com/flowlens/flowlens/pkg/flowlens"
	"github.com/flowlens/flowlens/pkg/flowlens/cache"
	"github.com/flowlens/flowlens/pkg/flowlens/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultCache_RoundTrip(t *testing.T) {
	rc := newTestCache(t)
	result := sampleResult()

	size, err := rc.PutResult("analysis_cache_s1_abc", result)
	require.NoError(t, err)
	assert.Greater(t, size, 0)

	got, ok := rc.Result("analysis_cache_s1_abc")
	require.True(t, ok)
	assert.Equal(t, result, got)
}

func TestResultCache_Miss(t *testing.T) {
	rc := newTestCache(t)

	_, ok := rc.Result("analysis_cache_s1_missing")
	assert.False(t, ok)
}

func TestResultCache_CorruptEntryIsMiss(t *testing.T) {
	store := cache.NewMemoryStore()
	rc := flowlens.NewResultCache(store, nil)
	defer rc.Close()

	require.NoError(t, store.Put("analysis_cache_s1_abc", []byte("{not json")))

	// A corrupt entry is a miss, never an error
	_, ok := rc.Result("analysis_cache_s1_abc")
	assert.False(t, ok)

	// And the entry is discarded so it cannot poison later reads
	_, err := store.Get("analysis_cache_s1_abc")
	assert.ErrorIs(t, err, cache.ErrNotFound)
}

func TestResultCache_DiagramRoundTrip(t *testing.T) {
	rc := newTestCache(t)
	resp := flowlens.DiagramResponse{
		Success: true,
		Diagram: flowlens.Diagram{
			Nodes: []flowlens.DiagramNode{{ID: "n1", Type: "start", Data: flowlens.NodeData{Label: "Start"}}},
		},
		Metadata: flowlens.DiagramMetadata{NodesCount: 1, Language: "vi"},
	}

	require.NoError(t, rc.PutDiagram("flowlens_diagram_cache_s1_abc", resp))

	got, ok := rc.Diagram("flowlens_diagram_cache_s1_abc")
	require.True(t, ok)
	assert.Equal(t, resp, got)
}

func TestResultCache_PendingRequest(t *testing.T) {
	rc := newTestCache(t)
	req := sampleRequest()

	// Empty buffer
	_, err := rc.LoadPendingRequest(req.SessionID)
	assert.ErrorIs(t, err, flowlens.ErrNoPendingRequest)

	// Stage, load, clear
	require.NoError(t, rc.SavePendingRequest(req))

	got, err := rc.LoadPendingRequest(req.SessionID)
	require.NoError(t, err)
	assert.Equal(t, req, got)

	require.NoError(t, rc.ClearPendingRequest(req.SessionID))

	_, err = rc.LoadPendingRequest(req.SessionID)
	assert.ErrorIs(t, err, flowlens.ErrNoPendingRequest)
}

func TestResultCache_PendingRequestPerSession(t *testing.T) {
	rc := newTestCache(t)

	first := sampleRequest()
	second := sampleRequest()
	second.SessionID = "session-other"
	second.Question = "different question"

	require.NoError(t, rc.SavePendingRequest(first))
	require.NoError(t, rc.SavePendingRequest(second))

	got, err := rc.LoadPendingRequest(first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	got, err = rc.LoadPendingRequest(second.SessionID)
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestResultCache_FingerprintKeysRoundTrip(t *testing.T) {
	// The derived fingerprint is a usable store key end to end.
	rc := newTestCache(t)
	req := sampleRequest()
	result := sampleResult()

	fp := fingerprint.Analysis(req.SessionID, req)
	_, err := rc.PutResult(fp, result)
	require.NoError(t, err)

	got, ok := rc.Result(fingerprint.Analysis(req.SessionID, req))
	require.True(t, ok)
	assert.Equal(t, result, got)
}
