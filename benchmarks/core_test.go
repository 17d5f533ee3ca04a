package benchmarks

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/flowlens/flowlens/pkg/flowlens"
	"github.com/flowlens/flowlens/pkg/flowlens/cache"
	"github.com/flowlens/flowlens/pkg/flowlens/citation"
	"github.com/flowlens/flowlens/pkg/flowlens/fingerprint"
)

func benchRequest() flowlens.AnalysisRequest {
	nodes := make([]flowlens.DiagramNode, 20)
	edges := make([]flowlens.DiagramEdge, 19)
	for i := range nodes {
		nodes[i] = flowlens.DiagramNode{
			ID:       string(rune('a' + i)),
			Type:     "process",
			Data:     flowlens.NodeData{Label: "Step"},
			Position: flowlens.Position{X: float64(i) * 100},
		}
	}
	for i := range edges {
		edges[i] = flowlens.DiagramEdge{
			ID:     string(rune('a'+i)) + "-e",
			Source: string(rune('a' + i)),
			Target: string(rune('a' + i + 1)),
		}
	}
	return flowlens.AnalysisRequest{
		SessionID:           "session-bench",
		Diagram:             flowlens.Diagram{Nodes: nodes, Edges: edges},
		SelectedDocumentIDs: []string{"doc-001", "doc-002", "doc-003"},
		Question:            "What are the risks?",
	}
}

// BenchmarkFingerprint_Analysis measures key derivation for a 20-node
// diagram request.
func BenchmarkFingerprint_Analysis(b *testing.B) {
	req := benchRequest()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = fingerprint.Analysis(req.SessionID, req)
	}
}

// BenchmarkCitation_Resolve measures marker resolution in a long text
// with many citations.
func BenchmarkCitation_Resolve(b *testing.B) {
	sources := largeResult().Sources
	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("Some analysis prose describing a step in detail (Nguồn [")
		sb.WriteString(string(rune('1' + i%9)))
		sb.WriteString("]). ")
	}
	text := sb.String()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = citation.Resolve(text, sources)
	}
}

// benchService completes every job after two PROCESSING observations.
type benchService struct{}

func (benchService) SubmitAnalysis(_ context.Context, _ flowlens.AnalysisRequest) (flowlens.SubmitAck, error) {
	return flowlens.SubmitAck{JobID: "job-bench", Status: flowlens.StatusSubmitted}, nil
}

func (benchService) AnalysisStatus(_ context.Context, jobID string) (flowlens.JobStatusResponse, error) {
	result := largeResult()
	return flowlens.JobStatusResponse{
		JobID:  jobID,
		Status: flowlens.StatusCompleted,
		Result: &result,
	}, nil
}

// BenchmarkRun_FullCycle measures submit plus a single-poll completion,
// the hot path of a cold request. Caching is disabled so every
// iteration exercises the network path.
func BenchmarkRun_FullCycle(b *testing.B) {
	a := flowlens.NewAnalyzer(benchService{}, nil, flowlens.WithPollInterval(time.Nanosecond))
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = a.Run(ctx, benchRequest())
	}
}

// BenchmarkRun_CacheHit measures the warm path: fingerprint derivation
// plus cache read, no network.
func BenchmarkRun_CacheHit(b *testing.B) {
	rc := flowlens.NewResultCache(cache.NewMemoryStore(), nil)
	defer rc.Close()
	a := flowlens.NewAnalyzer(benchService{}, rc, flowlens.WithPollInterval(time.Nanosecond))
	ctx := context.Background()
	req := benchRequest()

	// Warm the cache
	_, _, _ = a.Run(ctx, req)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = a.Run(ctx, req)
	}
}
