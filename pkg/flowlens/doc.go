/*
Package flowlens implements the asynchronous job-orchestration and
caching core of the FlowLens process-analysis application.

# Overview

FlowLens lets a user describe a business process, turn the description
into an editable flow diagram, and request a structured AI analysis
backed by a knowledge base of reference documents. This module is the
part between the UI and the backend: it fingerprints analysis requests,
serves repeat requests from a persistent cache, submits jobs, polls
them to a terminal state, and resolves inline citation markers in the
resulting prose back to their source documents.

The rendering surfaces (diagram canvas, report view, document pages)
are external collaborators; this core hands them typed results and
segments and knows nothing about layout.

# Basic Usage

Wire a backend client and a cache, then submit and poll:

	settings := config.DefaultSettings()
	client := api.NewClient(settings)

	store, err := cache.NewSQLiteStore(settings.CachePath)
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	analyzer := flowlens.NewAnalyzer(
	    client,
	    flowlens.NewResultCache(store, nil),
	    flowlens.WithPollInterval(settings.PollInterval),
	)

	result, handle, err := analyzer.Run(ctx, flowlens.AnalysisRequest{
	    SessionID:           sessionID,
	    Diagram:             diagram,
	    SelectedDocumentIDs: docIDs,
	    Question:            "Where are the bottlenecks?",
	})

Repeating the same request completes synchronously from the cache with
no network traffic. handle.Message() always carries a human-readable
status line for the UI.

# Citations

Free-text fields of the result may contain markers like "(Nguồn [2])".
Resolve them before display:

	segments := citation.Resolve(result.Analysis.Summary.Conclusion, result.Sources)

Each segment is either plain text or a link into a highlighted passage
of a source document.

# Subpackages

  - fingerprint: deterministic cache keys from request payloads
  - cache: persistent key-value stores (memory, SQLite)
  - api: HTTP client for the backend endpoints
  - citation: citation marker resolution
  - config: configuration loading and resolved settings
  - observability: structured logging, OTel metrics and tracing
*/
package flowlens
