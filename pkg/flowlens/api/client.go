// Package api implements the HTTP client for the FlowLens backend:
// analysis job submission and status, diagram generation, and the
// document store. Exact endpoint paths are deployment configuration
// supplied through config.Settings.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flowlens/flowlens/pkg/flowlens"
	"github.com/flowlens/flowlens/pkg/flowlens/config"
)

// HTTPError represents a non-2xx backend response.
type HTTPError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e.Endpoint != "" {
		return fmt.Sprintf("HTTP %d at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Compile-time interface checks.
var (
	_ flowlens.Service         = (*Client)(nil)
	_ flowlens.DiagramService  = (*Client)(nil)
	_ flowlens.DocumentService = (*Client)(nil)
)

// Client talks to the FlowLens backend over HTTP.
// It is safe for concurrent use.
type Client struct {
	baseURL       string
	analyzePath   string
	statusPath    string
	diagramPath   string
	documentsPath string
	httpClient    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
// Useful for tests and custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a backend client from resolved settings.
func NewClient(settings config.Settings, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(settings.BaseURL, "/"),
		analyzePath:   settings.AnalyzePath,
		statusPath:    settings.StatusPath,
		diagramPath:   settings.DiagramPath,
		documentsPath: settings.DocumentsPath,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SubmitAnalysis creates an analysis job.
// Implements flowlens.Service.
func (c *Client) SubmitAnalysis(ctx context.Context, req flowlens.AnalysisRequest) (flowlens.SubmitAck, error) {
	var ack flowlens.SubmitAck
	if err := c.postJSON(ctx, c.endpoint(c.analyzePath), req, &ack); err != nil {
		return flowlens.SubmitAck{}, err
	}
	return ack, nil
}

// AnalysisStatus observes the state of a job.
// Implements flowlens.Service.
func (c *Client) AnalysisStatus(ctx context.Context, jobID string) (flowlens.JobStatusResponse, error) {
	var status flowlens.JobStatusResponse
	if err := c.getJSON(ctx, c.endpoint(c.statusPath, jobID), &status); err != nil {
		return flowlens.JobStatusResponse{}, err
	}
	return status, nil
}

// GenerateDiagram converts a textual or image description into a
// diagram. Implements flowlens.DiagramService.
func (c *Client) GenerateDiagram(ctx context.Context, req flowlens.DiagramRequest) (flowlens.DiagramResponse, error) {
	var resp flowlens.DiagramResponse
	if err := c.postJSON(ctx, c.endpoint(c.diagramPath), req, &resp); err != nil {
		return flowlens.DiagramResponse{}, err
	}
	return resp, nil
}

// Documents lists the document store.
func (c *Client) Documents(ctx context.Context) ([]flowlens.Document, error) {
	var docs []flowlens.Document
	if err := c.getJSON(ctx, c.endpoint(c.documentsPath), &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Document fetches a single document, including its text content used
// as the citation highlight target.
func (c *Client) Document(ctx context.Context, documentID string) (flowlens.Document, error) {
	var doc flowlens.Document
	if err := c.getJSON(ctx, c.endpoint(c.documentsPath, documentID), &doc); err != nil {
		return flowlens.Document{}, err
	}
	return doc, nil
}

// endpoint builds a request URL from a configured path (taken as-is,
// it may span several segments) and identifier segments, which are
// escaped so IDs containing '/', '?' or '#' cannot change the request
// target.
func (c *Client) endpoint(path string, ids ...string) string {
	u := c.baseURL + "/" + path
	for _, id := range ids {
		u += "/" + url.PathEscape(id)
	}
	return u
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Endpoint:   req.URL.Path,
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorMessage extracts a human-readable message from an error body.
// The backend uses both {"error": ...} and {"message": ...} shapes.
func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	if len(data) > 0 {
		return strings.TrimSpace(string(data))
	}
	return "unexpected backend response"
}
