// Package config loads and resolves flowlens client configuration.
package config

import (
	"fmt"
	"time"
)

// Default settings. Endpoint paths are deployment configuration, not
// part of the orchestration contract.
const (
	DefaultBaseURL       = "http://localhost:8000"
	DefaultAnalyzePath   = "analyze"
	DefaultStatusPath    = "analysis-status"
	DefaultDiagramPath   = "diagram"
	DefaultDocumentsPath = "documents"
	DefaultPollInterval  = 30 * time.Second
	DefaultCachePath     = "flowlens_cache.db"
	DefaultLanguage      = "vi"
)

// Settings is the resolved flowlens client configuration.
type Settings struct {
	// BaseURL is the backend root, e.g. "https://api.example.com".
	BaseURL string

	// AnalyzePath is the job submission path under BaseURL.
	AnalyzePath string

	// StatusPath is the job status path under BaseURL; the job ID is
	// appended as a final path segment.
	StatusPath string

	// DiagramPath is the diagram-generation path under BaseURL.
	DiagramPath string

	// DocumentsPath is the document-store path under BaseURL.
	DocumentsPath string

	// PollInterval is the fixed delay between status observations.
	PollInterval time.Duration

	// MaxPolls bounds the number of status observations per job.
	// Zero means poll indefinitely until terminal or cancelled.
	MaxPolls int

	// CachePath is the SQLite file backing the result cache.
	CachePath string

	// Language is the default diagram-generation language ("vi"/"en").
	Language string
}

// DefaultSettings returns Settings populated with defaults.
func DefaultSettings() Settings {
	return Settings{
		BaseURL:       DefaultBaseURL,
		AnalyzePath:   DefaultAnalyzePath,
		StatusPath:    DefaultStatusPath,
		DiagramPath:   DefaultDiagramPath,
		DocumentsPath: DefaultDocumentsPath,
		PollInterval:  DefaultPollInterval,
		CachePath:     DefaultCachePath,
		Language:      DefaultLanguage,
	}
}

// fileConfig is the on-disk schema. Unset fields keep their defaults;
// pointer and any-typed fields distinguish "absent" from zero values.
type fileConfig struct {
	BaseURL       string `yaml:"base_url" json:"base_url,omitempty"`
	AnalyzePath   string `yaml:"analyze_path" json:"analyze_path,omitempty"`
	StatusPath    string `yaml:"status_path" json:"status_path,omitempty"`
	DiagramPath   string `yaml:"diagram_path" json:"diagram_path,omitempty"`
	DocumentsPath string `yaml:"documents_path" json:"documents_path,omitempty"`

	// PollInterval accepts a duration string ("45s") or a bare number
	// of seconds.
	PollInterval any  `yaml:"poll_interval" json:"poll_interval,omitempty"`
	MaxPolls     *int `yaml:"max_polls" json:"max_polls,omitempty"`

	CachePath string `yaml:"cache_path" json:"cache_path,omitempty"`
	Language  string `yaml:"language" json:"language,omitempty"`
}

// resolve applies the file values over the defaults and validates them.
func (f fileConfig) resolve() (Settings, error) {
	s := DefaultSettings()

	if f.BaseURL != "" {
		s.BaseURL = f.BaseURL
	}
	if f.AnalyzePath != "" {
		s.AnalyzePath = f.AnalyzePath
	}
	if f.StatusPath != "" {
		s.StatusPath = f.StatusPath
	}
	if f.DiagramPath != "" {
		s.DiagramPath = f.DiagramPath
	}
	if f.DocumentsPath != "" {
		s.DocumentsPath = f.DocumentsPath
	}
	if f.CachePath != "" {
		s.CachePath = f.CachePath
	}
	if f.Language != "" {
		s.Language = f.Language
	}

	if f.PollInterval != nil {
		d, err := pollInterval(f.PollInterval)
		if err != nil {
			return Settings{}, fmt.Errorf("poll_interval: %w", err)
		}
		s.PollInterval = d
	}
	if f.MaxPolls != nil {
		if *f.MaxPolls < 0 {
			return Settings{}, fmt.Errorf("max_polls: must not be negative, got %d", *f.MaxPolls)
		}
		s.MaxPolls = *f.MaxPolls
	}

	return s, nil
}

// pollInterval converts a configured poll interval to a duration.
func pollInterval(v any) (time.Duration, error) {
	var d time.Duration
	switch val := v.(type) {
	case string:
		parsed, err := time.ParseDuration(val)
		if err != nil {
			return 0, err
		}
		d = parsed
	case int:
		d = time.Duration(val) * time.Second
	case int64:
		d = time.Duration(val) * time.Second
	case float64:
		d = time.Duration(val * float64(time.Second))
	default:
		return 0, fmt.Errorf("unsupported value %v (want duration string or seconds)", v)
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", d)
	}
	return d, nil
}
