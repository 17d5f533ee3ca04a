package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile loads and resolves settings from a config file,
// auto-detecting the format by extension.
// Supported extensions: .yaml, .yml, .json
func FromFile(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("read config file: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Settings{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}
}

// FromYAML parses YAML data and resolves it over the defaults.
// Unknown keys are rejected so typos surface as errors instead of
// silently falling back to defaults.
func FromYAML(data []byte) (Settings, error) {
	var f fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		// An empty document configures nothing
		if errors.Is(err, io.EOF) {
			return DefaultSettings(), nil
		}
		return Settings{}, fmt.Errorf("parse yaml: %w", err)
	}
	return f.resolve()
}

// FromJSON parses JSON data and resolves it over the defaults.
// Unknown keys are rejected, matching FromYAML.
func FromJSON(data []byte) (Settings, error) {
	var f fileConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return Settings{}, fmt.Errorf("parse json: %w", err)
	}
	return f.resolve()
}
