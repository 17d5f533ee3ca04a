// Package fingerprint derives deterministic cache keys from request
// payloads.
//
// A fingerprint is a namespace prefix, the session identifier, and a
// 32-bit rolling hash of the payload's JSON serialization. Go's
// encoding/json is stable for the payload types used here (struct
// fields serialize in declaration order, map keys sorted), so two
// structurally equal payloads always produce the same key. The hash is
// a cache key, not a security boundary; collisions are tolerated as a
// wrong-cache-hit risk and the hash is isolated behind this package so
// it can be replaced by a content digest without touching callers.
package fingerprint

import (
	"encoding/json"
	"strconv"
)

// Key namespaces. Session-scoped so unrelated sessions sharing one
// store cannot collide.
const (
	analysisPrefix = "analysis_cache_"
	diagramPrefix  = "flowlens_diagram_cache_"
	statePrefix    = "analysisState_"

	// fallbackSuffix replaces the hash when payload serialization
	// fails. The degraded key is shared within the session; accepted
	// over returning an error.
	fallbackSuffix = "default"
)

// Analysis returns the cache key for an analysis payload.
func Analysis(sessionID string, payload any) string {
	return derive(analysisPrefix, sessionID, payload)
}

// Diagram returns the cache key for a diagram-generation payload.
func Diagram(sessionID string, payload any) string {
	return derive(diagramPrefix, sessionID, payload)
}

// StateKey returns the hand-off buffer key for a session. The buffer
// holds the most recently staged analysis request, so the key is
// per-session rather than per-payload.
func StateKey(sessionID string) string {
	return statePrefix + sessionID
}

func derive(prefix, sessionID string, payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return prefix + sessionID + "_" + fallbackSuffix
	}
	return prefix + sessionID + "_" + hash36(data)
}

// hash36 is the multiply-by-31 rolling hash over the serialized bytes,
// truncated to 32 bits and rendered in base 36. Negative accumulations
// render with a leading '-', which is still a valid store key.
func hash36(data []byte) string {
	var h int32
	for _, b := range data {
		h = (h << 5) - h + int32(b)
	}
	return strconv.FormatInt(int64(h), 36)
}
