// Package cache provides persistent key-value storage for analysis
// results. Entries survive restarts, writes overwrite wholesale, and
// there is no eviction or expiry.
package cache

import "errors"

// Store persists fingerprint-keyed entries.
// Implementations must be safe for concurrent use. Single-key Get and
// Put are atomic; there is no compare-and-swap, so two in-flight
// writers to the same key race and the last writer wins.
type Store interface {
	// Get retrieves the value for a key.
	// Returns ErrNotFound if the key doesn't exist.
	Get(key string) ([]byte, error)

	// Put stores a value for a key, overwriting any existing value.
	Put(key string, value []byte) error

	// Delete removes a key.
	// Returns nil if the key doesn't exist.
	Delete(key string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a key doesn't exist.
	ErrNotFound = errors.New("cache entry not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("cache store closed")
)
