// Package snapshot records the outcome of resolution runs so builds
// can be listed and compared over time.
//
// A snapshot is the full resolved configuration of one run: which
// aliases came out enabled and which arm each switch selected. Two
// Store implementations are provided: MemoryStore for tests and
// short-lived tooling, SQLiteStore for persistence across runs.
package snapshot

import (
	"errors"
	"time"
)

// Record is one resolution run's outcome.
type Record struct {
	// RunID identifies the run (a UUID in normal operation).
	RunID string `json:"run_id"`
	// CreatedAt is when the run completed.
	CreatedAt time.Time `json:"created_at"`
	// Manifest labels the resolved manifest (usually its path).
	Manifest string `json:"manifest"`
	// Identities maps alias names to their resolved state.
	Identities map[string]bool `json:"identities"`
	// Selections maps switch names to the selected arm label:
	// "arm N" or "fallback".
	Selections map[string]string `json:"selections"`
}

// Store persists resolution snapshots.
type Store interface {
	// Save records one run. Saving the same RunID twice is an error.
	Save(rec Record) error

	// Latest returns the most recent record for a manifest.
	// The boolean reports whether one exists.
	Latest(manifest string) (Record, bool, error)

	// List returns records for a manifest, newest first, up to limit.
	// A non-positive limit returns all records.
	List(manifest string, limit int) ([]Record, error)

	// Close releases the store's resources.
	Close() error
}

// Sentinel errors for stores.
var (
	// ErrStoreClosed indicates use after Close.
	ErrStoreClosed = errors.New("snapshot store is closed")

	// ErrDuplicateRun indicates a RunID was saved twice.
	ErrDuplicateRun = errors.New("run already recorded")
)
