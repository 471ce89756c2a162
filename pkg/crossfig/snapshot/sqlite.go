package snapshot

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore persists snapshots to SQLite, so resolution history
// survives across generator runs.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a SQLite snapshot store. The path should be a
// file path (e.g. "./crossfig.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// WAL keeps concurrent readers cheap
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL PRIMARY KEY,
			manifest TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			data BLOB NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_snapshots_manifest
		ON snapshots(manifest, created_at)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}
	if rec.RunID == "" {
		return fmt.Errorf("snapshot: run ID is required")
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}

	// Unix nanos keep the ORDER BY numeric; text timestamps sort
	// fractional seconds before whole ones.
	_, err = s.db.Exec(`
		INSERT INTO snapshots (run_id, manifest, created_at, data)
		VALUES (?, ?, ?, ?)
	`, rec.RunID, rec.Manifest, rec.CreatedAt.UnixNano(), data)
	if err != nil {
		// The primary key makes duplicate run IDs a constraint failure.
		var exists int
		if qerr := s.db.QueryRow(
			`SELECT COUNT(*) FROM snapshots WHERE run_id = ?`, rec.RunID,
		).Scan(&exists); qerr == nil && exists > 0 {
			return fmt.Errorf("%w: %s", ErrDuplicateRun, rec.RunID)
		}
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Latest implements Store.
func (s *SQLiteStore) Latest(manifest string) (Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Record{}, false, ErrStoreClosed
	}

	var data []byte
	err := s.db.QueryRow(`
		SELECT data FROM snapshots
		WHERE manifest = ?
		ORDER BY created_at DESC
		LIMIT 1
	`, manifest).Scan(&data)
	if err == sql.ErrNoRows {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, false, fmt.Errorf("deserialize snapshot: %w", err)
	}
	return rec, true, nil
}

// List implements Store.
func (s *SQLiteStore) List(manifest string, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}
	if limit <= 0 {
		limit = -1 // SQLite treats a negative LIMIT as unbounded
	}

	rows, err := s.db.Query(`
		SELECT data FROM snapshots
		WHERE manifest = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, manifest, limit)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		var rec Record
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("deserialize snapshot: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
