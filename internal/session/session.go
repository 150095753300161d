// Package session tracks LLM CLI session state in SQLite. A CLI session
// is resumable only while a record here says so; the state is an explicit
// three-way machine rather than a marker file, so a crashed process
// cannot leave behind a stale "active" signal that a later run would
// blindly resume into.
package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// State is the session lifecycle state for one CLI.
type State string

const (
	// NoSession means no session record exists; start fresh.
	NoSession State = "no_session"
	// Active means a session exists and is young enough to resume.
	Active State = "active"
	// Expired means a session record exists but has outlived its TTL;
	// resuming it would attach to a dead session.
	Expired State = "expired"
)

// Record is one CLI's stored session.
type Record struct {
	// CLI names the tool the session belongs to, e.g. "codex".
	CLI string
	// SessionID is the CLI's own session identifier.
	SessionID string
	// StartedAt is when the session was registered.
	StartedAt time.Time
}

// Store persists session records for one project.
type Store struct {
	conn *sql.DB
	path string
	mu   sync.Mutex
}

// StorePath returns the project-local session database path.
func StorePath(projectRoot string) string {
	return filepath.Join(projectRoot, ".task", "auditgate.db")
}

// Open opens the session store at the given path, creating parent
// directories and the schema as needed. WAL mode is enabled for
// concurrent reads.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS cli_sessions (
			cli TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			started_at DATETIME NOT NULL
		)
	`); err != nil {
		conn.Close()
		return nil, fmt.Errorf("create cli_sessions table: %w", err)
	}

	return &Store{conn: conn, path: path}, nil
}

// OpenProject opens the project-local session store.
func OpenProject(projectRoot string) (*Store, error) {
	return Open(StorePath(projectRoot))
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.Close()
}

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Begin registers a fresh session for the CLI, replacing any prior record.
// Callers must register only after the CLI has successfully started: a
// timed-out or failed launch must leave no active record behind.
func (s *Store) Begin(cli, sessionID string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.conn.Exec(`
		INSERT INTO cli_sessions (cli, session_id, started_at) VALUES (?, ?, ?)
		ON CONFLICT(cli) DO UPDATE SET session_id = excluded.session_id, started_at = excluded.started_at
	`, cli, sessionID, now.UTC())
	if err != nil {
		return fmt.Errorf("register session for %s: %w", cli, err)
	}
	return nil
}

// End removes the CLI's session record.
func (s *Store) End(cli string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.conn.Exec("DELETE FROM cli_sessions WHERE cli = ?", cli); err != nil {
		return fmt.Errorf("end session for %s: %w", cli, err)
	}
	return nil
}

// Lookup returns the CLI's session state at the given time under the
// given TTL. The record is returned for Active and Expired states.
func (s *Store) Lookup(cli string, now time.Time, ttl time.Duration) (State, Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rec Record
	row := s.conn.QueryRow("SELECT cli, session_id, started_at FROM cli_sessions WHERE cli = ?", cli)
	if err := row.Scan(&rec.CLI, &rec.SessionID, &rec.StartedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return NoSession, Record{}, nil
		}
		return NoSession, Record{}, fmt.Errorf("lookup session for %s: %w", cli, err)
	}
	if ttl > 0 && now.Sub(rec.StartedAt) > ttl {
		return Expired, rec, nil
	}
	return Active, rec, nil
}

// Resumable reports whether the CLI has an Active session and returns it.
func (s *Store) Resumable(cli string, now time.Time, ttl time.Duration) (Record, bool, error) {
	state, rec, err := s.Lookup(cli, now, ttl)
	if err != nil {
		return Record{}, false, err
	}
	return rec, state == Active, nil
}
