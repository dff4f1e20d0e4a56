// Package session persists per-file viewing state: markers, cursor,
// time-base and signal preferences. State lives in a local SQLite database
// keyed by the trace file's absolute path; markers can also be exchanged as
// TOML.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver.
)

// ErrNotFound is returned by Load when nothing was saved for a file.
var ErrNotFound = errors.New("no saved session")

// schema contains the DDL executed on every open.
const schema = `
CREATE TABLE IF NOT EXISTS traces (
    path       TEXT PRIMARY KEY,
    time_base  TEXT NOT NULL DEFAULT 'auto',
    cursor     INTEGER NOT NULL DEFAULT 0,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS markers (
    id         TEXT PRIMARY KEY,
    trace_path TEXT NOT NULL REFERENCES traces(path) ON DELETE CASCADE,
    time       INTEGER NOT NULL,
    label      TEXT NOT NULL DEFAULT '',
    color      TEXT NOT NULL DEFAULT '',
    selected   INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS markers_by_trace ON markers(trace_path, time);

CREATE TABLE IF NOT EXISTS signal_prefs (
    trace_path TEXT NOT NULL REFERENCES traces(path) ON DELETE CASCADE,
    full_name  TEXT NOT NULL,
    position   INTEGER NOT NULL,
    visible    INTEGER NOT NULL DEFAULT 1,
    color      TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (trace_path, full_name)
);
`

// MarkerRecord is a stored marker.
type MarkerRecord struct {
	ID       string `toml:"id"`
	Time     int64  `toml:"time"`
	Label    string `toml:"label"`
	Color    string `toml:"color,omitempty"`
	Selected bool   `toml:"selected,omitempty"`
}

// SignalPref is the stored display preference of one signal.
type SignalPref struct {
	Name    string
	Visible bool
	Color   string
}

// State is everything saved for one trace file. Signals are in display
// order.
type State struct {
	TimeBase string
	Cursor   int64
	Markers  []MarkerRecord
	Signals  []SignalPref
}

// Store is a SQLite-backed session store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, enables WAL mode and busy
// timeout, and creates the schema if needed.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("session: create directory %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("session: open database: %w", err)
	}

	// SQLite allows a single writer; one connection keeps the PRAGMAs below
	// in effect for every statement.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("session: %s: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("session: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored state for tracePath.
func (s *Store) Save(ctx context.Context, tracePath string, st State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session: begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	const upsert = `
		INSERT INTO traces (path, time_base, cursor, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(path) DO UPDATE SET
			time_base  = excluded.time_base,
			cursor     = excluded.cursor,
			updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, tracePath, st.TimeBase, st.Cursor); err != nil {
		return fmt.Errorf("session: save %s: %w", tracePath, err)
	}
	if err := replaceMarkers(ctx, tx, tracePath, st.Markers); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM signal_prefs WHERE trace_path = ?", tracePath); err != nil {
		return fmt.Errorf("session: clear signal prefs: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO signal_prefs (trace_path, full_name, position, visible, color) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("session: prepare signal prefs: %w", err)
	}
	defer stmt.Close()
	for i, p := range st.Signals {
		if _, err := stmt.ExecContext(ctx, tracePath, p.Name, i, p.Visible, p.Color); err != nil {
			return fmt.Errorf("session: save signal %q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("session: commit save: %w", err)
	}
	return nil
}

// Load returns the stored state for tracePath, or ErrNotFound.
func (s *Store) Load(ctx context.Context, tracePath string) (State, error) {
	var st State
	err := s.db.QueryRowContext(ctx,
		"SELECT time_base, cursor FROM traces WHERE path = ?", tracePath).Scan(&st.TimeBase, &st.Cursor)
	if errors.Is(err, sql.ErrNoRows) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("session: load %s: %w", tracePath, err)
	}

	if st.Markers, err = s.Markers(ctx, tracePath); err != nil {
		return State{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT full_name, visible, color FROM signal_prefs WHERE trace_path = ? ORDER BY position", tracePath)
	if err != nil {
		return State{}, fmt.Errorf("session: load signal prefs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p SignalPref
		if err := rows.Scan(&p.Name, &p.Visible, &p.Color); err != nil {
			return State{}, fmt.Errorf("session: scan signal pref: %w", err)
		}
		st.Signals = append(st.Signals, p)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("session: load signal prefs: %w", err)
	}
	return st, nil
}

// Markers returns the stored markers of tracePath in time order.
func (s *Store) Markers(ctx context.Context, tracePath string) ([]MarkerRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, time, label, color, selected FROM markers WHERE trace_path = ? ORDER BY time, rowid", tracePath)
	if err != nil {
		return nil, fmt.Errorf("session: query markers: %w", err)
	}
	defer rows.Close()

	var out []MarkerRecord
	for rows.Next() {
		var m MarkerRecord
		if err := rows.Scan(&m.ID, &m.Time, &m.Label, &m.Color, &m.Selected); err != nil {
			return nil, fmt.Errorf("session: scan marker: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("session: query markers: %w", err)
	}
	return out, nil
}

// ReplaceMarkers swaps the stored markers of tracePath for ms, creating the
// trace row if needed. Other saved state is untouched.
func (s *Store) ReplaceMarkers(ctx context.Context, tracePath string, ms []MarkerRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("session: begin replace markers: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO traces (path) VALUES (?) ON CONFLICT(path) DO NOTHING", tracePath); err != nil {
		return fmt.Errorf("session: ensure trace %s: %w", tracePath, err)
	}
	if err := replaceMarkers(ctx, tx, tracePath, ms); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("session: commit markers: %w", err)
	}
	return nil
}

func replaceMarkers(ctx context.Context, tx *sql.Tx, tracePath string, ms []MarkerRecord) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM markers WHERE trace_path = ?", tracePath); err != nil {
		return fmt.Errorf("session: clear markers: %w", err)
	}
	if len(ms) == 0 {
		return nil
	}
	// A marker ID may have moved from another trace (imported TOML).
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO markers (id, trace_path, time, label, color, selected)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			trace_path = excluded.trace_path,
			time       = excluded.time,
			label      = excluded.label,
			color      = excluded.color,
			selected   = excluded.selected`)
	if err != nil {
		return fmt.Errorf("session: prepare marker insert: %w", err)
	}
	defer stmt.Close()
	for _, m := range ms {
		if _, err := stmt.ExecContext(ctx, m.ID, tracePath, m.Time, m.Label, m.Color, m.Selected); err != nil {
			return fmt.Errorf("session: save marker %s: %w", m.ID, err)
		}
	}
	return nil
}

// Forget deletes everything stored for tracePath.
func (s *Store) Forget(ctx context.Context, tracePath string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM traces WHERE path = ?", tracePath); err != nil {
		return fmt.Errorf("session: forget %s: %w", tracePath, err)
	}
	return nil
}
