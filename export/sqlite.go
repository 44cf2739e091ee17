package export

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tsawler/rogain/model"
)

// ErrRunNotFound is returned when a run id is unknown.
var ErrRunNotFound = errors.New("run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	source     TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS records (
	run_id       TEXT    NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq          INTEGER NOT NULL,
	team         TEXT    NOT NULL,
	points       INTEGER NOT NULL,
	time         TEXT    NOT NULL,
	total_points INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE INDEX IF NOT EXISTS idx_records_team ON records(run_id, team);
`

// createdLayout sorts lexically in time order.
const createdLayout = "2006-01-02T15:04:05.000000000Z"

// Run describes one stored extraction.
type Run struct {
	ID        string
	Source    string
	CreatedAt time.Time
}

// SQLite stores extraction runs in an SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema. Use ":memory:" for a private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("export: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("export: open: %w", err)
	}
	if path == ":memory:" {
		// each connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("export: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("export: exec schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// Save stores records as a new run and returns its id.
func (s *SQLite) Save(ctx context.Context, source string, records []model.Record) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("export: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, created_at) VALUES (?, ?, ?)`,
		id, source, time.Now().UTC().Format(createdLayout),
	); err != nil {
		return "", fmt.Errorf("export: insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (run_id, seq, team, points, time, total_points) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("export: prepare: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.ExecContext(ctx, id, i, r.Team, r.Points, r.Time.String(), r.TotalPoints); err != nil {
			return "", fmt.Errorf("export: insert record %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("export: commit: %w", err)
	}
	return id, nil
}

// Load returns the records of a run in their original order.
func (s *SQLite) Load(ctx context.Context, runID string) ([]model.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("export: query run: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT team, points, time, total_points FROM records WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("export: query records: %w", err)
	}
	defer rows.Close()

	records := make([]model.Record, 0)
	for rows.Next() {
		var (
			r  model.Record
			ts string
		)
		if err := rows.Scan(&r.Team, &r.Points, &ts, &r.TotalPoints); err != nil {
			return nil, fmt.Errorf("export: scan: %w", err)
		}
		if r.Time, err = model.ParseClock(ts); err != nil {
			return nil, fmt.Errorf("export: record time: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Runs lists stored runs, newest first.
func (s *SQLite) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, source, created_at FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("export: query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run     Run
			created string
		)
		if err := rows.Scan(&run.ID, &run.Source, &created); err != nil {
			return nil, fmt.Errorf("export: scan: %w", err)
		}
		run.CreatedAt, _ = time.Parse(createdLayout, created)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
