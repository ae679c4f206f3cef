// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists run outcomes in a SQLite database. The history
// command reads it back, and the auto command uses it to decide whether a
// scheduled run is due.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/search-runner/internal/runlog"
	"github.com/pdiddy/search-runner/pkg/types"
)

const timeFmt = time.RFC3339Nano

// Store manages the run history SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the history database at path and creates the schema
// if it does not exist.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			term_file TEXT,
			status TEXT NOT NULL,
			terms INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			auto INTEGER NOT NULL DEFAULT 0,
			started TEXT NOT NULL,
			finished TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS attempts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			term TEXT NOT NULL,
			seq INTEGER NOT NULL,
			ok INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL,
			error TEXT,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_run_id ON attempts(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_finished ON runs(finished)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun stores a finished run and all its attempts in one transaction.
// auto marks runs started by the scheduler rather than by hand.
func (s *Store) RecordRun(l *runlog.RunLog, auto bool) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, term_file, status, terms, succeeded, failed, auto, started, finished)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.TermFile, string(l.Status),
		l.Summary.Terms, l.Summary.Succeeded, l.Summary.Failed,
		auto, l.Started.Format(timeFmt), l.Finished.Format(timeFmt),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", l.ID, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO attempts (run_id, term, seq, ok, elapsed_ms, error, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing attempt insert: %w", err)
	}
	defer stmt.Close()

	for _, a := range l.Attempts {
		if _, err := stmt.Exec(l.ID, a.Term, a.Seq, a.OK,
			a.Elapsed.Milliseconds(), a.Error, a.At.Format(timeFmt)); err != nil {
			return fmt.Errorf("inserting attempt for %q: %w", a.Term, err)
		}
	}

	return tx.Commit()
}

// RunRecord is one row of the runs table.
type RunRecord struct {
	ID        string          `json:"id"`
	TermFile  string          `json:"term_file"`
	Status    types.RunStatus `json:"status"`
	Terms     int             `json:"terms"`
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Auto      bool            `json:"auto"`
	Started   time.Time       `json:"started"`
	Finished  time.Time       `json:"finished"`
}

// Recent returns the latest n runs, newest first.
func (s *Store) Recent(n int) ([]RunRecord, error) {
	if n <= 0 {
		n = 10
	}
	rows, err := s.db.Query(
		`SELECT id, term_file, status, terms, succeeded, failed, auto, started, finished
		 FROM runs ORDER BY finished DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			r                 RunRecord
			status            string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &r.TermFile, &status, &r.Terms, &r.Succeeded,
			&r.Failed, &r.Auto, &started, &finished); err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}
		r.Status = types.RunStatus(status)
		if r.Started, err = time.Parse(timeFmt, started); err != nil {
			return nil, fmt.Errorf("parsing started time for run %s: %w", r.ID, err)
		}
		if r.Finished, err = time.Parse(timeFmt, finished); err != nil {
			return nil, fmt.Errorf("parsing finished time for run %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Attempts returns a run's attempts in recorded order.
func (s *Store) Attempts(runID string) ([]types.Attempt, error) {
	rows, err := s.db.Query(
		`SELECT term, seq, ok, elapsed_ms, error, at
		 FROM attempts WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying attempts for run %s: %w", runID, err)
	}
	defer rows.Close()

	var out []types.Attempt
	for rows.Next() {
		var (
			a         types.Attempt
			elapsedMS int64
			at        string
		)
		if err := rows.Scan(&a.Term, &a.Seq, &a.OK, &elapsedMS, &a.Error, &at); err != nil {
			return nil, fmt.Errorf("scanning attempt row: %w", err)
		}
		a.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		if a.At, err = time.Parse(timeFmt, at); err != nil {
			return nil, fmt.Errorf("parsing attempt time: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// LastFinished returns when the most recent completed run ended. With
// autoOnly set, only scheduler-started runs count. ok is false when no
// matching run exists.
func (s *Store) LastFinished(autoOnly bool) (last time.Time, ok bool, err error) {
	q := `SELECT finished FROM runs WHERE status = ? ORDER BY finished DESC LIMIT 1`
	args := []any{string(types.RunCompleted)}
	if autoOnly {
		q = `SELECT finished FROM runs WHERE status = ? AND auto = 1 ORDER BY finished DESC LIMIT 1`
	}

	var finished string
	err = s.db.QueryRow(q, args...).Scan(&finished)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying last run: %w", err)
	}

	last, err = time.Parse(timeFmt, finished)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parsing finished time: %w", err)
	}
	return last, true, nil
}
