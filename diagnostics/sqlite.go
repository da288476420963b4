package diagnostics

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLite stores diagnostics for one simulation run in a sqlite database.
// Every row carries the run id, so several runs can share one file.
type SQLite struct {
	conn  *sqlx.DB
	runID string
}

// OpenSQLite opens or creates the database at path and registers a new run.
func OpenSQLite(path string, label string) (*SQLite, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("diagnostics: open %s: %w", path, err)
	}

	db := &SQLite{conn: conn, runID: uuid.NewString()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("diagnostics: migrate: %w", err)
	}

	if _, err := conn.Exec(`INSERT INTO runs (id, label, started_at) VALUES (?, ?, ?)`,
		db.runID, label, time.Now().UTC()); err != nil {
		conn.Close()
		return nil, fmt.Errorf("diagnostics: register run: %w", err)
	}
	return db, nil
}

func (db *SQLite) RunID() string {
	return db.runID
}

func (db *SQLite) Close() error {
	return db.conn.Close()
}

func (db *SQLite) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		started_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS failures (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		entity INTEGER NOT NULL,
		stage TEXT NOT NULL,
		err TEXT NOT NULL,
		at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS ticks (
		run_id TEXT NOT NULL,
		tick INTEGER NOT NULL,
		agents INTEGER NOT NULL,
		failures INTEGER NOT NULL,
		mean_speed REAL NOT NULL,
		mean_ramp REAL NOT NULL,
		PRIMARY KEY (run_id, tick)
	);

	CREATE INDEX IF NOT EXISTS idx_failures_run_tick ON failures(run_id, tick);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type failureRow struct {
	RunID string `db:"run_id"`
	Record
}

type tickRow struct {
	RunID string `db:"run_id"`
	TickStats
}

func (db *SQLite) RecordFailure(r Record) error {
	if r.At.IsZero() {
		r.At = time.Now().UTC()
	}
	_, err := db.conn.NamedExec(`
		INSERT INTO failures (run_id, tick, entity, stage, err, at)
		VALUES (:run_id, :tick, :entity, :stage, :err, :at)`,
		failureRow{RunID: db.runID, Record: r})
	if err != nil {
		return fmt.Errorf("diagnostics: insert failure: %w", err)
	}
	return nil
}

func (db *SQLite) RecordTick(s TickStats) error {
	_, err := db.conn.NamedExec(`
		INSERT OR REPLACE INTO ticks (run_id, tick, agents, failures, mean_speed, mean_ramp)
		VALUES (:run_id, :tick, :agents, :failures, :mean_speed, :mean_ramp)`,
		tickRow{RunID: db.runID, TickStats: s})
	if err != nil {
		return fmt.Errorf("diagnostics: insert tick: %w", err)
	}
	return nil
}

// Failures returns this run's failure records in tick order.
func (db *SQLite) Failures() ([]Record, error) {
	var out []Record
	err := db.conn.Select(&out, `
		SELECT tick, entity, stage, err, at FROM failures
		WHERE run_id = ? ORDER BY tick, entity`, db.runID)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: load failures: %w", err)
	}
	return out, nil
}

// Ticks returns this run's tick stats in order.
func (db *SQLite) Ticks() ([]TickStats, error) {
	var out []TickStats
	err := db.conn.Select(&out, `
		SELECT tick, agents, failures, mean_speed, mean_ramp FROM ticks
		WHERE run_id = ? ORDER BY tick`, db.runID)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: load ticks: %w", err)
	}
	return out, nil
}
