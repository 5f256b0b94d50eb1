// Package persistence provides a SQLite archive of simulation records.
// Each save replaces the run's rows, mirroring the whole-file overwrite
// of the JSON record.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/estajoj/internal/config"
	"github.com/talgya/estajoj/internal/events"
	"github.com/talgya/estajoj/internal/history"
)

// DB wraps a SQLite connection for run archiving.
type DB struct {
	conn *sqlx.DB
}

// RunSummary is one row of the runs table.
type RunSummary struct {
	SimulationID string `db:"simulation_id"`
	StartTime    string `db:"start_time"`
	EventCount   int    `db:"event_count"`
	SavedAt      string `db:"saved_at"`
}

type runRow struct {
	SimulationID   string `db:"simulation_id"`
	StartTime      string `db:"start_time"`
	ParametersJSON string `db:"parameters_json"`
}

type eventRow struct {
	Seq       int    `db:"seq"`
	Timestamp string `db:"timestamp"`
	Category  string `db:"category"`
	Variant   string `db:"variant"`
	Details   string `db:"details"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// Single writer; the simulation never archives concurrently.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		simulation_id TEXT PRIMARY KEY,
		start_time TEXT NOT NULL,
		parameters_json TEXT NOT NULL,
		event_count INTEGER NOT NULL,
		saved_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		simulation_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		timestamp TEXT NOT NULL,
		category TEXT NOT NULL,
		variant TEXT NOT NULL,
		details TEXT NOT NULL,
		PRIMARY KEY (simulation_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_events_category ON events(simulation_id, category, variant);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRecord writes a run record (full replace of that run's rows).
func (db *DB) SaveRecord(ctx context.Context, rec *history.Record) error {
	paramsJSON, err := json.Marshal(rec.Parameters)
	if err != nil {
		return fmt.Errorf("marshal parameters: %w", err)
	}

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO runs
		(simulation_id, start_time, parameters_json, event_count, saved_at)
		VALUES (?, ?, ?, ?, ?)`,
		rec.SimulationID, rec.StartTime.Format(time.RFC3339Nano), string(paramsJSON),
		len(rec.Events), time.Now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert run %s: %w", rec.SimulationID, err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE simulation_id = ?", rec.SimulationID); err != nil {
		return err
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO events
		(simulation_id, seq, timestamp, category, variant, details)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range rec.Events {
		_, err := stmt.ExecContext(ctx,
			rec.SimulationID, i, e.Timestamp.Format(time.RFC3339Nano),
			e.Type.CategoryName(), e.Type.VariantName(), e.Details,
		)
		if err != nil {
			return fmt.Errorf("insert event %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Debug("run archived", "simulation_id", rec.SimulationID, "events", len(rec.Events))
	return nil
}

// Runs lists archived runs, newest first.
func (db *DB) Runs(ctx context.Context) ([]RunSummary, error) {
	var runs []RunSummary
	err := db.conn.SelectContext(ctx, &runs,
		"SELECT simulation_id, start_time, event_count, saved_at FROM runs ORDER BY start_time DESC")
	return runs, err
}

// RecentEvents returns the most recent N events of a run, newest first.
func (db *DB) RecentEvents(ctx context.Context, simulationID string, limit int) ([]events.Event, error) {
	var rows []eventRow
	err := db.conn.SelectContext(ctx, &rows,
		`SELECT seq, timestamp, category, variant, details FROM events
		 WHERE simulation_id = ? ORDER BY seq DESC LIMIT ?`,
		simulationID, limit,
	)
	if err != nil {
		return nil, err
	}
	return decodeEvents(rows)
}

// CountEvents counts a run's events of one type.
func (db *DB) CountEvents(ctx context.Context, simulationID string, t events.EventType) (int, error) {
	var n int
	err := db.conn.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM events WHERE simulation_id = ? AND category = ? AND variant = ?",
		simulationID, t.CategoryName(), t.VariantName(),
	)
	return n, err
}

// LoadRecord rebuilds a full record from the archive.
func (db *DB) LoadRecord(ctx context.Context, simulationID string) (*history.Record, error) {
	var run runRow
	err := db.conn.GetContext(ctx, &run,
		"SELECT simulation_id, start_time, parameters_json FROM runs WHERE simulation_id = ?",
		simulationID,
	)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", simulationID, err)
	}

	rec := &history.Record{SimulationID: run.SimulationID}
	if rec.StartTime, err = time.Parse(time.RFC3339Nano, run.StartTime); err != nil {
		return nil, fmt.Errorf("parse start time: %w", err)
	}
	var params config.SimulationParams
	if err := json.Unmarshal([]byte(run.ParametersJSON), &params); err != nil {
		return nil, fmt.Errorf("decode parameters: %w", err)
	}
	rec.Parameters = params

	var rows []eventRow
	err = db.conn.SelectContext(ctx, &rows,
		`SELECT seq, timestamp, category, variant, details FROM events
		 WHERE simulation_id = ? ORDER BY seq ASC`,
		simulationID,
	)
	if err != nil {
		return nil, fmt.Errorf("load events: %w", err)
	}
	if rec.Events, err = decodeEvents(rows); err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeEvents(rows []eventRow) ([]events.Event, error) {
	out := make([]events.Event, 0, len(rows))
	for _, r := range rows {
		ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("event %d timestamp: %w", r.Seq, err)
		}
		et, err := events.ParseEventType(r.Category, r.Variant)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", r.Seq, err)
		}
		out = append(out, events.Event{Timestamp: ts, Type: et, Details: r.Details})
	}
	return out, nil
}
