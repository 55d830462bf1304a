// Package storage keeps a ledger of finished runs for the lifetime of the process.
// It uses an in-memory database from the pure-Go modernc.org/sqlite driver; nothing
// is written to disk, so scores never outlive the process.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Ledger records finished runs in an in-memory SQLite database.
// It is safe for concurrent use by multiple sessions.
type Ledger struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID          int64
	Player      string // SSH user name, or empty for local play
	Score       float64
	Ticks       uint64
	PipesPassed int
	Cause       string // "pipe" or "floor"
	EndedAt     time.Time
}

// Stats summarizes all recorded runs.
type Stats struct {
	Runs        int
	Best        float64
	Average     float64
	TotalPipes  int
	TotalTicks  uint64
	FloorDeaths int
	PipeDeaths  int
}

// OpenMemory creates an empty in-memory ledger.
func OpenMemory() (*Ledger, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// Every new connection to :memory: would see its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return l, nil
}

// migrate creates the schema.
func (l *Ledger) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL DEFAULT '',
			score REAL NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			pipes_passed INTEGER NOT NULL DEFAULT 0,
			cause TEXT NOT NULL DEFAULT '',
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
	`
	_, err := l.db.Exec(schema)
	return err
}

// Close releases the database; all recorded runs are discarded.
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// RecordRun stores a finished run and returns its ID.
// A zero EndedAt is replaced with the current time.
func (l *Ledger) RecordRun(r RunRecord) (int64, error) {
	if r.EndedAt.IsZero() {
		r.EndedAt = time.Now()
	}

	result, err := l.db.Exec(
		`INSERT INTO runs (player, score, ticks, pipes_passed, cause, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Player, r.Score, int64(r.Ticks), r.PipesPassed, r.Cause, r.EndedAt.UnixNano(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (l *Ledger) RecentRuns(limit int) ([]RunRecord, error) {
	return l.queryRuns(`ORDER BY id DESC LIMIT ?`, limit)
}

// TopRuns returns up to limit runs, best score first; ties go to the earlier run.
func (l *Ledger) TopRuns(limit int) ([]RunRecord, error) {
	return l.queryRuns(`ORDER BY score DESC, id ASC LIMIT ?`, limit)
}

func (l *Ledger) queryRuns(order string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := l.db.Query(
		`SELECT id, player, score, ticks, pipes_passed, cause, ended_at FROM runs `+order,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r       RunRecord
			ticks   int64
			endedAt int64
		)
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &ticks, &r.PipesPassed, &r.Cause, &endedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Ticks = uint64(ticks)
		r.EndedAt = time.Unix(0, endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Best returns the highest recorded score, or 0 when no runs exist.
func (l *Ledger) Best() (float64, error) {
	var best sql.NullFloat64
	if err := l.db.QueryRow(`SELECT MAX(score) FROM runs`).Scan(&best); err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return best.Float64, nil
}

// Stats aggregates all recorded runs.
func (l *Ledger) Stats() (Stats, error) {
	var (
		s     Stats
		best  sql.NullFloat64
		avg   sql.NullFloat64
		pipes sql.NullInt64
		ticks sql.NullInt64
		floor sql.NullInt64
		hit   sql.NullInt64
	)
	err := l.db.QueryRow(`
		SELECT COUNT(*), MAX(score), AVG(score), SUM(pipes_passed), SUM(ticks),
		       SUM(CASE WHEN cause = 'floor' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN cause = 'pipe' THEN 1 ELSE 0 END)
		FROM runs`,
	).Scan(&s.Runs, &best, &avg, &pipes, &ticks, &floor, &hit)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot query stats: %w", err)
	}

	s.Best = best.Float64
	s.Average = avg.Float64
	s.TotalPipes = int(pipes.Int64)
	s.TotalTicks = uint64(ticks.Int64)
	s.FloorDeaths = int(floor.Int64)
	s.PipeDeaths = int(hit.Int64)
	return s, nil
}
