package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/calvinwijaya/blackjack-sim/internal/sim"
	_ "github.com/mattn/go-sqlite3"
)

var ErrRunNotFound = errors.New("run not found")

type Database struct {
	db *sql.DB
}

// PolicyStats aggregates every stored run of one playing strategy.
type PolicyStats struct {
	Policy   string    `json:"policy"`
	Runs     int       `json:"runs"`
	Hands    int64     `json:"hands"`
	Wins     int64     `json:"wins"`
	Staked   int64     `json:"staked"`
	Returned int64     `json:"returned"`
	LastRun  time.Time `json:"lastRun"`
}

// NewDatabase opens a SQLite database. Runs are kept in memory unless
// dsn names a file.
func NewDatabase(dsn string) (*Database, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	// An in-memory database lives as long as its last connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Database{db: db}, nil
}

// initTables creates the necessary tables if they don't exist
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			policy TEXT NOT NULL,
			threshold INTEGER NOT NULL DEFAULT 0,
			betting TEXT NOT NULL,
			hands INTEGER NOT NULL,
			wins INTEGER NOT NULL,
			staked INTEGER NOT NULL,
			returned INTEGER NOT NULL,
			completed_at TIMESTAMP NOT NULL,
			run_state TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("error creating runs table: %w", err)
	}

	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS runs_policy ON runs (policy)`)
	if err != nil {
		return fmt.Errorf("error creating runs index: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// SaveRun inserts or replaces a run
func (d *Database) SaveRun(run *sim.Run) error {
	runState, err := json.Marshal(run)
	if err != nil {
		return err
	}

	_, err = d.db.Exec(`
		INSERT INTO runs (id, policy, threshold, betting, hands, wins, staked, returned, completed_at, run_state)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET hands = excluded.hands, wins = excluded.wins, staked = excluded.staked,
			returned = excluded.returned, completed_at = excluded.completed_at, run_state = excluded.run_state
	`,
		run.ID, run.Scenario.Policy, run.Scenario.Threshold, run.Scenario.Betting,
		int64(run.Stats.Hands), int64(run.Stats.Wins), run.Stats.Staked, run.Stats.Returned,
		run.CompletedAt, string(runState))
	return err
}

// GetRun retrieves a run by ID
func (d *Database) GetRun(id string) (*sim.Run, error) {
	var runState string

	err := d.db.QueryRow(`SELECT run_state FROM runs WHERE id = ?`, id).Scan(&runState)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var run sim.Run
	if err := json.Unmarshal([]byte(runState), &run); err != nil {
		return nil, err
	}

	return &run, nil
}

// GetAllRuns returns all runs, most recent first
func (d *Database) GetAllRuns() ([]*sim.Run, error) {
	rows, err := d.db.Query(`SELECT run_state FROM runs ORDER BY completed_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []*sim.Run{}
	for rows.Next() {
		var runState string
		if err := rows.Scan(&runState); err != nil {
			return nil, err
		}

		var run sim.Run
		if err := json.Unmarshal([]byte(runState), &run); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}

// DeleteRun removes a run from the database
func (d *Database) DeleteRun(id string) error {
	res, err := d.db.Exec("DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRunNotFound
	}
	return nil
}

// GetPolicyStats sums every stored run played with policy
func (d *Database) GetPolicyStats(policy string) (*PolicyStats, error) {
	stats := PolicyStats{Policy: policy}
	var lastRun sql.NullString

	err := d.db.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(hands), 0), COALESCE(SUM(wins), 0),
			COALESCE(SUM(staked), 0), COALESCE(SUM(returned), 0), MAX(completed_at)
		FROM runs WHERE policy = ?
	`, policy).Scan(&stats.Runs, &stats.Hands, &stats.Wins, &stats.Staked, &stats.Returned, &lastRun)
	if err != nil {
		return nil, err
	}

	if lastRun.Valid {
		stats.LastRun, err = parseTimestamp(lastRun.String)
		if err != nil {
			return nil, fmt.Errorf("error reading last run of %s: %w", policy, err)
		}
	}

	return &stats, nil
}

// parseTimestamp reads the text form go-sqlite3 gives aggregated
// timestamps.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999",
		time.RFC3339Nano,
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
