// Package storage provides SQLite-based persistence for the history of
// played colonies. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is the summary of one finished colony session.
type Run struct {
	ID         int64
	Scenario   string
	City       string
	Player     string
	Seed       int64
	Days       int
	EndDate    string
	Gold       float64
	Population int
	Outcome    string
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			city TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL,
			days INTEGER NOT NULL,
			end_date TEXT NOT NULL DEFAULT '',
			gold REAL NOT NULL,
			population INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
		CREATE INDEX IF NOT EXISTS idx_runs_best ON runs(scenario, population DESC);

		CREATE TABLE IF NOT EXISTS run_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			message TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_run_events_run ON run_events(run_id, seq);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (scenario, city, player, seed, days, end_date, gold, population, outcome)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario, r.City, r.Player, r.Seed, r.Days, r.EndDate, r.Gold, r.Population, r.Outcome,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveEvents stores the event log lines of a run in order.
func (s *Store) SaveEvents(runID int64, messages []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO run_events (run_id, seq, message) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("storage: cannot prepare event insert: %w", err)
	}
	defer stmt.Close()

	for i, msg := range messages {
		if _, err := stmt.Exec(runID, i, msg); err != nil {
			tx.Rollback()
			return fmt.Errorf("storage: cannot save event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit events: %w", err)
	}
	return nil
}

// RunEvents returns the event log lines stored for a run.
func (s *Store) RunEvents(runID int64) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT message FROM run_events WHERE run_id = ? ORDER BY seq",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query events: %w", err)
	}
	defer rows.Close()

	var messages []string
	for rows.Next() {
		var msg string
		if err := rows.Scan(&msg); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return messages, nil
}

const runColumns = `id, scenario, city, player, seed, days, end_date, gold, population, outcome, created_at`

// RecentRuns retrieves the most recent runs, newest first.
// An empty scenario matches every scenario.
func (s *Store) RecentRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR scenario = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// BestRuns retrieves the runs of a scenario that reached the largest
// population.
func (s *Store) BestRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY population DESC, id ASC
		 LIMIT ?`,
		scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Scenario,
			&r.City,
			&r.Player,
			&r.Seed,
			&r.Days,
			&r.EndDate,
			&r.Gold,
			&r.Population,
			&r.Outcome,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario     string
	Runs         int
	BestPop      int
	AvgPop       float64
	TotalDays    int64
	Bankruptcies int
	LastPlayed   time.Time
}

// Stats retrieves aggregated statistics for a scenario.
func (s *Store) Stats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(population), 0), COALESCE(AVG(population), 0),
		        COALESCE(SUM(days), 0), COALESCE(SUM(outcome = 'bankrupt'), 0)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Runs, &stats.BestPop, &stats.AvgPop, &stats.TotalDays, &stats.Bankruptcies)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scenario = ? ORDER BY id DESC LIMIT 1`,
		scenario,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}
