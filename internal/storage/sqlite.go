// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultDBPath is where run results are stored unless overridden.
const DefaultDBPath = "~/.quizrunner/scores.db"

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunResult is one finished game run.
type RunResult struct {
	ID           int64
	Deck         string
	Score        int
	Answered     int
	Correct      int
	AccuracyPct  int
	DurationSecs int
	CreatedAt    time.Time
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
			deck TEXT NOT NULL,
			score INTEGER NOT NULL,
			answered INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0,
			accuracy_pct INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_deck ON runs(deck);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(deck, score DESC);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (deck, score, answered, correct, accuracy_pct, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Deck, r.Score, r.Answered, r.Correct, r.AccuracyPct, r.DurationSecs,
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

// TopRuns retrieves the top N runs for the given deck, ordered by score
// descending. An empty deck selects runs across all decks.
func (s *Store) TopRuns(deck string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, deck, score, answered, correct, accuracy_pct, duration_secs, created_at
		 FROM runs ORDER BY score DESC LIMIT ?`
	args := []any{limit}
	if deck != "" {
		query = `SELECT id, deck, score, answered, correct, accuracy_pct, duration_secs, created_at
			 FROM runs WHERE deck = ? ORDER BY score DESC LIMIT ?`
		args = []any{deck, limit}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// scanRun reads one run row, tolerating both time.Time and string datetimes.
func scanRun(rows *sql.Rows) (RunResult, error) {
	var r RunResult
	var createdAt any
	if err := rows.Scan(&r.ID, &r.Deck, &r.Score, &r.Answered, &r.Correct,
		&r.AccuracyPct, &r.DurationSecs, &createdAt); err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseDBTime(createdAt)
	return r, nil
}

// parseDBTime handles the driver returning datetimes as either type.
func parseDBTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given deck, or 0 if no runs
// exist. An empty deck selects across all decks.
func (s *Store) HighScore(deck string) (int, error) {
	var score sql.NullInt64
	var err error
	if deck == "" {
		err = s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score)
	} else {
		err = s.db.QueryRow("SELECT MAX(score) FROM runs WHERE deck = ?", deck).Scan(&score)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// DeckStats contains aggregated statistics for one deck.
type DeckStats struct {
	Deck        string
	RunsCount   int
	HighScore   int
	AvgScore    float64
	AvgAccuracy float64
	LastPlayed  time.Time
}

// GetDeckStats retrieves aggregated statistics for a specific deck.
func (s *Store) GetDeckStats(deck string) (*DeckStats, error) {
	stats := &DeckStats{Deck: deck}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(AVG(accuracy_pct), 0)
		 FROM runs WHERE deck = ?`,
		deck,
	).Scan(&stats.RunsCount, &stats.HighScore, &stats.AvgScore, &stats.AvgAccuracy)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get deck stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE deck = ? ORDER BY created_at DESC LIMIT 1`,
		deck,
	).Scan(&lastPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseDBTime(lastPlayed)
	}

	return stats, nil
}

// GetAllDeckStats retrieves statistics for every deck that has been played.
func (s *Store) GetAllDeckStats() (map[string]*DeckStats, error) {
	rows, err := s.db.Query(
		`SELECT deck, COUNT(*), MAX(score), AVG(score), AVG(accuracy_pct), MAX(created_at)
		 FROM runs
		 GROUP BY deck`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all deck stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*DeckStats)
	for rows.Next() {
		var d DeckStats
		var lastPlayed any
		if err := rows.Scan(&d.Deck, &d.RunsCount, &d.HighScore, &d.AvgScore, &d.AvgAccuracy, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		d.LastPlayed = parseDBTime(lastPlayed)
		stats[d.Deck] = &d
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// ClearRuns deletes all runs for the given deck, or every run when deck is
// empty.
func (s *Store) ClearRuns(deck string) error {
	var err error
	if deck == "" {
		_, err = s.db.Exec("DELETE FROM runs")
	} else {
		_, err = s.db.Exec("DELETE FROM runs WHERE deck = ?", deck)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
