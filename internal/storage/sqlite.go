// Package storage provides SQLite-based persistence for best-ever records,
// player preferences and the history of finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/deadpixel/internal/config"
	"github.com/vovakirdan/deadpixel/internal/session"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("storage: not found")

// Record keys.
const (
	keyHighScore           = "high_score"
	keyHighestLevel        = "highest_level"
	keyTotalAnomaliesFound = "total_anomalies_found"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sqlx.DB
}

// Store is the persistence collaborator of a play session.
var _ session.Recorder = (*Store)(nil)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; serializing here avoids SQLITE_BUSY between
	// the session recorder and the CLI.
	db.SetMaxOpenConns(1)

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
			run_id TEXT NOT NULL UNIQUE,
			score INTEGER NOT NULL,
			level INTEGER NOT NULL,
			difficulty TEXT NOT NULL,
			anomalies_found INTEGER NOT NULL DEFAULT 0,
			taps INTEGER NOT NULL DEFAULT 0,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_ended_at ON runs(ended_at DESC);

		CREATE TABLE IF NOT EXISTS records (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS preferences (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);
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

// RecordHighScore stores score if it beats the current high score.
func (s *Store) RecordHighScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		keyHighScore, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update high score: %w", err)
	}
	return nil
}

// RecordHighestLevel stores level if it is beyond the highest level reached.
func (s *Store) RecordHighestLevel(level int) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, MAX(?, 1))
		 ON CONFLICT(key) DO UPDATE SET value = MAX(value, excluded.value)`,
		keyHighestLevel, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update highest level: %w", err)
	}
	return nil
}

// RecordAnomalyFound adds count to the lifetime anomaly counter.
func (s *Store) RecordAnomalyFound(count int) error {
	_, err := s.db.Exec(
		`INSERT INTO records (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = value + excluded.value`,
		keyTotalAnomaliesFound, count,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot increment anomalies found: %w", err)
	}
	return nil
}

// Records are the best-ever values across all runs.
type Records struct {
	HighScore           int
	HighestLevel        int
	TotalAnomaliesFound int
}

// Records returns the best-ever values. Missing values read as 0, except
// the highest level which starts at 1.
func (s *Store) Records() (Records, error) {
	rec := Records{HighestLevel: 1}

	var rows []struct {
		Key   string `db:"key"`
		Value int    `db:"value"`
	}
	if err := s.db.Select(&rows, "SELECT key, value FROM records"); err != nil {
		return rec, fmt.Errorf("storage: cannot query records: %w", err)
	}

	for _, r := range rows {
		switch r.Key {
		case keyHighScore:
			rec.HighScore = r.Value
		case keyHighestLevel:
			rec.HighestLevel = max(r.Value, 1)
		case keyTotalAnomaliesFound:
			rec.TotalAnomaliesFound = r.Value
		}
	}
	return rec, nil
}

// HighScore returns the best score ever recorded, or 0.
func (s *Store) HighScore() (int, error) {
	rec, err := s.Records()
	return rec.HighScore, err
}

// ResetRecords clears the best-ever values.
func (s *Store) ResetRecords() error {
	if _, err := s.db.Exec("DELETE FROM records"); err != nil {
		return fmt.Errorf("storage: cannot reset records: %w", err)
	}
	return nil
}

// RunEntry is one finished run from the history.
type RunEntry struct {
	ID             int64  `db:"id"`
	RunID          string `db:"run_id"`
	Score          int    `db:"score"`
	Level          int    `db:"level"`
	Difficulty     string `db:"difficulty"`
	AnomaliesFound int    `db:"anomalies_found"`
	Taps           int    `db:"taps"`
	EndedAtMillis  int64  `db:"ended_at"`
}

// EndedAt returns when the run finished.
func (e RunEntry) EndedAt() time.Time {
	return time.UnixMilli(e.EndedAtMillis)
}

const runColumns = "id, run_id, score, level, difficulty, anomalies_found, taps, ended_at"

// RecordRun appends a finished run to the history.
func (s *Store) RecordRun(run session.Run) error {
	_, err := s.SaveRun(run)
	return err
}

// SaveRun appends a finished run and returns its row id.
func (s *Store) SaveRun(run session.Run) (int64, error) {
	endedAt := run.EndedAt
	if endedAt.IsZero() {
		endedAt = time.Now()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (run_id, score, level, difficulty, anomalies_found, taps, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Score, run.Level, run.Difficulty.String(), run.AnomaliesFound, run.Taps, endedAt.UnixMilli(),
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

// TopRuns returns the best runs, highest score first.
func (s *Store) TopRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	var entries []RunEntry
	err := s.db.Select(&entries,
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, ended_at ASC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return entries, nil
}

// RecentRuns returns the latest runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	var entries []RunEntry
	err := s.db.Select(&entries,
		`SELECT `+runColumns+` FROM runs ORDER BY ended_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return entries, nil
}

// RunByID returns the run with the given run id.
func (s *Store) RunByID(runID string) (RunEntry, error) {
	var e RunEntry
	err := s.db.Get(&e, `SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID)
	if errors.Is(err, sql.ErrNoRows) {
		return e, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return e, nil
}

// ClearRuns deletes the run history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats aggregates the run history.
type Stats struct {
	Runs       int
	BestScore  int
	AvgScore   float64
	TotalScore int64
	BestLevel  int
	TotalTaps  int64
	LastPlayed time.Time // Zero when no run was recorded
}

// Stats returns aggregated statistics over all finished runs.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	var last sql.NullInt64

	row := s.db.QueryRowx(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(level), 0), COALESCE(SUM(taps), 0),
		        MAX(ended_at)
		 FROM runs`,
	)
	if err := row.Scan(&st.Runs, &st.BestScore, &st.AvgScore, &st.TotalScore, &st.BestLevel, &st.TotalTaps, &last); err != nil {
		return st, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	if last.Valid {
		st.LastPlayed = time.UnixMilli(last.Int64)
	}
	return st, nil
}
