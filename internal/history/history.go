// Package history persists analysis runs to a local SQLite database so past
// assessments can be listed and compared.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/poliscan/poliscan/internal/model"
)

// Entry is one recorded analysis run.
type Entry struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Score     float64   `json:"score"`
	Level     string    `json:"level"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is a SQLite-backed history of analysis runs.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	score REAL NOT NULL,
	level TEXT NOT NULL,
	items INTEGER NOT NULL,
	result TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one assessment and returns its run ID.
func (s *Store) Record(source string, result *model.RiskAssessmentResult) (string, error) {
	now := time.Now().UTC()
	id := ulid.Make().String()

	raw, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("encode result: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO runs (id, source, score, level, items, result, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, source, result.Score, string(result.Level), len(result.Items), string(raw), now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// Recent returns the most recent n runs, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if n <= 0 {
		n = 20
	}
	rows, err := s.db.Query(
		`SELECT id, source, score, level, items, created_at FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Source, &e.Score, &e.Level, &e.Items, &created); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Result loads the full stored assessment for a run ID.
func (s *Store) Result(id string) (*model.RiskAssessmentResult, error) {
	var raw string
	err := s.db.QueryRow(`SELECT result FROM runs WHERE id = ?`, id).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}

	var result model.RiskAssessmentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("decode run %s: %w", id, err)
	}
	return &result, nil
}
