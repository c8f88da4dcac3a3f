// Package history records API runs in a SQLite database so earlier results
// can be listed and fetched again.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Get for an unknown run ID.
var ErrNotFound = errors.New("run not found")

// DefaultListLimit bounds List when no limit is given.
const DefaultListLimit = 50

// Run is one stored request and its summarized result.
type Run struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	CreatedAt time.Time       `json:"createdAt"`
	Request   json.RawMessage `json:"request"`
	Result    json.RawMessage `json:"result"`
}

// Store persists runs. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS runs (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	kind TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	request TEXT NOT NULL,
	result TEXT NOT NULL
);`

// Open opens (or creates) the database at path. ":memory:" keeps the
// history in process.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Save stores request and result as JSON under a new run ID.
func (s *Store) Save(ctx context.Context, kind string, request, result any) (Run, error) {
	requestJSON, err := json.Marshal(request)
	if err != nil {
		return Run{}, fmt.Errorf("failed to encode request: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return Run{}, fmt.Errorf("failed to encode result: %w", err)
	}

	run := Run{
		ID:        uuid.NewString(),
		Kind:      kind,
		CreatedAt: s.now().UTC(),
		Request:   requestJSON,
		Result:    resultJSON,
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO runs (id, kind, created_at, request, result) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.Kind, run.CreatedAt.UnixNano(), string(run.Request), string(run.Result))
	if err != nil {
		return Run{}, fmt.Errorf("failed to insert run: %w", err)
	}
	return run, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Run{}, ErrNotFound
	}

	var (
		run       Run
		createdAt int64
		request   string
		result    string
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, kind, created_at, request, result FROM runs WHERE id = ?", id).
		Scan(&run.ID, &run.Kind, &createdAt, &request, &result)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNotFound
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to query run: %w", err)
	}
	run.CreatedAt = time.Unix(0, createdAt).UTC()
	run.Request = json.RawMessage(request)
	run.Result = json.RawMessage(result)
	return run, nil
}

// List returns up to limit runs, newest first, without their payloads.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, kind, created_at FROM runs ORDER BY seq DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var (
			run       Run
			createdAt int64
		)
		if err := rows.Scan(&run.ID, &run.Kind, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.CreatedAt = time.Unix(0, createdAt).UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return runs, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
