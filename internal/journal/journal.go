// Package journal keeps a SQLite log of peek state transitions.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// ErrClosed is returned by operations on a closed journal
var ErrClosed = errors.New("journal closed")

const schema = `
	CREATE TABLE IF NOT EXISTS transitions (
		id    INTEGER PRIMARY KEY AUTOINCREMENT,
		state TEXT    NOT NULL,
		at    INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS transitions_at ON transitions(at);
`

// Transition is one recorded state change
type Transition struct {
	ID    int64
	State string
	At    time.Time
}

// Summary aggregates the journal
type Summary struct {
	Counts map[string]int
	Total  int
	Last   time.Time
}

// Journal appends transitions to a SQLite database
type Journal struct {
	mu     sync.Mutex
	db     *sql.DB
	closed bool
}

// Open opens or creates the journal database at path
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?_journal_mode=WAL&_busy_timeout=2000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	// One writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record appends a transition
func (j *Journal) Record(ctx context.Context, state string, at time.Time) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO transitions (state, at) VALUES (?, ?)`,
		state, at.UnixMilli())
	if err != nil {
		return fmt.Errorf("record transition: %w", err)
	}
	return nil
}

// Summary counts transitions per state, optionally only those at or after since
func (j *Journal) Summary(ctx context.Context, since time.Time) (Summary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return Summary{}, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT state, COUNT(*), MAX(at)
		FROM transitions
		WHERE at >= ?
		GROUP BY state
	`, sinceMillis(since))
	if err != nil {
		return Summary{}, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	s := Summary{Counts: make(map[string]int)}
	for rows.Next() {
		var state string
		var count int
		var last int64
		if err := rows.Scan(&state, &count, &last); err != nil {
			return Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		s.Counts[state] = count
		s.Total += count
		if t := time.UnixMilli(last); t.After(s.Last) {
			s.Last = t
		}
	}
	return s, rows.Err()
}

// Recent returns up to limit transitions, newest first
func (j *Journal) Recent(ctx context.Context, limit int) ([]Transition, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.QueryContext(ctx, `
		SELECT id, state, at
		FROM transitions
		ORDER BY at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}
	defer rows.Close()

	var out []Transition
	for rows.Next() {
		var t Transition
		var at int64
		if err := rows.Scan(&t.ID, &t.State, &at); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		t.At = time.UnixMilli(at)
		out = append(out, t)
	}
	return out, rows.Err()
}

// Prune deletes transitions older than before and reports how many went
func (j *Journal) Prune(ctx context.Context, before time.Time) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}

	res, err := j.db.ExecContext(ctx, `DELETE FROM transitions WHERE at < ?`, before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune journal: %w", err)
	}
	return res.RowsAffected()
}

// Close closes the database
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

func sinceMillis(since time.Time) int64 {
	if since.IsZero() {
		return 0
	}
	return since.UnixMilli()
}
