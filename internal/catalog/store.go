// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog keeps the scraped timeline events in a SQLite database so
// the timeline UI can page through them and group them by era.
package catalog

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/archive-timeline/pkg/types"
)

const (
	dbFile            = "timeline.db"
	defaultMaxResults = 25
)

// Store manages the event catalog database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Entry is a catalogued event with its identity and position.
type Entry struct {
	ID       string `json:"id" yaml:"id"`
	Position int    `json:"position" yaml:"position"`
	types.Event
}

// EraCount is the number of catalogued events in one era.
type EraCount struct {
	Era   string `json:"era" yaml:"era"`
	Count int    `json:"count" yaml:"count"`
}

// QueryOptions filters and pages a listing. Zero values disable a filter.
type QueryOptions struct {
	Era      string
	YearFrom int
	YearTo   int

	// Query matches title or description, case-insensitively.
	Query string

	// Limit caps the page size. Zero uses the store default.
	Limit  int
	Offset int
}

// Open opens or creates dir/timeline.db and ensures the schema exists.
func Open(cfg types.CatalogConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			position INTEGER PRIMARY KEY,
			id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL,
			year INTEGER NOT NULL,
			era TEXT NOT NULL,
			image_url TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_era ON events(era)`,
		`CREATE INDEX IF NOT EXISTS idx_events_year ON events(year)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// EventID derives a stable identifier from an event's title and image URL.
func EventID(e types.Event) string {
	sum := sha256.Sum256([]byte(e.Title + "\x00" + e.ImageURL))
	return hex.EncodeToString(sum[:])[:16]
}

// Load replaces the catalog contents with events, keeping their order.
// It returns the number of events stored.
func (s *Store) Load(ctx context.Context, events []types.Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM events`); err != nil {
		return 0, fmt.Errorf("clearing events: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO events (position, id, title, description, year, era, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range events {
		if _, err := stmt.ExecContext(ctx,
			i, EventID(e), e.Title, e.Description, e.Year, e.Era, e.ImageURL,
		); err != nil {
			return 0, fmt.Errorf("inserting event %q: %w", e.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing events: %w", err)
	}
	return len(events), nil
}

// List returns catalogued events matching opts in their original order.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT position, id, title, description, year, era, image_url
		FROM events
		WHERE 1=1`)

	if opts.Era != "" {
		qb.WriteString(` AND era = ?`)
		args = append(args, opts.Era)
	}
	if opts.YearFrom > 0 {
		qb.WriteString(` AND year >= ?`)
		args = append(args, opts.YearFrom)
	}
	if opts.YearTo > 0 {
		qb.WriteString(` AND year <= ?`)
		args = append(args, opts.YearTo)
	}
	if opts.Query != "" {
		qb.WriteString(` AND (instr(lower(title), lower(?)) > 0 OR instr(lower(description), lower(?)) > 0)`)
		args = append(args, opts.Query, opts.Query)
	}

	qb.WriteString(` ORDER BY position LIMIT ? OFFSET ?`)
	args = append(args, limit, max(opts.Offset, 0))

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Position, &e.ID, &e.Title, &e.Description, &e.Year, &e.Era, &e.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Eras returns each era with its event count, in order of first appearance.
func (s *Store) Eras(ctx context.Context) ([]EraCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT era, COUNT(*) FROM events GROUP BY era ORDER BY MIN(position)`)
	if err != nil {
		return nil, fmt.Errorf("querying eras: %w", err)
	}
	defer rows.Close()

	eras := []EraCount{}
	for rows.Next() {
		var ec EraCount
		if err := rows.Scan(&ec.Era, &ec.Count); err != nil {
			return nil, fmt.Errorf("scanning era: %w", err)
		}
		eras = append(eras, ec)
	}
	return eras, rows.Err()
}

// Count returns the number of catalogued events.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting events: %w", err)
	}
	return n, nil
}

// ReadEvents parses an events file written by the scrape pipeline.
func ReadEvents(path string) ([]types.Event, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading events %s: %w", path, err)
	}
	var events []types.Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("parsing events %s: %w", path, err)
	}
	return events, nil
}
