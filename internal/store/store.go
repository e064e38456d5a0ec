// Package store is a host-side sink that persists the items a parse
// produced, keyed by ingest attempt. The parser core itself persists
// nothing; this exists so the CLI can keep and inspect its output.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/belga/newswire/pkg/newswire/feed"
	"github.com/belga/newswire/pkg/newswire/item"
)

// Attempt is one recorded parse call.
type Attempt struct {
	ID        string
	Parser    string
	Provider  string
	CreatedAt time.Time
	ItemCount int
}

// Store writes attempts and their items to a SQLite database.
type Store struct {
	db      *sql.DB
	entropy *ulid.MonotonicEntropy
}

// Open opens (creating if needed) the sink database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, entropy: ulid.Monotonic(rand.Reader, 0)}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS attempts (
	id TEXT PRIMARY KEY,
	parser TEXT NOT NULL,
	provider TEXT NOT NULL,
	created_at TEXT NOT NULL,
	item_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
	attempt_id TEXT NOT NULL,
	guid TEXT NOT NULL,
	body TEXT NOT NULL,
	FOREIGN KEY(attempt_id) REFERENCES attempts(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS items_by_attempt ON items(attempt_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Record stores one parse result and returns the new attempt id.
func (s *Store) Record(ctx context.Context, parser string, provider feed.Provider, res feed.Result) (string, error) {
	id := ulid.MustNew(ulid.Now(), s.entropy).String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO attempts (id, parser, provider, created_at, item_count) VALUES (?, ?, ?, ?, ?)",
		id, parser, provider.Name, time.Now().UTC().Format(time.RFC3339), len(res.Items))
	if err != nil {
		return "", err
	}

	for _, it := range res.Items {
		body, err := json.Marshal(it)
		if err != nil {
			return "", err
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO items (attempt_id, guid, body) VALUES (?, ?, ?)",
			id, it.GUID, string(body))
		if err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// Attempts returns the most recent attempts, newest first.
func (s *Store) Attempts(ctx context.Context, limit int) ([]Attempt, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, parser, provider, created_at, item_count FROM attempts ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var created string
		if err := rows.Scan(&a.ID, &a.Parser, &a.Provider, &created, &a.ItemCount); err != nil {
			return nil, err
		}
		a.CreatedAt, _ = time.Parse(time.RFC3339, created)
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// Items returns the items recorded under one attempt.
func (s *Store) Items(ctx context.Context, attemptID string) ([]item.Item, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT body FROM items WHERE attempt_id = ? ORDER BY rowid", attemptID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []item.Item
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var it item.Item
		if err := json.Unmarshal([]byte(body), &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
