package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/qjroberts/xenforo-scraper/internal/forum"
)

// schema is applied on every open; creation is idempotent. No uniqueness
// constraints: duplicate rows on re-runs are a documented limitation. A
// uniqueness key on guid plus upsert writes would make re-runs idempotent
// without touching the traversal.
const schema = `
CREATE TABLE IF NOT EXISTS threads (
    title TEXT NOT NULL,
    url   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS posts (
    title       TEXT,
    description TEXT,
    date        TEXT,
    link        TEXT,
    guid        TEXT,
    author      TEXT,
    number      INTEGER,
    likes       INTEGER NOT NULL DEFAULT 0
);
`

// SQLite is a RecordStore backed by a single SQLite file. Sibling traversal
// branches write concurrently with no higher-level coordination, so the
// store serializes its own writes.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (creating if absent) the archive database at path. ":memory:"
// works for tests.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	// One connection: keeps ":memory:" databases coherent and lets SQLite
	// see writes in a single serialized stream.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

// SaveThread persists one thread record.
func (s *SQLite) SaveThread(ctx context.Context, t *forum.Thread) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO threads (title, url) VALUES (?, ?)`, t.Title, t.URL)
	if err != nil {
		return fmt.Errorf("store: save thread %q: %w", t.Title, err)
	}
	return nil
}

// SavePost persists one post record. Dates are stored as RFC 3339 strings;
// a zero post number is stored as NULL.
func (s *SQLite) SavePost(ctx context.Context, p *forum.PostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var number sql.NullInt64
	if p.Number > 0 {
		number = sql.NullInt64{Int64: int64(p.Number), Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO posts (title, description, date, link, guid, author, number, likes)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Description, p.Date.Format(time.RFC3339), p.Link, p.GUID,
		p.Author, number, p.Likes)
	if err != nil {
		return fmt.Errorf("store: save post %q: %w", p.GUID, err)
	}
	return nil
}

// Counts reports how many thread and post records the archive holds.
func (s *SQLite) Counts(ctx context.Context) (threads, posts int64, err error) {
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM threads`).Scan(&threads); err != nil {
		return 0, 0, fmt.Errorf("store: count threads: %w", err)
	}
	if err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&posts); err != nil {
		return 0, 0, fmt.Errorf("store: count posts: %w", err)
	}
	return threads, posts, nil
}

// RecentPosts returns up to limit of the most recently dated posts, newest
// first. Used by the status command.
func (s *SQLite) RecentPosts(ctx context.Context, limit int) ([]forum.PostRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title, author, date, guid, COALESCE(number, 0), likes
         FROM posts ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: recent posts: %w", err)
	}
	defer rows.Close()

	var posts []forum.PostRecord
	for rows.Next() {
		var p forum.PostRecord
		var date string
		if err := rows.Scan(&p.Title, &p.Author, &date, &p.GUID, &p.Number, &p.Likes); err != nil {
			return nil, fmt.Errorf("store: scan post: %w", err)
		}
		p.Date, _ = time.Parse(time.RFC3339, date)
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// Close releases the database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}
