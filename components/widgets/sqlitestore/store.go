// Package sqlitestore persists widget pages in SQLite through modernc.org/sqlite.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-widgets/components/widgets"
	_ "modernc.org/sqlite"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const schema = `
CREATE TABLE IF NOT EXISTS widget_pages (
	id          TEXT PRIMARY KEY,
	slug        TEXT NOT NULL DEFAULT '',
	title       TEXT NOT NULL DEFAULT '',
	config      TEXT NOT NULL,
	metadata    TEXT NOT NULL DEFAULT '{}',
	updated_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS widget_pages_slug ON widget_pages(slug);
`

// Store implements widgets.PageStore on a *sql.DB.
type Store struct {
	db *sql.DB
}

var _ widgets.PageStore = (*Store)(nil)

// Open opens (or creates) a SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: open %s: %w", dsn, err)
	}
	if dsn == ":memory:" {
		db.SetMaxOpenConns(1)
	}
	store, err := New(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// New wraps an existing database and applies the schema.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("sqlitestore: db is nil")
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("sqlitestore: migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save upserts a page.
func (s *Store) Save(ctx context.Context, page widgets.Page) (widgets.Page, error) {
	page.ID = strings.TrimSpace(page.ID)
	if page.ID == "" {
		return widgets.Page{}, errors.New("sqlitestore: page id is required")
	}
	config, err := json.Marshal(page.Config)
	if err != nil {
		return widgets.Page{}, fmt.Errorf("sqlitestore: encode config: %w", err)
	}
	metadata, err := encodeMetadata(page.Metadata)
	if err != nil {
		return widgets.Page{}, err
	}
	if page.UpdatedAt.IsZero() {
		page.UpdatedAt = time.Now().UTC()
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO widget_pages (id, slug, title, config, metadata, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	slug = excluded.slug,
	title = excluded.title,
	config = excluded.config,
	metadata = excluded.metadata,
	updated_at = excluded.updated_at`,
		page.ID, page.Slug, page.Title, string(config), metadata, page.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return widgets.Page{}, fmt.Errorf("sqlitestore: save %s: %w", page.ID, err)
	}
	return page, nil
}

// Get loads a page or returns widgets.ErrPageNotFound.
func (s *Store) Get(ctx context.Context, id string) (widgets.Page, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, slug, title, config, metadata, updated_at FROM widget_pages WHERE id = ?`,
		strings.TrimSpace(id))
	page, err := scanPage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return widgets.Page{}, widgets.ErrPageNotFound
	}
	return page, err
}

// Delete removes a page or returns widgets.ErrPageNotFound.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM widget_pages WHERE id = ?`, strings.TrimSpace(id))
	if err != nil {
		return fmt.Errorf("sqlitestore: delete %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlitestore: delete %s: %w", id, err)
	}
	if n == 0 {
		return widgets.ErrPageNotFound
	}
	return nil
}

// List returns every page ordered by id.
func (s *Store) List(ctx context.Context) ([]widgets.Page, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, slug, title, config, metadata, updated_at FROM widget_pages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlitestore: list: %w", err)
	}
	defer rows.Close()
	var out []widgets.Page
	for rows.Next() {
		page, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, page)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPage(row scanner) (widgets.Page, error) {
	var (
		page     widgets.Page
		config   string
		metadata string
		updated  string
	)
	if err := row.Scan(&page.ID, &page.Slug, &page.Title, &config, &metadata, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return widgets.Page{}, err
		}
		return widgets.Page{}, fmt.Errorf("sqlitestore: scan: %w", err)
	}
	if err := json.Unmarshal([]byte(config), &page.Config); err != nil {
		return widgets.Page{}, fmt.Errorf("sqlitestore: decode config %s: %w", page.ID, err)
	}
	if metadata != "" && metadata != "{}" {
		if err := json.Unmarshal([]byte(metadata), &page.Metadata); err != nil {
			return widgets.Page{}, fmt.Errorf("sqlitestore: decode metadata %s: %w", page.ID, err)
		}
	}
	ts, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return widgets.Page{}, fmt.Errorf("sqlitestore: parse updated_at %s: %w", page.ID, err)
	}
	page.UpdatedAt = ts
	return page, nil
}

func encodeMetadata(meta map[string]any) (string, error) {
	if len(meta) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return "", fmt.Errorf("sqlitestore: encode metadata: %w", err)
	}
	return string(data), nil
}
