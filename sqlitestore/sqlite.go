// Package sqlitestore implements the inventory and run stores on a local
// sqlite file, for running the agent without a Notion workspace.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"dinneragent"
)

type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) initSchema() error {
	schema := `
    CREATE TABLE IF NOT EXISTS inventory (
        page_id TEXT PRIMARY KEY,
        external_id TEXT NOT NULL,
        title TEXT NOT NULL,
        category TEXT NOT NULL,
        note TEXT NOT NULL DEFAULT '',
        in_stock INTEGER NOT NULL DEFAULT 1,
        last_used TEXT
    );

    CREATE TABLE IF NOT EXISTS runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        title TEXT NOT NULL,
        status TEXT NOT NULL,
        date_line TEXT NOT NULL DEFAULT '',
        meal1 TEXT NOT NULL DEFAULT '',
        meal2 TEXT NOT NULL DEFAULT '',
        meal3 TEXT NOT NULL DEFAULT '',
        encouragement TEXT NOT NULL DEFAULT '',
        raw_json TEXT NOT NULL DEFAULT '',
        created_at TEXT NOT NULL
    );

    CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
    `

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// AddItem seeds one inventory row. Only local setups and tests create items;
// the pipelines themselves never do.
func (s *Store) AddItem(ctx context.Context, item dinneragent.InventoryItem) error {
	var lastUsed any
	if item.LastUsed != nil {
		lastUsed = item.LastUsed.Format("2006-01-02")
	}
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO inventory (page_id, external_id, title, category, note, in_stock, last_used)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		item.PageID, item.ID, item.Title, string(item.Category), item.Note, boolToInt(item.InStock), lastUsed)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

func (s *Store) InStock(ctx context.Context) ([]dinneragent.InventoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT page_id, external_id, title, category, note, last_used
        FROM inventory WHERE in_stock = 1 ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	items := make([]dinneragent.InventoryItem, 0)
	for rows.Next() {
		var item dinneragent.InventoryItem
		var category string
		var lastUsed sql.NullString
		if err := rows.Scan(&item.PageID, &item.ID, &item.Title, &category, &item.Note, &lastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.Category = dinneragent.Category(category)
		item.InStock = true
		if lastUsed.Valid {
			if t, err := time.Parse("2006-01-02", lastUsed.String); err == nil {
				item.LastUsed = &t
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) MarkUsed(ctx context.Context, pageID string, day time.Time) error {
	_, err := s.db.ExecContext(ctx, `
        UPDATE inventory SET in_stock = 0, last_used = ? WHERE page_id = ?`,
		day.Format("2006-01-02"), pageID)
	if err != nil {
		return fmt.Errorf("failed to mark item used: %w", err)
	}
	return nil
}

func (s *Store) Create(ctx context.Context, run dinneragent.Run) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO runs (title, status, date_line, meal1, meal2, meal3, encouragement, raw_json, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Title, string(run.Status), run.DateLine, run.Meal1, run.Meal2, run.Meal3,
		run.Encouragement, run.RawJSON, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

func (s *Store) Latest(ctx context.Context) (dinneragent.Run, error) {
	row := s.db.QueryRowContext(ctx, `
        SELECT title, status, date_line, meal1, meal2, meal3, encouragement, raw_json, created_at
        FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)

	var run dinneragent.Run
	var status, createdAt string
	err := row.Scan(&run.Title, &status, &run.DateLine, &run.Meal1, &run.Meal2, &run.Meal3,
		&run.Encouragement, &run.RawJSON, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return dinneragent.Run{}, dinneragent.ErrNoRunFound
	}
	if err != nil {
		return dinneragent.Run{}, fmt.Errorf("failed to query latest run: %w", err)
	}

	run.Status = dinneragent.RunStatus(status)
	if t, perr := time.Parse(time.RFC3339Nano, createdAt); perr == nil {
		run.CreatedTime = t
	}
	return run, nil
}

// RunCount reports how many runs exist; handy for append-only assertions.
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&n)
	return n, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
