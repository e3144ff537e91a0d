// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package store owns the entity collections behind the sidebar.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/quillchat/quill-tui/internal/model"
)

// =============================================================================
// SQLITE DATABASE
// =============================================================================

// DB persists conversations, pins, and archive flags to a local SQLite
// database. It also serves the incremental loader's paged listing.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) the database at the given path and runs
// migrations.
func OpenDB(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &DB{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS conversations (
	id           TEXT PRIMARY KEY,
	title        TEXT NOT NULL DEFAULT '',
	last_message TEXT NOT NULL DEFAULT '',
	updated_at   TEXT NOT NULL DEFAULT '',
	pinned       INTEGER NOT NULL DEFAULT 0,
	archived     INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_conversations_updated
	ON conversations (updated_at DESC, id);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (d *DB) Close() error {
	return d.db.Close()
}

// =============================================================================
// WRITE OPERATIONS
// =============================================================================

// UpsertConversations inserts or updates conversations in one transaction.
func (d *DB) UpsertConversations(ctx context.Context, convs []model.Conversation) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO conversations (id, title, last_message, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title        = excluded.title,
			last_message = excluded.last_message,
			updated_at   = excluded.updated_at
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, c := range convs {
		if _, err := stmt.ExecContext(ctx, c.ID, c.Title, c.LastMessage,
			c.UpdatedAt.UTC().Format(time.RFC3339Nano)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetPinned updates a conversation's pin flag.
func (d *DB) SetPinned(ctx context.Context, id string, pinned bool) error {
	_, err := d.db.ExecContext(ctx,
		"UPDATE conversations SET pinned = ? WHERE id = ?", boolToInt(pinned), id)
	return err
}

// SetArchived updates a conversation's archive flag.
func (d *DB) SetArchived(ctx context.Context, id string, archived bool) error {
	_, err := d.db.ExecContext(ctx,
		"UPDATE conversations SET archived = ? WHERE id = ?", boolToInt(archived), id)
	return err
}

// Rename updates a conversation's title.
func (d *DB) Rename(ctx context.Context, id, title string) error {
	_, err := d.db.ExecContext(ctx,
		"UPDATE conversations SET title = ? WHERE id = ?", title, id)
	return err
}

// Delete removes a conversation row.
func (d *DB) Delete(ctx context.Context, id string) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM conversations WHERE id = ?", id)
	return err
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// ListPage returns one page of conversations, newest first. The (updated_at,
// id) ordering is total, so pages never overlap or skip rows between calls
// as long as rows are only appended.
func (d *DB) ListPage(ctx context.Context, limit, offset int) ([]model.Conversation, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, title, last_message, updated_at
		FROM conversations
		ORDER BY updated_at DESC, id
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Conversation
	for rows.Next() {
		var c model.Conversation
		var updated string
		if err := rows.Scan(&c.ID, &c.Title, &c.LastMessage, &updated); err != nil {
			return nil, err
		}
		if ts, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			c.UpdatedAt = ts
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Count returns the total number of stored conversations.
func (d *DB) Count(ctx context.Context) (int, error) {
	var count int
	err := d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM conversations").Scan(&count)
	return count, err
}

// Flags loads the pinned and archived ID sets.
func (d *DB) Flags(ctx context.Context) (pinned, archived model.IDSet, err error) {
	rows, err := d.db.QueryContext(ctx,
		"SELECT id, pinned, archived FROM conversations WHERE pinned = 1 OR archived = 1")
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	pinned = model.NewIDSet()
	archived = model.NewIDSet()
	for rows.Next() {
		var id string
		var p, a int
		if err := rows.Scan(&id, &p, &a); err != nil {
			return nil, nil, err
		}
		if p != 0 {
			pinned.Add(id)
		}
		if a != 0 {
			archived.Add(id)
		}
	}
	return pinned, archived, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
