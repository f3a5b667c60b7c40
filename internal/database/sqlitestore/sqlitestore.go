// Package sqlitestore provides SQLite-backed store implementations.
// The brewing journal lives here rather than in BoltDB because notes
// accumulate indefinitely and need filtered queries (by bean, by
// source, by date range) that a key-value bucket scan handles poorly.
package sqlitestore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS brew_notes (
	id           TEXT PRIMARY KEY,
	bean_id      TEXT NOT NULL,
	source       TEXT NOT NULL DEFAULT '',
	coffee_grams REAL NOT NULL DEFAULT 0,
	water_grams  INTEGER NOT NULL DEFAULT 0,
	ratio        REAL NOT NULL DEFAULT 0,
	method_name  TEXT NOT NULL DEFAULT '',
	rating       INTEGER NOT NULL DEFAULT 0,
	text         TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_brew_notes_bean    ON brew_notes(bean_id, created_at);
CREATE INDEX IF NOT EXISTS idx_brew_notes_source  ON brew_notes(source);
CREATE INDEX IF NOT EXISTS idx_brew_notes_created ON brew_notes(created_at);
`

// Open opens (or creates) the SQLite database at path and applies the
// journal schema.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single writer: the embedded driver serializes writes anyway, and
	// a bounded pool avoids SQLITE_BUSY churn under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return db, nil
}
