package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	statsTable      = "item_stats"
	reportTable     = "report"
	transitionTable = "transitions"
)

// Tables are created with raw DDL; the rest of the package builds its
// statements with the ent SQL builder.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS item_stats (
		level TEXT NOT NULL,
		item_key TEXT NOT NULL,
		data TEXT NOT NULL,
		updated_at INTEGER NOT NULL,
		PRIMARY KEY (level, item_key)
	)`,
	`CREATE TABLE IF NOT EXISTS report (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS transitions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		item_key TEXT NOT NULL,
		level TEXT NOT NULL,
		outcome TEXT NOT NULL,
		from_phase TEXT NOT NULL,
		to_phase TEXT NOT NULL,
		trigger_name TEXT NOT NULL,
		learned INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS transitions_item_key ON transitions (item_key, id)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}
