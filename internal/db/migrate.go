package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; every statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS projects (
		id             TEXT PRIMARY KEY,
		title          TEXT NOT NULL,
		final_deadline TEXT NOT NULL,
		template_id    TEXT,
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sub_deadlines (
		id           TEXT PRIMARY KEY,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		date         TEXT NOT NULL,
		unresolved   INTEGER NOT NULL DEFAULT 0,
		is_completed INTEGER NOT NULL DEFAULT 0,
		blueprint_id TEXT,
		sort_index   INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS triggers (
		id              TEXT PRIMARY KEY,
		project_id      TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name            TEXT NOT NULL,
		is_active       INTEGER NOT NULL DEFAULT 0,
		activation_date TEXT,
		blueprint_id    TEXT
	)`,
	`CREATE INDEX IF NOT EXISTS idx_sub_deadlines_project ON sub_deadlines(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_triggers_project ON triggers(project_id)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
