package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent so the full
// list is replayed on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		id          TEXT NOT NULL,
		version     INTEGER NOT NULL CHECK(version > 0),
		target_date TEXT NOT NULL DEFAULT '',
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		PRIMARY KEY (id, version)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedules_created ON schedules(created_at)`,

	`CREATE TABLE IF NOT EXISTS adaptations (
		id           TEXT PRIMARY KEY,
		schedule_id  TEXT NOT NULL,
		from_version INTEGER NOT NULL,
		to_version   INTEGER NOT NULL,
		current_week INTEGER NOT NULL DEFAULT 1,
		updates      TEXT NOT NULL,
		insights     TEXT NOT NULL,
		created_at   TEXT NOT NULL,
		FOREIGN KEY (schedule_id, to_version) REFERENCES schedules(id, version) ON DELETE CASCADE
	)`,

	`CREATE INDEX IF NOT EXISTS idx_adaptations_schedule ON adaptations(schedule_id)`,

	// Model that produced the version, for comparing providers.
	`ALTER TABLE schedules ADD COLUMN model TEXT NOT NULL DEFAULT ''`,
}
