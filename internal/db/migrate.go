package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS saved_plans (
		key          TEXT PRIMARY KEY,
		record_id    TEXT NOT NULL,
		payload      TEXT NOT NULL,
		generated_at TEXT NOT NULL
	)`,
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
