package database

import (
	"database/sql"
	"fmt"
	"os"
)

// Migrate applies docs/schema.sql. The statements are idempotent
// (CREATE TABLE IF NOT EXISTS), so running it on every startup is safe.
func Migrate(db *sql.DB) error {
	path := os.Getenv("MANGACAT_SCHEMA_PATH")
	if path == "" {
		path = "docs/schema.sql"
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	if _, err := db.Exec(string(b)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
