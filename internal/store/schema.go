package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current query log schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	if err := createResponsesTable(db); err != nil {
		return fmt.Errorf("creating responses table: %w", err)
	}
	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	var version int
	if err := db.QueryRow("SELECT version FROM schema_version").Scan(&version); err != nil {
		return err
	}
	if version != SchemaVersion {
		return fmt.Errorf("unsupported schema version %d (want %d)", version, SchemaVersion)
	}
	return nil
}

func createResponsesTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS responses (
			id           TEXT PRIMARY KEY,
			path         TEXT NOT NULL,
			kind         TEXT NOT NULL,
			begin_offset INTEGER NOT NULL,
			end_offset   INTEGER NOT NULL,
			type         TEXT NOT NULL DEFAULT '',
			method       TEXT NOT NULL DEFAULT '',
			method_begin INTEGER NOT NULL DEFAULT 0,
			method_end   INTEGER NOT NULL DEFAULT 0,
			pushed_at    INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS responses_path ON responses (path, begin_offset)`)
	return err
}
