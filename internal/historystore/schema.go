package historystore

import (
	"database/sql"
	"fmt"
	"time"
)

// schemaVersion is bumped whenever createSchema's DDL changes. Grounded on
// the teacher's internal/storage/schema.go versioned cache_metadata table:
// a single-row key/value table records the version so future migrations
// can detect and upgrade an older database in place.
const schemaVersion = "1"

// createSchema creates the history and metadata tables. Mirrors the
// teacher's CreateSchema: one transaction, DDL in dependency order, a
// bootstrap row recording the version.
func createSchema(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("historystore: begin schema transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(createMetadataTable); err != nil {
		return fmt.Errorf("historystore: create history_metadata table: %w", err)
	}
	if _, err := tx.Exec(createRecordsTable); err != nil {
		return fmt.Errorf("historystore: create edit_records table: %w", err)
	}
	if _, err := tx.Exec(createRecordsIndex); err != nil {
		return fmt.Errorf("historystore: create edit_records index: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.Exec(
		`INSERT INTO history_metadata (key, value, updated_at) VALUES ('schema_version', ?, ?)`,
		schemaVersion, now,
	); err != nil {
		return fmt.Errorf("historystore: bootstrap metadata: %w", err)
	}

	return tx.Commit()
}

// getSchemaVersion returns "0" for a database with no history_metadata
// table yet (a fresh file), matching the teacher's "new database" sentinel.
func getSchemaVersion(db *sql.DB) (string, error) {
	var exists int
	err := db.QueryRow(
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='history_metadata'`,
	).Scan(&exists)
	if err != nil {
		return "", fmt.Errorf("historystore: check history_metadata existence: %w", err)
	}
	if exists == 0 {
		return "0", nil
	}

	var version string
	err = db.QueryRow(`SELECT value FROM history_metadata WHERE key = 'schema_version'`).Scan(&version)
	if err != nil {
		return "", fmt.Errorf("historystore: query schema version: %w", err)
	}
	return version, nil
}

const createMetadataTable = `
CREATE TABLE history_metadata (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)
`

const createRecordsTable = `
CREATE TABLE edit_records (
	request_id     TEXT PRIMARY KEY,
	created_at     TEXT NOT NULL,
	language       TEXT NOT NULL,
	strategy       TEXT NOT NULL,
	confidence     REAL NOT NULL,
	chunks_found   INTEGER NOT NULL,
	syntax_valid   INTEGER NOT NULL,
	template_id    TEXT NOT NULL,
	original_text  TEXT NOT NULL,
	edit_text      TEXT NOT NULL,
	merged_text    TEXT NOT NULL
)
`

const createRecordsIndex = `
CREATE INDEX idx_edit_records_created_at ON edit_records (created_at)
`
