package db

import (
	"database/sql"
	"fmt"
)

const (
	// TargetSchemaVersion is the schema version this code creates. It is stored
	// in SQLite's user_version so query collaborators can detect the layout.
	TargetSchemaVersion int64 = 1
)

// GetSchemaVersion returns the user_version of the database. A database that
// was never initialized reports 0.
func GetSchemaVersion(db *sql.DB) (int64, error) {
	var version int64
	if err := db.QueryRow("PRAGMA user_version;").Scan(&version); err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return version, nil
}

// InitializeSchema creates all tables and records schemaVersionToSet.
func InitializeSchema(db *sql.DB, schemaVersionToSet int64) error {
	current, err := GetSchemaVersion(db)
	if err != nil {
		return err
	}
	if current != 0 && current != schemaVersionToSet {
		return fmt.Errorf("database has schema version %d, which does not match target schema version %d", current, schemaVersionToSet)
	}

	if _, err := db.Exec(SchemaV1); err != nil {
		return fmt.Errorf("failed to execute schema v1 SQL: %w", err)
	}

	// PRAGMA arguments cannot be bound as parameters.
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d;", schemaVersionToSet)); err != nil {
		return fmt.Errorf("failed to set schema version to %d: %w", schemaVersionToSet, err)
	}
	return nil
}
