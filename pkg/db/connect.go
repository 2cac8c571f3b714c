package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// validSyncModes lists the allowed values for the synchronous pragma.
var validSyncModes = map[string]bool{
	"OFF":    true,
	"NORMAL": true,
	"FULL":   true,
	"EXTRA":  true, // SQLite also supports EXTRA
}

// OpenDBConnection establishes a connection to a SQLite database.
// baseDSN is the initial data source name (a file path or a file: URI).
// syncPragma sets the synchronous pragma (e.g., "OFF", "NORMAL", "FULL", "EXTRA");
// an empty value keeps the SQLite default.
func OpenDBConnection(baseDSN string, syncPragma string) (*sql.DB, error) {
	params := url.Values{}

	if syncPragma != "" {
		ucSyncPragma := strings.ToUpper(syncPragma)
		if !validSyncModes[ucSyncPragma] {
			return nil, fmt.Errorf("invalid sync pragma value: %s. Must be one of OFF, NORMAL, FULL, EXTRA", syncPragma)
		}
		params.Add("_synchronous", ucSyncPragma)
	}

	constructedDSN := baseDSN
	if len(params) > 0 {
		if strings.Contains(baseDSN, "?") {
			constructedDSN += "&" + params.Encode()
		} else {
			constructedDSN += "?" + params.Encode()
		}
	}

	db, err := sql.Open("sqlite3", constructedDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database with DSN '%s': %w", constructedDSN, err)
	}

	// Ping the database to ensure the connection is alive and the DSN is valid.
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database with DSN '%s': %w", constructedDSN, err)
	}

	return db, nil
}

// MemoryDSN returns the DSN of a named, shared-cache in-memory database.
// Distinct names never see each other's tables.
func MemoryDSN(name string) string {
	return "file:" + url.PathEscape(name) + "?mode=memory&cache=shared"
}

// OpenMemoryDB opens the in-memory database called name. The pool is pinned
// to a single connection: the database lives exactly as long as that
// connection, and every caller sees the same tables.
func OpenMemoryDB(name string) (*sql.DB, error) {
	db, err := OpenDBConnection(MemoryDSN(name), "OFF")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)
	return db, nil
}

// SetReadOnly switches the pinned connection to query_only, so any later
// INSERT, UPDATE, DELETE or DDL fails.
func SetReadOnly(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON;"); err != nil {
		return fmt.Errorf("failed to enable query_only: %w", err)
	}
	return nil
}
