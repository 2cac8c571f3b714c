package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver, needed for tests
)

// checkTableExists is a test helper to verify if a table exists in the database.
func checkTableExists(t *testing.T, db *sql.DB, tableName string) {
	t.Helper()
	query := fmt.Sprintf("SELECT name FROM sqlite_master WHERE type='table' AND name='%s';", tableName)
	var name string
	err := db.QueryRow(query).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			t.Errorf("Table '%s' does not exist, but it should.", tableName)
			return
		}
		t.Fatalf("Error checking if table '%s' exists: %v", tableName, err)
	}
	if name != tableName {
		t.Errorf("Table check query returned '%s' but expected '%s'", name, tableName)
	}
}

func openTestMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemoryDB("test-" + uuid.NewString())
	if err != nil {
		t.Fatalf("OpenMemoryDB failed: %v", err)
	}
	return db
}

func TestInitializeSchema_NewDatabase(t *testing.T) {
	db := openTestMemoryDB(t)
	defer db.Close()

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed on a new in-memory database: %v", err)
	}

	for _, tableName := range Tables {
		checkTableExists(t, db, tableName)
	}

	version, err := GetSchemaVersion(db)
	if err != nil {
		t.Fatalf("GetSchemaVersion failed after InitializeSchema: %v", err)
	}
	if version != TargetSchemaVersion {
		t.Errorf("Expected schema version %d, but got %d", TargetSchemaVersion, version)
	}
}

func TestInitializeSchema_Idempotent(t *testing.T) {
	db := openTestMemoryDB(t)
	defer db.Close()

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("First InitializeSchema failed: %v", err)
	}
	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("Second InitializeSchema failed: %v", err)
	}
}

func TestInitializeSchema_VersionMismatch(t *testing.T) {
	db := openTestMemoryDB(t)
	defer db.Close()

	if err := InitializeSchema(db, 2); err != nil {
		t.Fatalf("InitializeSchema to version 2 failed: %v", err)
	}

	err := InitializeSchema(db, TargetSchemaVersion)
	if err == nil {
		t.Fatalf("InitializeSchema should have failed for a mismatched schema version, but it did not")
	}
	expectedErrorMsg := fmt.Sprintf("database has schema version 2, which does not match target schema version %d", TargetSchemaVersion)
	if !strings.Contains(err.Error(), expectedErrorMsg) {
		t.Errorf("InitializeSchema error message mismatch.\nExpected to contain: %s\nGot: %s", expectedErrorMsg, err.Error())
	}
}

func TestOpenMemoryDB_NamesAreIsolated(t *testing.T) {
	first := openTestMemoryDB(t)
	defer first.Close()
	second := openTestMemoryDB(t)
	defer second.Close()

	if err := InitializeSchema(first, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if _, err := first.Exec("INSERT INTO tags (name) VALUES ('legs')"); err != nil {
		t.Fatalf("Insert into first database failed: %v", err)
	}

	version, err := GetSchemaVersion(second)
	if err != nil {
		t.Fatalf("GetSchemaVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("Expected second database to be uninitialized, got schema version %d", version)
	}
}

func TestSetReadOnly(t *testing.T) {
	db := openTestMemoryDB(t)
	defer db.Close()
	ctx := context.Background()

	if err := InitializeSchema(db, TargetSchemaVersion); err != nil {
		t.Fatalf("InitializeSchema failed: %v", err)
	}
	if err := SetReadOnly(ctx, db); err != nil {
		t.Fatalf("SetReadOnly failed: %v", err)
	}

	if _, err := db.ExecContext(ctx, "INSERT INTO tags (name) VALUES ('legs')"); err == nil {
		t.Errorf("Expected insert to fail on a read-only database")
	}

	var n int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tags").Scan(&n); err != nil {
		t.Errorf("Reads should still work on a read-only database: %v", err)
	}
}

func TestOpenDBConnection_InvalidSyncPragma(t *testing.T) {
	_, err := OpenDBConnection(MemoryDSN("bad-sync"), "SOMETIMES")
	if err == nil {
		t.Fatalf("Expected an error for an invalid sync pragma")
	}
	if !strings.Contains(err.Error(), "invalid sync pragma value: SOMETIMES") {
		t.Errorf("Unexpected error: %v", err)
	}
}
