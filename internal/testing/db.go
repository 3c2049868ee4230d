// Package testing provides testing utilities and helpers for the moneyball project.
package testing

import (
	"testing"

	"github.com/aristath/moneyball/internal/database"
)

// NewTestDB creates a migrated SQLite database in a per-test temp directory.
// The connection is closed when the test finishes.
//
// Supported schema names:
//   - "session" - applies session_schema.sql
//   - Unknown names - creates empty database (no schema applied)
func NewTestDB(t *testing.T, name string) *database.DB {
	t.Helper()

	db, err := database.New(database.Config{
		Path: t.TempDir() + "/" + name + ".db",
		Name: name,
	})
	if err != nil {
		t.Fatalf("Failed to create test database %s: %v", name, err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(); err != nil {
		t.Fatalf("Failed to migrate test database %s: %v", name, err)
	}
	return db
}
