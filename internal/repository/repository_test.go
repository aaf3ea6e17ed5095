package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/amirk1998/moodlog/internal/migration"
)

// newTestDB opens an encrypted throwaway database with the full migration
// chain applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma_key=test-key&_busy_timeout=5000&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	result := migration.NewRunner(db).Apply(context.Background())
	if result.Failed != nil {
		t.Fatalf("migration failed: %v", result.Failed.Err)
	}

	return db
}
