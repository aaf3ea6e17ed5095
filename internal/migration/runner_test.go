package migration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mutecomm/go-sqlcipher/v4"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma_key=test-key&_busy_timeout=5000")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	first := NewRunner(db).Apply(ctx)
	if first.Failed != nil {
		t.Fatalf("first Apply failed: %v", first.Failed.Err)
	}
	if first.Applied != 3 {
		t.Errorf("first Apply applied %d steps, want 3", first.Applied)
	}

	second := NewRunner(db).Apply(ctx)
	if second.Failed != nil {
		t.Fatalf("second Apply failed: %v", second.Failed.Err)
	}
	if second.Applied != 0 {
		t.Errorf("second Apply applied %d steps, want 0", second.Applied)
	}
	if second.Skipped != 3 {
		t.Errorf("second Apply skipped %d steps, want 3", second.Skipped)
	}
}

func TestApplyCreatesBaseSchema(t *testing.T) {
	db := openTestDB(t)

	result := NewRunner(db).Apply(context.Background())
	if result.Failed != nil {
		t.Fatalf("Apply failed: %v", result.Failed.Err)
	}

	for _, table := range []string{"mood_entries", "emotions", "settings", "schema_migrations"} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestApplyNormalizesLegacyEmotions(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if result := NewRunner(db).Apply(ctx); result.Failed != nil {
		t.Fatalf("initial Apply failed: %v", result.Failed.Err)
	}

	// Simulate a database written by an older build: bare-string emotions,
	// with the data-shape migrations not yet recorded.
	_, err := db.Exec(
		"INSERT INTO mood_entries (mood, timestamp, emotions) VALUES (7, 1700000000000, ?)",
		`["happy","anxious"]`,
	)
	if err != nil {
		t.Fatalf("inserting legacy row: %v", err)
	}
	if _, err := db.Exec("DELETE FROM schema_migrations WHERE version IN (2, 3)"); err != nil {
		t.Fatalf("resetting versions: %v", err)
	}

	result := NewRunner(db).Apply(ctx)
	if result.Failed != nil {
		t.Fatalf("re-Apply failed: %v", result.Failed.Err)
	}
	if result.Applied != 2 {
		t.Errorf("re-Apply applied %d steps, want 2", result.Applied)
	}
	if result.RowsChanged == 0 {
		t.Error("legacy rewrite should count changed rows")
	}

	var raw string
	if err := db.QueryRow("SELECT emotions FROM mood_entries").Scan(&raw); err != nil {
		t.Fatalf("reading rewritten row: %v", err)
	}
	want := `[{"name":"happy","category":"neutral"},{"name":"anxious","category":"neutral"}]`
	if raw != want {
		t.Errorf("emotions = %s, want %s", raw, want)
	}

	// Step 3 seeds presets from the names found in history.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM emotions WHERE name IN ('happy', 'anxious')").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("seeded %d presets from history, want 2", count)
	}
}
