package migration

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/amirk1998/moodlog/internal/models"
)

// builtinMigrations is the full migration chain, oldest first:
//
//	1 base schema
//	2 legacy emotions-as-strings -> categorized objects embedded per entry
//	3 seed the emotion preset table from names found in historical entries
func builtinMigrations() []Migration {
	return []Migration{
		{Version: 1, Name: "base_schema", Run: createBaseSchema},
		{Version: 2, Name: "categorize_embedded_emotions", Run: categorizeEmbeddedEmotions},
		{Version: 3, Name: "seed_presets_from_history", Run: seedPresetsFromHistory},
	}
}

func createBaseSchema(tx *sql.Tx) (int, error) {
	schema := `
    CREATE TABLE IF NOT EXISTS mood_entries (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        mood INTEGER NOT NULL,
        timestamp INTEGER NOT NULL,
        note_encrypted TEXT NOT NULL DEFAULT '',
        energy INTEGER,
        emotions TEXT NOT NULL DEFAULT '[]',
        context_tags TEXT NOT NULL DEFAULT '[]',
        photos TEXT NOT NULL DEFAULT '[]',
        latitude REAL,
        longitude REAL,
        location_name TEXT,
        created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
    );

    CREATE INDEX IF NOT EXISTS idx_mood_entries_timestamp ON mood_entries(timestamp);

    CREATE TABLE IF NOT EXISTS emotions (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        name TEXT NOT NULL COLLATE NOCASE UNIQUE,
        category TEXT NOT NULL CHECK (category IN ('positive', 'negative', 'neutral'))
    );

    CREATE TABLE IF NOT EXISTS settings (
        key TEXT PRIMARY KEY,
        value TEXT NOT NULL
    );
    `

	if _, err := tx.Exec(schema); err != nil {
		return 0, fmt.Errorf("failed to create base schema: %w", err)
	}
	return 0, nil
}

// categorizeEmbeddedEmotions rewrites entries whose emotions column still
// holds the legacy bare-string array form into the categorized object form.
// Rows already in object form are left untouched, which is what makes a
// second pass a zero-count no-op even without the version marker.
func categorizeEmbeddedEmotions(tx *sql.Tx) (int, error) {
	rows, err := tx.Query("SELECT id, emotions FROM mood_entries WHERE emotions != '[]'")
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}

	type rewrite struct {
		id       int64
		emotions string
	}
	var rewrites []rewrite

	for rows.Next() {
		var id int64
		var raw string
		if err := rows.Scan(&id, &raw); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan entry %d: %w", id, err)
		}

		normalized, changed := NormalizeEmotionList([]byte(raw), nil)
		if !changed {
			continue
		}

		encoded, err := json.Marshal(normalized)
		if err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to encode emotions for entry %d: %w", id, err)
		}
		rewrites = append(rewrites, rewrite{id: id, emotions: string(encoded)})
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	for _, rw := range rewrites {
		if _, err := tx.Exec("UPDATE mood_entries SET emotions = ? WHERE id = ?", rw.emotions, rw.id); err != nil {
			return 0, fmt.Errorf("failed to rewrite entry %d: %w", rw.id, err)
		}
	}

	return len(rewrites), nil
}

// seedPresetsFromHistory inserts every distinct emotion name found in
// historical entries into the preset table, keeping whatever category the
// entry carries. Existing presets win on name collision.
func seedPresetsFromHistory(tx *sql.Tx) (int, error) {
	rows, err := tx.Query("SELECT emotions FROM mood_entries WHERE emotions != '[]'")
	if err != nil {
		return 0, fmt.Errorf("failed to read entries: %w", err)
	}

	seen := make(map[string]models.Emotion)
	var order []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			rows.Close()
			return 0, fmt.Errorf("failed to scan entry: %w", err)
		}
		normalized, _ := NormalizeEmotionList([]byte(raw), nil)
		for _, em := range normalized {
			key := foldName(em.Name)
			if _, ok := seen[key]; !ok {
				seen[key] = em
				order = append(order, key)
			}
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return 0, err
	}
	rows.Close()

	inserted := 0
	for _, key := range order {
		em := seen[key]
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO emotions (name, category) VALUES (?, ?)",
			em.Name, string(em.Category),
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to seed preset %s: %w", em.Name, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	return inserted, nil
}
