package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/amirk1998/moodlog/internal/database"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/pkg/errors"
)

const moodEntryColumns = `id, mood, timestamp, note_encrypted, energy, emotions,
               context_tags, photos, latitude, longitude, location_name,
               created_at, updated_at`

type MoodRepository struct {
	db *sql.DB
	tm *database.TransactionManager
}

// NewMoodRepository creates a new mood entry repository
func NewMoodRepository(db *sql.DB) *MoodRepository {
	return &MoodRepository{
		db: db,
		tm: database.NewTransactionManager(db),
	}
}

// Create inserts a new entry and assigns its id. Ids come from the
// AUTOINCREMENT sequence, so a deleted id is never handed out again.
func (r *MoodRepository) Create(entry *models.MoodEntry) error {
	emotions, tags, photos, err := encodeArrays(entry)
	if err != nil {
		return err
	}

	var lat, lng sql.NullFloat64
	var locName sql.NullString
	if entry.Location != nil {
		lat = sql.NullFloat64{Float64: entry.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: entry.Location.Longitude, Valid: true}
		if entry.Location.Name != "" {
			locName = sql.NullString{String: entry.Location.Name, Valid: true}
		}
	}

	query := `
        INSERT INTO mood_entries (mood, timestamp, note_encrypted, energy, emotions,
                                  context_tags, photos, latitude, longitude, location_name,
                                  created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	now := time.Now()
	result, err := r.db.Exec(query,
		entry.Mood,
		entry.Timestamp,
		entry.NoteEncrypted,
		nullableInt(entry.Energy),
		emotions,
		tags,
		photos,
		lat,
		lng,
		locName,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create mood entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get mood entry ID: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	entry.UpdatedAt = now

	return nil
}

// GetByID retrieves one entry
func (r *MoodRepository) GetByID(id int64) (*models.MoodEntry, error) {
	query := "SELECT " + moodEntryColumns + " FROM mood_entries WHERE id = ?"

	entry, err := scanEntry(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mood entry: %w", err)
	}
	return entry, nil
}

// Update rewrites a full entry row
func (r *MoodRepository) Update(entry *models.MoodEntry) error {
	emotions, tags, photos, err := encodeArrays(entry)
	if err != nil {
		return err
	}

	var lat, lng sql.NullFloat64
	var locName sql.NullString
	if entry.Location != nil {
		lat = sql.NullFloat64{Float64: entry.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: entry.Location.Longitude, Valid: true}
		if entry.Location.Name != "" {
			locName = sql.NullString{String: entry.Location.Name, Valid: true}
		}
	}

	query := `
        UPDATE mood_entries
        SET mood = ?, timestamp = ?, note_encrypted = ?, energy = ?, emotions = ?,
            context_tags = ?, photos = ?, latitude = ?, longitude = ?, location_name = ?,
            updated_at = ?
        WHERE id = ?
    `

	result, err := r.db.Exec(query,
		entry.Mood,
		entry.Timestamp,
		entry.NoteEncrypted,
		nullableInt(entry.Energy),
		emotions,
		tags,
		photos,
		lat,
		lng,
		locName,
		time.Now(),
		entry.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mood entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return errors.ErrRecordNotFound
	}

	entry.UpdatedAt = time.Now()
	return nil
}

// Delete removes an entry and returns the removed row so the caller can
// offer an undo window (re-creating it yields a fresh id). Deleting an
// absent id is a silent no-op returning (nil, nil).
func (r *MoodRepository) Delete(id int64) (*models.MoodEntry, error) {
	entry, err := r.GetByID(id)
	if err == errors.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := r.db.Exec("DELETE FROM mood_entries WHERE id = ?", id); err != nil {
		return nil, fmt.Errorf("failed to delete mood entry: %w", err)
	}
	return entry, nil
}

// GetAll returns the full table ordered by timestamp descending
func (r *MoodRepository) GetAll() ([]*models.MoodEntry, error) {
	query := "SELECT " + moodEntryColumns + " FROM mood_entries ORDER BY timestamp DESC, id DESC"
	return r.queryEntries(query)
}

// GetPaginated returns one stable window of the timestamp-descending
// listing. An offset at or past the total yields an empty page with
// HasMore false.
func (r *MoodRepository) GetPaginated(offset, limit int) (*models.Page, error) {
	total, err := r.Count()
	if err != nil {
		return nil, err
	}

	query := "SELECT " + moodEntryColumns + ` FROM mood_entries
        ORDER BY timestamp DESC, id DESC LIMIT ? OFFSET ?`
	items, err := r.queryEntries(query, limit, offset)
	if err != nil {
		return nil, err
	}

	return &models.Page{
		Items:   items,
		HasMore: offset+len(items) < total,
		Total:   total,
	}, nil
}

// GetWithinRange returns entries with timestamps inside [start, end],
// inclusive of both endpoints, ordered timestamp descending.
func (r *MoodRepository) GetWithinRange(start, end time.Time) ([]*models.MoodEntry, error) {
	query := "SELECT " + moodEntryColumns + ` FROM mood_entries
        WHERE timestamp >= ? AND timestamp <= ?
        ORDER BY timestamp DESC, id DESC`
	return r.queryEntries(query, start.UnixMilli(), end.UnixMilli())
}

// GetByMonth groups the month's entries by local calendar day (1-31).
// Bucketing uses the entry's local date, never UTC, so a 23:59 entry stays
// on its own day regardless of the host timezone offset.
func (r *MoodRepository) GetByMonth(year int, month time.Month) (map[int][]*models.MoodEntry, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)

	entries, err := r.GetWithinRange(start, end)
	if err != nil {
		return nil, err
	}

	byDay := make(map[int][]*models.MoodEntry)
	for _, entry := range entries {
		t := entry.Time()
		if t.Year() != year || t.Month() != month {
			continue
		}
		day := t.Day()
		byDay[day] = append(byDay[day], entry)
	}
	return byDay, nil
}

// Count returns the total number of entries
func (r *MoodRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM mood_entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count mood entries: %w", err)
	}
	return count, nil
}

// HasLoggedToday reports whether at least one entry falls on the local
// calendar day of now.
func (r *MoodRepository) HasLoggedToday(now time.Time) (bool, error) {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)

	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM mood_entries WHERE timestamp >= ? AND timestamp <= ?",
		start.UnixMilli(), end.UnixMilli(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check today's entries: %w", err)
	}
	return count > 0, nil
}

// UpdateEmotionCategoryAcrossEntries rewrites the embedded category on
// every historical entry carrying an emotion that matches name
// case-insensitively. The emotion name itself is untouched. Returns the
// number of entries rewritten; zero matches is a valid outcome.
func (r *MoodRepository) UpdateEmotionCategoryAcrossEntries(name string, category models.EmotionCategory) (int, error) {
	return r.rewriteEmotions(func(emotions []models.Emotion) ([]models.Emotion, bool) {
		changed := false
		for i := range emotions {
			if strings.EqualFold(emotions[i].Name, name) && emotions[i].Category != category {
				emotions[i].Category = category
				changed = true
			}
		}
		return emotions, changed
	})
}

// RemoveEmotionFromEntries strips the named emotion (case-insensitive) out
// of every entry's embedded list. Entries themselves are kept. Returns the
// number of entries rewritten.
func (r *MoodRepository) RemoveEmotionFromEntries(name string) (int, error) {
	return r.rewriteEmotions(func(emotions []models.Emotion) ([]models.Emotion, bool) {
		kept := emotions[:0]
		for _, em := range emotions {
			if !strings.EqualFold(em.Name, name) {
				kept = append(kept, em)
			}
		}
		return kept, len(kept) != len(emotions)
	})
}

// DistinctEmotionNames returns every emotion name present in historical
// entries, first-seen order. Used to import emotions that exist in history
// but are missing from the current preset list.
func (r *MoodRepository) DistinctEmotionNames() ([]string, error) {
	rows, err := r.db.Query("SELECT emotions FROM mood_entries WHERE emotions != '[]' ORDER BY timestamp DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to read emotions: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var names []string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("failed to scan emotions: %w", err)
		}
		var emotions []models.Emotion
		if err := json.Unmarshal([]byte(raw), &emotions); err != nil {
			continue
		}
		for _, em := range emotions {
			key := strings.ToLower(em.Name)
			if !seen[key] {
				seen[key] = true
				names = append(names, em.Name)
			}
		}
	}
	return names, rows.Err()
}

// rewriteEmotions loads every entry with emotions, applies fn, and writes
// changed rows back inside a single transaction so a cascade either lands
// completely or not at all.
func (r *MoodRepository) rewriteEmotions(fn func([]models.Emotion) ([]models.Emotion, bool)) (int, error) {
	updated := 0
	err := r.tm.Execute(context.Background(), func(tx *sql.Tx) error {
		rows, err := tx.Query("SELECT id, emotions FROM mood_entries WHERE emotions != '[]'")
		if err != nil {
			return fmt.Errorf("failed to read entries: %w", err)
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
				return fmt.Errorf("failed to scan entry: %w", err)
			}

			var emotions []models.Emotion
			if err := json.Unmarshal([]byte(raw), &emotions); err != nil {
				continue
			}

			next, changed := fn(emotions)
			if !changed {
				continue
			}
			encoded, err := json.Marshal(next)
			if err != nil {
				rows.Close()
				return fmt.Errorf("failed to encode emotions for entry %d: %w", id, err)
			}
			rewrites = append(rewrites, rewrite{id: id, emotions: string(encoded)})
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()

		for _, rw := range rewrites {
			if _, err := tx.Exec(
				"UPDATE mood_entries SET emotions = ?, updated_at = ? WHERE id = ?",
				rw.emotions, time.Now(), rw.id,
			); err != nil {
				return fmt.Errorf("failed to rewrite entry %d: %w", rw.id, err)
			}
		}

		updated = len(rewrites)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return updated, nil
}

func (r *MoodRepository) queryEntries(query string, args ...interface{}) ([]*models.MoodEntry, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list mood entries: %w", err)
	}
	defer rows.Close()

	var entries []*models.MoodEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mood entry: %w", err)
		}
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return entries, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row rowScanner) (*models.MoodEntry, error) {
	entry := &models.MoodEntry{}
	var energy sql.NullInt64
	var emotions, tags, photos string
	var lat, lng sql.NullFloat64
	var locName sql.NullString

	err := row.Scan(
		&entry.ID,
		&entry.Mood,
		&entry.Timestamp,
		&entry.NoteEncrypted,
		&energy,
		&emotions,
		&tags,
		&photos,
		&lat,
		&lng,
		&locName,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if energy.Valid {
		v := int(energy.Int64)
		entry.Energy = &v
	}
	if err := json.Unmarshal([]byte(emotions), &entry.Emotions); err != nil {
		return nil, fmt.Errorf("failed to decode emotions: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &entry.ContextTags); err != nil {
		return nil, fmt.Errorf("failed to decode context tags: %w", err)
	}
	if err := json.Unmarshal([]byte(photos), &entry.Photos); err != nil {
		return nil, fmt.Errorf("failed to decode photos: %w", err)
	}
	if lat.Valid && lng.Valid {
		entry.Location = &models.Location{
			Latitude:  lat.Float64,
			Longitude: lng.Float64,
		}
		if locName.Valid {
			entry.Location.Name = locName.String
		}
	}

	return entry, nil
}

func encodeArrays(entry *models.MoodEntry) (string, string, string, error) {
	emotions, err := encodeJSONArray(entry.Emotions)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode emotions: %w", err)
	}
	tags, err := encodeJSONArray(entry.ContextTags)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode context tags: %w", err)
	}
	photos, err := encodeJSONArray(entry.Photos)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to encode photos: %w", err)
	}
	return emotions, tags, photos, nil
}

func encodeJSONArray(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}

func nullableInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
