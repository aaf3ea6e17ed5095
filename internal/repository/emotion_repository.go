package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/pkg/errors"
)

type EmotionRepository struct {
	db *sql.DB
}

// NewEmotionRepository creates a new emotion preset repository
func NewEmotionRepository(db *sql.DB) *EmotionRepository {
	return &EmotionRepository{db: db}
}

// defaultEmotions is the built-in preset list restored whenever the table
// is empty.
var defaultEmotions = []models.Emotion{
	{Name: "Happy", Category: models.CategoryPositive},
	{Name: "Calm", Category: models.CategoryPositive},
	{Name: "Excited", Category: models.CategoryPositive},
	{Name: "Grateful", Category: models.CategoryPositive},
	{Name: "Content", Category: models.CategoryPositive},
	{Name: "Sad", Category: models.CategoryNegative},
	{Name: "Anxious", Category: models.CategoryNegative},
	{Name: "Angry", Category: models.CategoryNegative},
	{Name: "Stressed", Category: models.CategoryNegative},
	{Name: "Lonely", Category: models.CategoryNegative},
	{Name: "Tired", Category: models.CategoryNeutral},
	{Name: "Bored", Category: models.CategoryNeutral},
	{Name: "Confused", Category: models.CategoryNeutral},
}

// GetAll returns every preset, name-sorted case-insensitively
func (r *EmotionRepository) GetAll() ([]models.Emotion, error) {
	rows, err := r.db.Query("SELECT name, category FROM emotions ORDER BY name COLLATE NOCASE")
	if err != nil {
		return nil, fmt.Errorf("failed to list emotions: %w", err)
	}
	defer rows.Close()

	var emotions []models.Emotion
	for rows.Next() {
		var em models.Emotion
		var category string
		if err := rows.Scan(&em.Name, &category); err != nil {
			return nil, fmt.Errorf("failed to scan emotion: %w", err)
		}
		em.Category = models.EmotionCategory(category)
		emotions = append(emotions, em)
	}
	return emotions, rows.Err()
}

// Add inserts a new preset. Names are stored case-sensitively but must be
// unique case-insensitively.
func (r *EmotionRepository) Add(emotion models.Emotion) error {
	exists, err := r.exists(emotion.Name)
	if err != nil {
		return err
	}
	if exists {
		return errors.ErrDuplicateEmotion
	}

	_, err = r.db.Exec(
		"INSERT INTO emotions (name, category) VALUES (?, ?)",
		emotion.Name, string(emotion.Category),
	)
	if err != nil {
		return fmt.Errorf("failed to add emotion: %w", err)
	}
	return nil
}

// Update renames and/or recategorizes a preset matched case-insensitively
// by oldName. Historical entries keep their embedded copies; cascades are
// explicit operations on the mood repository.
func (r *EmotionRepository) Update(oldName string, emotion models.Emotion) error {
	if !strings.EqualFold(oldName, emotion.Name) {
		exists, err := r.exists(emotion.Name)
		if err != nil {
			return err
		}
		if exists {
			return errors.ErrDuplicateEmotion
		}
	}

	result, err := r.db.Exec(
		"UPDATE emotions SET name = ?, category = ? WHERE name = ? COLLATE NOCASE",
		emotion.Name, string(emotion.Category), oldName,
	)
	if err != nil {
		return fmt.Errorf("failed to update emotion: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return errors.ErrRecordNotFound
	}
	return nil
}

// Delete removes a preset by name (case-insensitive). Deleting an absent
// name is a no-op.
func (r *EmotionRepository) Delete(name string) error {
	if _, err := r.db.Exec("DELETE FROM emotions WHERE name = ? COLLATE NOCASE", name); err != nil {
		return fmt.Errorf("failed to delete emotion: %w", err)
	}
	return nil
}

// UpsertCategory creates the preset or updates its category by name
func (r *EmotionRepository) UpsertCategory(name string, category models.EmotionCategory) error {
	exists, err := r.exists(name)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.db.Exec(
			"UPDATE emotions SET category = ? WHERE name = ? COLLATE NOCASE",
			string(category), name,
		)
	} else {
		_, err = r.db.Exec(
			"INSERT INTO emotions (name, category) VALUES (?, ?)",
			name, string(category),
		)
	}
	if err != nil {
		return fmt.Errorf("failed to upsert emotion: %w", err)
	}
	return nil
}

// EnsureDefaults inserts the built-in preset list if the table is empty.
// Safe to call on every startup.
func (r *EmotionRepository) EnsureDefaults() (int, error) {
	count, err := r.Count()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	inserted := 0
	for _, em := range defaultEmotions {
		if _, err := r.db.Exec(
			"INSERT OR IGNORE INTO emotions (name, category) VALUES (?, ?)",
			em.Name, string(em.Category),
		); err != nil {
			return inserted, fmt.Errorf("failed to seed default emotion %s: %w", em.Name, err)
		}
		inserted++
	}
	return inserted, nil
}

// Count returns the number of presets
func (r *EmotionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM emotions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count emotions: %w", err)
	}
	return count, nil
}

func (r *EmotionRepository) exists(name string) (bool, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM emotions WHERE name = ? COLLATE NOCASE", name).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check emotion existence: %w", err)
	}
	return count > 0, nil
}
