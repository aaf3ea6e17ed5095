package models

import (
	"time"
)

// EmotionCategory classifies an emotion preset.
type EmotionCategory string

const (
	CategoryPositive EmotionCategory = "positive"
	CategoryNegative EmotionCategory = "negative"
	CategoryNeutral  EmotionCategory = "neutral"
)

// Valid reports whether the category is one of the known values.
func (c EmotionCategory) Valid() bool {
	switch c {
	case CategoryPositive, CategoryNegative, CategoryNeutral:
		return true
	}
	return false
}

// Emotion is a named, categorized tag. Entries embed a denormalized copy,
// so renaming or deleting a preset never rewrites history unless the
// caller explicitly runs one of the cascade operations.
type Emotion struct {
	Name     string          `json:"name"`
	Category EmotionCategory `json:"category"`
}

// Location is an optional coordinate attached to an entry.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
}

// MaxEmotionsPerEntry caps the emotions embedded in a single entry.
const MaxEmotionsPerEntry = 3

// MaxPhotosPerEntry caps the photo references on a single entry.
const MaxPhotosPerEntry = 3

type MoodEntry struct {
	ID            int64     `json:"id"`
	Mood          int       `json:"mood"`
	Timestamp     int64     `json:"timestamp"` // milliseconds since epoch, user-editable
	Note          string    `json:"note,omitempty"`
	NoteEncrypted string    `json:"-"` // never expose ciphertext
	Energy        *int      `json:"energy,omitempty"`
	Emotions      []Emotion `json:"emotions,omitempty"`
	ContextTags   []string  `json:"context_tags,omitempty"`
	Photos        []string  `json:"photos,omitempty"`
	Location      *Location `json:"location,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Time returns the entry timestamp in the local time zone. All day-level
// bucketing (calendar, streaks, charts) goes through local time so an
// entry logged at 23:59 stays on its local day regardless of UTC offset.
func (e *MoodEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Day returns the local calendar day of the entry as "2006-01-02".
func (e *MoodEntry) Day() string {
	return e.Time().Format("2006-01-02")
}

type CreateEntryRequest struct {
	Mood        int       `json:"mood"`
	Timestamp   *int64    `json:"timestamp,omitempty"` // defaults to now
	Note        string    `json:"note,omitempty"`
	Energy      *int      `json:"energy,omitempty"`
	Emotions    []Emotion `json:"emotions,omitempty"`
	ContextTags []string  `json:"context_tags,omitempty"`
	Photos      []string  `json:"photos,omitempty"`
	Location    *Location `json:"location,omitempty"`
}

type UpdateEntryRequest struct {
	Mood        *int       `json:"mood,omitempty"`
	Timestamp   *int64     `json:"timestamp,omitempty"`
	Note        *string    `json:"note,omitempty"`
	Energy      *int       `json:"energy,omitempty"`
	Emotions    *[]Emotion `json:"emotions,omitempty"`
	ContextTags *[]string  `json:"context_tags,omitempty"`
	Photos      *[]string  `json:"photos,omitempty"`
	Location    *Location  `json:"location,omitempty"`
}

// Page is one window of a paginated listing, ordered timestamp descending.
type Page struct {
	Items   []*MoodEntry `json:"items"`
	HasMore bool         `json:"has_more"`
	Total   int          `json:"total"`
}

// RangePreset names a trailing window ending now.
type RangePreset string

const (
	PresetWeek     RangePreset = "week"
	PresetTwoWeeks RangePreset = "twoWeeks"
	PresetMonth    RangePreset = "month"
)

// Bounds resolves the preset to an inclusive [start, end] pair at day
// granularity: start of the first day through end of today, local time.
func (p RangePreset) Bounds(now time.Time) (time.Time, time.Time) {
	days := 0
	switch p {
	case PresetWeek:
		days = 6
	case PresetTwoWeeks:
		days = 13
	case PresetMonth:
		days = 29
	}
	y, m, d := now.Date()
	end := time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), now.Location())
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -days)
	return start, end
}
