package analytics

import (
	"testing"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

func entryAt(t time.Time, mood int) *models.MoodEntry {
	return &models.MoodEntry{Mood: mood, Timestamp: t.UnixMilli()}
}

func localDate(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.Local)
}

func TestCalculateStreakEmpty(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	got := CalculateStreak(nil, now)

	if got.CurrentStreak != 0 || got.LongestStreak != 0 || got.TotalDaysLogged != 0 {
		t.Errorf("expected zero summary, got %+v", got)
	}
}

func TestCalculateStreakWithGap(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	// Today, yesterday, then a gap, then three days ago.
	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 12, 9), 7),
		entryAt(localDate(2026, time.August, 11, 20), 5),
		entryAt(localDate(2026, time.August, 9, 8), 6),
	}

	got := CalculateStreak(entries, now)

	if got.CurrentStreak != 2 {
		t.Errorf("CurrentStreak = %d, want 2", got.CurrentStreak)
	}
	if got.LongestStreak != 2 {
		t.Errorf("LongestStreak = %d, want 2", got.LongestStreak)
	}
	if got.TotalDaysLogged != 3 {
		t.Errorf("TotalDaysLogged = %d, want 3", got.TotalDaysLogged)
	}
}

func TestCalculateStreakNoEntryToday(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 11, 9), 7),
		entryAt(localDate(2026, time.August, 10, 9), 7),
		entryAt(localDate(2026, time.August, 9, 9), 7),
	}

	got := CalculateStreak(entries, now)

	if got.CurrentStreak != 0 {
		t.Errorf("CurrentStreak = %d, want 0 when today has no entry", got.CurrentStreak)
	}
	if got.LongestStreak != 3 {
		t.Errorf("LongestStreak = %d, want 3", got.LongestStreak)
	}
}

func TestCalculateStreakMultipleEntriesSameDay(t *testing.T) {
	now := localDate(2026, time.August, 12, 23)

	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 12, 8), 4),
		entryAt(localDate(2026, time.August, 12, 13), 6),
		entryAt(localDate(2026, time.August, 12, 21), 8),
	}

	got := CalculateStreak(entries, now)

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.TotalDaysLogged != 1 {
		t.Errorf("TotalDaysLogged = %d, want 1", got.TotalDaysLogged)
	}
}

func TestCalculateStreakLongestInPast(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	// Five-day run in July, single entry today.
	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 12, 9), 5),
		entryAt(localDate(2026, time.July, 1, 9), 5),
		entryAt(localDate(2026, time.July, 2, 9), 5),
		entryAt(localDate(2026, time.July, 3, 9), 5),
		entryAt(localDate(2026, time.July, 4, 9), 5),
		entryAt(localDate(2026, time.July, 5, 9), 5),
	}

	got := CalculateStreak(entries, now)

	if got.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", got.CurrentStreak)
	}
	if got.LongestStreak != 5 {
		t.Errorf("LongestStreak = %d, want 5", got.LongestStreak)
	}
	if got.TotalDaysLogged != 6 {
		t.Errorf("TotalDaysLogged = %d, want 6", got.TotalDaysLogged)
	}
}
