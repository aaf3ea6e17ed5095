// Package analytics computes derived statistics over mood entries. Every
// function here is pure over an already-fetched slice: the engine reads
// snapshots and never mutates the store.
package analytics

import (
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

type StreakSummary struct {
	CurrentStreak   int `json:"current_streak"`
	LongestStreak   int `json:"longest_streak"`
	TotalDaysLogged int `json:"total_days_logged"`
}

// CalculateStreak groups entries by local calendar day and walks backward
// from today. CurrentStreak counts consecutive days with at least one
// entry, today included, stopping at the first gap. LongestStreak is the
// maximum run across the whole history.
func CalculateStreak(entries []*models.MoodEntry, now time.Time) StreakSummary {
	days := make(map[string]bool)
	for _, entry := range entries {
		days[entry.Day()] = true
	}

	summary := StreakSummary{TotalDaysLogged: len(days)}
	if len(days) == 0 {
		return summary
	}

	y, m, d := now.Date()
	cursor := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for days[cursor.Format("2006-01-02")] {
		summary.CurrentStreak++
		cursor = cursor.AddDate(0, 0, -1)
	}

	// Longest run: walk each day in the set that starts a run.
	for day := range days {
		start, err := time.ParseInLocation("2006-01-02", day, now.Location())
		if err != nil {
			continue
		}
		if days[start.AddDate(0, 0, -1).Format("2006-01-02")] {
			continue // not the start of a run
		}
		run := 0
		for cursor := start; days[cursor.Format("2006-01-02")]; cursor = cursor.AddDate(0, 0, 1) {
			run++
		}
		if run > summary.LongestStreak {
			summary.LongestStreak = run
		}
	}

	return summary
}
