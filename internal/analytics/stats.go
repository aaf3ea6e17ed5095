package analytics

import (
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

// defaultMostCommonMood is reported for an empty journal: the midpoint of
// the baseline 0-10 scale.
const defaultMostCommonMood = 5

type MoodStats struct {
	TotalEntries     int         `json:"total_entries"`
	AverageMood      float64     `json:"average_mood"`
	Distribution     map[int]int `json:"distribution"`
	MostCommonMood   int         `json:"most_common_mood"`
	EntriesThisWeek  int         `json:"entries_this_week"`
	EntriesThisMonth int         `json:"entries_this_month"`
}

// CalculateStats summarizes the whole journal: count, average mood (one
// decimal), per-value histogram, most common mood (ties broken by smallest
// value), and this-week/this-month counts.
func CalculateStats(entries []*models.MoodEntry, now time.Time) MoodStats {
	stats := MoodStats{
		Distribution:   make(map[int]int),
		MostCommonMood: defaultMostCommonMood,
	}
	if len(entries) == 0 {
		return stats
	}

	startOfWeek := weekStart(now)
	y, m, _ := now.Date()
	startOfMonth := time.Date(y, m, 1, 0, 0, 0, 0, now.Location())

	sum := 0
	for _, e := range entries {
		stats.TotalEntries++
		sum += e.Mood
		stats.Distribution[e.Mood]++

		t := e.Time()
		if !t.Before(startOfWeek) {
			stats.EntriesThisWeek++
		}
		if !t.Before(startOfMonth) {
			stats.EntriesThisMonth++
		}
	}

	stats.AverageMood = round1(float64(sum) / float64(stats.TotalEntries))

	bestCount := 0
	for mood, count := range stats.Distribution {
		if count > bestCount || (count == bestCount && mood < stats.MostCommonMood) {
			bestCount = count
			stats.MostCommonMood = mood
		}
	}

	return stats
}
