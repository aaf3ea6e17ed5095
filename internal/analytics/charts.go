package analytics

import (
	"math"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

// DailyChart holds per-day average moods for a trailing window. Days with
// no entries carry nil rather than zero so a line chart shows a gap instead
// of a dip.
type DailyChart struct {
	Labels   []string   `json:"labels"`
	Averages []*float64 `json:"averages"`
}

// WeeklyChart holds per-week average moods, weeks starting Monday.
type WeeklyChart struct {
	Labels   []string   `json:"labels"`
	Averages []*float64 `json:"averages"`
}

// DailyChartData buckets entries into the trailing numDays local days
// ending today, oldest first.
func DailyChartData(entries []*models.MoodEntry, numDays int, now time.Time) DailyChart {
	chart := DailyChart{}
	if numDays <= 0 {
		return chart
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range entries {
		day := e.Day()
		sums[day] += e.Mood
		counts[day]++
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for i := numDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := day.Format("2006-01-02")
		chart.Labels = append(chart.Labels, day.Format("Jan 2"))
		if counts[key] == 0 {
			chart.Averages = append(chart.Averages, nil)
			continue
		}
		avg := round1(float64(sums[key]) / float64(counts[key]))
		chart.Averages = append(chart.Averages, &avg)
	}
	return chart
}

// WeeklyChartData buckets entries into the trailing maxWeeks weeks ending
// with the current week, oldest first. Weeks start on Monday.
func WeeklyChartData(entries []*models.MoodEntry, maxWeeks int, now time.Time) WeeklyChart {
	chart := WeeklyChart{}
	if maxWeeks <= 0 {
		return chart
	}

	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, e := range entries {
		key := weekStart(e.Time()).Format("2006-01-02")
		sums[key] += e.Mood
		counts[key]++
	}

	currentWeek := weekStart(now)
	for i := maxWeeks - 1; i >= 0; i-- {
		week := currentWeek.AddDate(0, 0, -7*i)
		key := week.Format("2006-01-02")
		chart.Labels = append(chart.Labels, week.Format("Jan 2"))
		if counts[key] == 0 {
			chart.Averages = append(chart.Averages, nil)
			continue
		}
		avg := round1(float64(sums[key]) / float64(counts[key]))
		chart.Averages = append(chart.Averages, &avg)
	}
	return chart
}

// weekStart returns midnight of the Monday of t's week, local time.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(midnight.Weekday()) + 6) % 7 // Monday = 0
	return midnight.AddDate(0, 0, -offset)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
