package analytics

import (
	"testing"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

func TestDailyChartDataGapsAreNil(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 12, 9), 6),
		entryAt(localDate(2026, time.August, 12, 20), 7),
		entryAt(localDate(2026, time.August, 10, 9), 4),
	}

	chart := DailyChartData(entries, 3, now)

	if len(chart.Labels) != 3 || len(chart.Averages) != 3 {
		t.Fatalf("expected 3 points, got %d labels / %d averages", len(chart.Labels), len(chart.Averages))
	}

	// Oldest first: Aug 10, Aug 11 (gap), Aug 12.
	if chart.Averages[0] == nil || *chart.Averages[0] != 4 {
		t.Errorf("Averages[0] = %v, want 4", chart.Averages[0])
	}
	if chart.Averages[1] != nil {
		t.Errorf("Averages[1] = %v, want nil for a day with no entries", *chart.Averages[1])
	}
	if chart.Averages[2] == nil || *chart.Averages[2] != 6.5 {
		t.Errorf("Averages[2] = %v, want 6.5", chart.Averages[2])
	}
}

func TestDailyChartDataEmptyWindow(t *testing.T) {
	now := localDate(2026, time.August, 12, 15)

	chart := DailyChartData(nil, 0, now)

	if len(chart.Labels) != 0 {
		t.Errorf("expected empty chart for zero-day window, got %d labels", len(chart.Labels))
	}
}

func TestWeeklyChartData(t *testing.T) {
	// Wednesday; the current week starts Monday 2026-08-10.
	now := localDate(2026, time.August, 12, 15)

	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 10, 9), 6),
		entryAt(localDate(2026, time.August, 12, 9), 8),
		// Sunday belongs to the week starting Monday 2026-08-03.
		entryAt(localDate(2026, time.August, 9, 23), 3),
	}

	chart := WeeklyChartData(entries, 3, now)

	if len(chart.Averages) != 3 {
		t.Fatalf("expected 3 weeks, got %d", len(chart.Averages))
	}

	// Oldest first: week of Jul 27 (empty), week of Aug 3, week of Aug 10.
	if chart.Averages[0] != nil {
		t.Errorf("Averages[0] = %v, want nil", *chart.Averages[0])
	}
	if chart.Averages[1] == nil || *chart.Averages[1] != 3 {
		t.Errorf("Averages[1] = %v, want 3", chart.Averages[1])
	}
	if chart.Averages[2] == nil || *chart.Averages[2] != 7 {
		t.Errorf("Averages[2] = %v, want 7", chart.Averages[2])
	}
}

func TestWeekStartIsMonday(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday",
			in:   localDate(2026, time.August, 12, 15),
			want: localDate(2026, time.August, 10, 0),
		},
		{
			name: "monday maps to itself",
			in:   localDate(2026, time.August, 10, 0),
			want: localDate(2026, time.August, 10, 0),
		},
		{
			name: "sunday maps to previous monday",
			in:   localDate(2026, time.August, 9, 23),
			want: localDate(2026, time.August, 3, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := weekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("weekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
