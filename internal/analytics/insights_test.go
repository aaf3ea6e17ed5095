package analytics

import (
	"strings"
	"testing"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

func TestConfidenceFor(t *testing.T) {
	tests := []struct {
		samples int
		want    Confidence
	}{
		{3, ConfidenceLow},
		{4, ConfidenceLow},
		{5, ConfidenceMedium},
		{9, ConfidenceMedium},
		{10, ConfidenceHigh},
		{50, ConfidenceHigh},
	}

	for _, tt := range tests {
		if got := confidenceFor(tt.samples); got != tt.want {
			t.Errorf("confidenceFor(%d) = %s, want %s", tt.samples, got, tt.want)
		}
	}
}

func TestPatternInsightsNotEnoughData(t *testing.T) {
	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 10, 9), 7),
		entryAt(localDate(2026, time.August, 11, 9), 3),
	}

	if got := PatternInsights(entries); len(got) != 0 {
		t.Errorf("expected no insights below the sample threshold, got %d", len(got))
	}
}

func TestDayOfWeekInsights(t *testing.T) {
	// Three Mondays high, three Wednesdays low.
	entries := []*models.MoodEntry{
		entryAt(localDate(2026, time.August, 3, 9), 8),
		entryAt(localDate(2026, time.August, 10, 9), 8),
		entryAt(localDate(2026, time.August, 17, 9), 8),
		entryAt(localDate(2026, time.August, 5, 9), 2),
		entryAt(localDate(2026, time.August, 12, 9), 2),
		entryAt(localDate(2026, time.August, 19, 9), 2),
	}

	insights := dayOfWeekInsights(entries)
	if len(insights) != 2 {
		t.Fatalf("expected best and worst insight, got %d", len(insights))
	}

	best, worst := insights[0], insights[1]
	if !strings.Contains(best.Title, "Monday") {
		t.Errorf("best title %q should name Monday", best.Title)
	}
	if !strings.Contains(worst.Title, "Wednesday") {
		t.Errorf("worst title %q should name Wednesday", worst.Title)
	}
	if best.Confidence != ConfidenceLow {
		t.Errorf("best confidence = %s, want low for 3 samples", best.Confidence)
	}
	if best.SampleSize != 3 {
		t.Errorf("best sample size = %d, want 3", best.SampleSize)
	}
	if best.AverageMood != 8 {
		t.Errorf("best average = %v, want 8", best.AverageMood)
	}
}

func TestContextInsights(t *testing.T) {
	var entries []*models.MoodEntry
	for i := 0; i < 5; i++ {
		e := entryAt(localDate(2026, time.August, 1+i, 9), 9)
		e.ContextTags = []string{"exercise"}
		entries = append(entries, e)
	}
	for i := 0; i < 5; i++ {
		e := entryAt(localDate(2026, time.August, 10+i, 9), 2)
		e.ContextTags = []string{"work"}
		entries = append(entries, e)
	}

	insights := contextInsights(entries)
	if len(insights) != 2 {
		t.Fatalf("expected best and worst insight, got %d", len(insights))
	}

	if !strings.Contains(insights[0].Title, "exercise") {
		t.Errorf("best title %q should name exercise", insights[0].Title)
	}
	if !strings.Contains(insights[1].Title, "work") {
		t.Errorf("worst title %q should name work", insights[1].Title)
	}
	if insights[0].Confidence != ConfidenceMedium {
		t.Errorf("confidence = %s, want medium for 5 samples", insights[0].Confidence)
	}
}

func TestEmotionInsightsCaseInsensitiveGrouping(t *testing.T) {
	var entries []*models.MoodEntry
	names := []string{"Happy", "happy", "HAPPY"}
	for i, name := range names {
		e := entryAt(localDate(2026, time.August, 1+i, 9), 8)
		e.Emotions = []models.Emotion{{Name: name, Category: models.CategoryPositive}}
		entries = append(entries, e)
	}

	insights := emotionInsights(entries)
	if len(insights) != 1 {
		t.Fatalf("expected a single insight for one case-folded emotion, got %d", len(insights))
	}
	if insights[0].SampleSize != 3 {
		t.Errorf("sample size = %d, want 3 (case variants grouped)", insights[0].SampleSize)
	}
}

func TestTimeOfDayLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{5, "morning"},
		{11, "morning"},
		{12, "afternoon"},
		{16, "afternoon"},
		{17, "evening"},
		{21, "evening"},
		{22, "night"},
		{3, "night"},
	}

	for _, tt := range tests {
		in := localDate(2026, time.August, 12, tt.hour)
		if got := timeOfDayLabel(in); got != tt.want {
			t.Errorf("timeOfDayLabel(hour %d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}
