package analytics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/amirk1998/moodlog/internal/models"
)

// Confidence rates how much data backs an insight.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// InsightKind names the mined dimension.
type InsightKind string

const (
	InsightDayOfWeek InsightKind = "day_of_week"
	InsightContext   InsightKind = "context"
	InsightEmotion   InsightKind = "emotion"
	InsightTimeOfDay InsightKind = "time_of_day"
)

// Insight is one mined correlation between an entry dimension and average
// mood.
type Insight struct {
	Kind        InsightKind `json:"kind"`
	Title       string      `json:"title"`
	Body        string      `json:"body"`
	Confidence  Confidence  `json:"confidence"`
	SampleSize  int         `json:"sample_size"`
	AverageMood float64     `json:"average_mood"`
}

// Sample-size thresholds for insight confidence. A bucket produces no
// insight below minInsightSamples; at or above highConfidenceSamples it is
// rated high, at or above mediumConfidenceSamples medium, otherwise low.
const (
	minInsightSamples       = 3
	mediumConfidenceSamples = 5
	highConfidenceSamples   = 10
)

type bucket struct {
	label string
	sum   int
	count int
}

func (b bucket) average() float64 {
	return float64(b.sum) / float64(b.count)
}

func confidenceFor(samples int) Confidence {
	switch {
	case samples >= highConfidenceSamples:
		return ConfidenceHigh
	case samples >= mediumConfidenceSamples:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// PatternInsights mines four dimensions: day-of-week, context tag, emotion
// co-occurrence, and time-of-day, each correlated with average mood. Only
// buckets with enough samples produce insights.
func PatternInsights(entries []*models.MoodEntry) []Insight {
	var insights []Insight
	insights = append(insights, dayOfWeekInsights(entries)...)
	insights = append(insights, contextInsights(entries)...)
	insights = append(insights, emotionInsights(entries)...)
	insights = append(insights, timeOfDayInsights(entries)...)
	return insights
}

func dayOfWeekInsights(entries []*models.MoodEntry) []Insight {
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		day := e.Time().Weekday().String()
		addSample(buckets, day, e.Mood)
	}

	best, worst, ok := extremes(buckets)
	if !ok {
		return nil
	}

	insights := []Insight{{
		Kind:        InsightDayOfWeek,
		Title:       fmt.Sprintf("%ss are your best day", best.label),
		Body:        fmt.Sprintf("Your average mood on %ss is %.1f across %d entries.", best.label, best.average(), best.count),
		Confidence:  confidenceFor(best.count),
		SampleSize:  best.count,
		AverageMood: round1(best.average()),
	}}

	if worst.label != best.label {
		insights = append(insights, Insight{
			Kind:        InsightDayOfWeek,
			Title:       fmt.Sprintf("%ss tend to be harder", worst.label),
			Body:        fmt.Sprintf("Your average mood on %ss is %.1f across %d entries.", worst.label, worst.average(), worst.count),
			Confidence:  confidenceFor(worst.count),
			SampleSize:  worst.count,
			AverageMood: round1(worst.average()),
		})
	}
	return insights
}

func contextInsights(entries []*models.MoodEntry) []Insight {
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		for _, tag := range e.ContextTags {
			addSample(buckets, tag, e.Mood)
		}
	}

	best, worst, ok := extremes(buckets)
	if !ok {
		return nil
	}

	insights := []Insight{{
		Kind:        InsightContext,
		Title:       fmt.Sprintf("%q lifts your mood", best.label),
		Body:        fmt.Sprintf("Entries tagged %q average %.1f across %d entries.", best.label, best.average(), best.count),
		Confidence:  confidenceFor(best.count),
		SampleSize:  best.count,
		AverageMood: round1(best.average()),
	}}

	if worst.label != best.label {
		insights = append(insights, Insight{
			Kind:        InsightContext,
			Title:       fmt.Sprintf("%q weighs on you", worst.label),
			Body:        fmt.Sprintf("Entries tagged %q average %.1f across %d entries.", worst.label, worst.average(), worst.count),
			Confidence:  confidenceFor(worst.count),
			SampleSize:  worst.count,
			AverageMood: round1(worst.average()),
		})
	}
	return insights
}

func emotionInsights(entries []*models.MoodEntry) []Insight {
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		for _, em := range e.Emotions {
			addSample(buckets, strings.ToLower(em.Name), e.Mood)
			// keep a display-cased label
			buckets[strings.ToLower(em.Name)].label = em.Name
		}
	}

	best, worst, ok := extremes(buckets)
	if !ok {
		return nil
	}

	insights := []Insight{{
		Kind:        InsightEmotion,
		Title:       fmt.Sprintf("Feeling %s comes with your highest moods", best.label),
		Body:        fmt.Sprintf("Entries with %s average %.1f across %d entries.", best.label, best.average(), best.count),
		Confidence:  confidenceFor(best.count),
		SampleSize:  best.count,
		AverageMood: round1(best.average()),
	}}

	if worst.label != best.label {
		insights = append(insights, Insight{
			Kind:        InsightEmotion,
			Title:       fmt.Sprintf("Feeling %s comes with your lowest moods", worst.label),
			Body:        fmt.Sprintf("Entries with %s average %.1f across %d entries.", worst.label, worst.average(), worst.count),
			Confidence:  confidenceFor(worst.count),
			SampleSize:  worst.count,
			AverageMood: round1(worst.average()),
		})
	}
	return insights
}

func timeOfDayInsights(entries []*models.MoodEntry) []Insight {
	buckets := make(map[string]*bucket)
	for _, e := range entries {
		addSample(buckets, timeOfDayLabel(e.Time()), e.Mood)
	}

	best, _, ok := extremes(buckets)
	if !ok {
		return nil
	}

	return []Insight{{
		Kind:        InsightTimeOfDay,
		Title:       fmt.Sprintf("Your mood peaks in the %s", best.label),
		Body:        fmt.Sprintf("%s entries average %.1f across %d entries.", capitalize(best.label), best.average(), best.count),
		Confidence:  confidenceFor(best.count),
		SampleSize:  best.count,
		AverageMood: round1(best.average()),
	}}
}

func timeOfDayLabel(t time.Time) string {
	switch h := t.Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 22:
		return "evening"
	default:
		return "night"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func addSample(buckets map[string]*bucket, label string, mood int) {
	b, ok := buckets[label]
	if !ok {
		b = &bucket{label: label}
		buckets[label] = b
	}
	b.sum += mood
	b.count++
}

// extremes returns the highest- and lowest-average buckets among those with
// enough samples. Ties break on label so output is deterministic.
func extremes(buckets map[string]*bucket) (best, worst bucket, ok bool) {
	var eligible []bucket
	for _, b := range buckets {
		if b.count >= minInsightSamples {
			eligible = append(eligible, *b)
		}
	}
	if len(eligible) == 0 {
		return bucket{}, bucket{}, false
	}

	sort.Slice(eligible, func(i, j int) bool {
		if eligible[i].average() != eligible[j].average() {
			return eligible[i].average() > eligible[j].average()
		}
		return eligible[i].label < eligible[j].label
	})

	return eligible[0], eligible[len(eligible)-1], true
}
