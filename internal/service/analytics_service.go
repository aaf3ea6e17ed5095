package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amirk1998/moodlog/internal/analytics"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/internal/repository"
)

type AnalyticsService struct {
	moodRepo *repository.MoodRepository
	cache    *analytics.ChartCache
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(moodRepo *repository.MoodRepository) *AnalyticsService {
	return &AnalyticsService{
		moodRepo: moodRepo,
		cache:    analytics.NewChartCache(analytics.DefaultCacheMaxAge),
	}
}

// Streak returns current/longest streaks and total distinct days logged
func (s *AnalyticsService) Streak(ctx context.Context) (analytics.StreakSummary, error) {
	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return analytics.StreakSummary{}, err
	}

	return analytics.CalculateStreak(entries, time.Now()), nil
}

// Stats returns aggregate mood statistics
func (s *AnalyticsService) Stats(ctx context.Context) (analytics.MoodStats, error) {
	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return analytics.MoodStats{}, err
	}

	return analytics.CalculateStats(entries, time.Now()), nil
}

// Insights mines entry history for recurring mood patterns
func (s *AnalyticsService) Insights(ctx context.Context) ([]analytics.Insight, error) {
	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return nil, err
	}

	return analytics.PatternInsights(entries), nil
}

// DailyChart returns per-day averages for the trailing window. Results are
// cached; the entry count doubles as the cache fingerprint, so any
// create or delete invalidates on the next read.
func (s *AnalyticsService) DailyChart(ctx context.Context, numDays int) (analytics.DailyChart, error) {
	fingerprint, err := s.moodRepo.Count()
	if err != nil {
		return analytics.DailyChart{}, err
	}

	key := chartKey("daily", numDays)
	if cached, ok := s.cache.Get(key, fingerprint); ok {
		return cached.(analytics.DailyChart), nil
	}

	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return analytics.DailyChart{}, err
	}

	chart := analytics.DailyChartData(entries, numDays, time.Now())
	s.cache.Put(key, fingerprint, chart)

	return chart, nil
}

// WeeklyChart returns per-week averages, weeks starting Monday
func (s *AnalyticsService) WeeklyChart(ctx context.Context, maxWeeks int) (analytics.WeeklyChart, error) {
	fingerprint, err := s.moodRepo.Count()
	if err != nil {
		return analytics.WeeklyChart{}, err
	}

	key := chartKey("weekly", maxWeeks)
	if cached, ok := s.cache.Get(key, fingerprint); ok {
		return cached.(analytics.WeeklyChart), nil
	}

	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return analytics.WeeklyChart{}, err
	}

	chart := analytics.WeeklyChartData(entries, maxWeeks, time.Now())
	s.cache.Put(key, fingerprint, chart)

	return chart, nil
}

// RangeSummary returns stats restricted to a preset trailing window
func (s *AnalyticsService) RangeSummary(ctx context.Context, preset models.RangePreset) (analytics.MoodStats, error) {
	start, end := preset.Bounds(time.Now())

	entries, err := s.moodRepo.GetWithinRange(start, end)
	if err != nil {
		return analytics.MoodStats{}, err
	}

	return analytics.CalculateStats(entries, time.Now()), nil
}

// InvalidateCache drops all cached charts
func (s *AnalyticsService) InvalidateCache() {
	s.cache.Clear()
}

func chartKey(kind string, span int) string {
	return fmt.Sprintf("%s:%d", kind, span)
}
