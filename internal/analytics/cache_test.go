package analytics

import (
	"testing"
	"time"
)

func TestChartCacheHit(t *testing.T) {
	cache := NewChartCache(DefaultCacheMaxAge)

	if _, ok := cache.Get("daily:7", 3); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Put("daily:7", 3, "value")

	got, ok := cache.Get("daily:7", 3)
	if !ok {
		t.Fatal("expected hit after Put")
	}
	if got != "value" {
		t.Errorf("got %v, want %q", got, "value")
	}
}

func TestChartCacheFingerprintMismatch(t *testing.T) {
	cache := NewChartCache(DefaultCacheMaxAge)
	cache.Put("daily:7", 3, "value")

	// A create or delete changes the entry count, so the next read misses.
	if _, ok := cache.Get("daily:7", 4); ok {
		t.Error("expected miss when fingerprint changed")
	}
}

func TestChartCacheExpiry(t *testing.T) {
	cache := NewChartCache(5 * time.Minute)

	base := time.Date(2026, time.August, 12, 12, 0, 0, 0, time.UTC)
	current := base
	cache.now = func() time.Time { return current }

	cache.Put("weekly:8", 10, "value")

	current = base.Add(4 * time.Minute)
	if _, ok := cache.Get("weekly:8", 10); !ok {
		t.Error("expected hit within max age")
	}

	current = base.Add(5 * time.Minute)
	if _, ok := cache.Get("weekly:8", 10); ok {
		t.Error("expected miss at max age")
	}
}

func TestChartCacheClear(t *testing.T) {
	cache := NewChartCache(DefaultCacheMaxAge)
	cache.Put("daily:7", 1, "a")
	cache.Put("weekly:8", 1, "b")

	cache.Clear()

	if _, ok := cache.Get("daily:7", 1); ok {
		t.Error("expected miss after Clear")
	}
	if _, ok := cache.Get("weekly:8", 1); ok {
		t.Error("expected miss after Clear")
	}
}
