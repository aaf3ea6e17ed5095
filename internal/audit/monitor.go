package audit

import (
	"fmt"
	"log"
	"time"
)

// storageFailureThreshold is how many failed storage events in the lookback
// window trigger a critical health event.
const storageFailureThreshold = 5

type Monitor struct {
	logger *Logger
}

// NewMonitor creates a storage health monitor over the audit log
func NewMonitor(logger *Logger) *Monitor {
	return &Monitor{
		logger: logger,
	}
}

// CheckStorageHealth scans recent audit events for repeated storage
// failures. A burst of failed writes usually means the database file is
// corrupted or the disk is full, which deserves a loud signal before the
// user loses entries.
func (m *Monitor) CheckStorageHealth() error {
	now := time.Now()
	tenMinutesAgo := now.Add(-10 * time.Minute)

	filters := QueryFilters{
		StartTime: &tenMinutesAgo,
		EndTime:   &now,
		Level:     LevelError,
		Limit:     1000,
	}

	events, err := m.logger.QueryLogs(filters)
	if err != nil {
		return fmt.Errorf("failed to query audit logs: %w", err)
	}

	failures := 0
	for _, event := range events {
		if !event.Success {
			failures++
		}
	}

	if failures >= storageFailureThreshold {
		log.Printf("HEALTH ALERT: %d failed storage operations in the last 10 minutes", failures)

		m.logger.Log(&Event{
			Level:    LevelCritical,
			Action:   "STORAGE_FAILURE_THRESHOLD",
			Resource: "storage",
			Success:  false,
			ErrorMsg: fmt.Sprintf("%d failures detected", failures),
		})
	}

	return nil
}
