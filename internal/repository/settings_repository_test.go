package repository

import (
	"testing"
	"time"

	"github.com/amirk1998/moodlog/internal/database"
	"github.com/amirk1998/moodlog/internal/models"
)

func newSettingsRepo(t *testing.T) *SettingsRepository {
	t.Helper()
	return NewSettingsRepository(database.NewKVStore(newTestDB(t)))
}

func TestSettingsMoodScale(t *testing.T) {
	repo := newSettingsRepo(t)

	scale, err := repo.MoodScale()
	if err != nil {
		t.Fatal(err)
	}
	if scale != models.DefaultMoodScale() {
		t.Errorf("unset scale = %+v, want default", scale)
	}

	if err := repo.SetMoodScale(models.MoodScaleConfig{Min: 1, Max: 5}); err != nil {
		t.Fatal(err)
	}
	scale, _ = repo.MoodScale()
	if scale.Min != 1 || scale.Max != 5 {
		t.Errorf("scale = %+v, want 1-5", scale)
	}

	// Inverted bounds are ignored in favor of the default.
	if err := repo.SetMoodScale(models.MoodScaleConfig{Min: 9, Max: 2}); err != nil {
		t.Fatal(err)
	}
	scale, _ = repo.MoodScale()
	if scale != models.DefaultMoodScale() {
		t.Errorf("inverted scale = %+v, want default", scale)
	}
}

func TestSettingsExportFieldsDefault(t *testing.T) {
	repo := newSettingsRepo(t)

	fields, err := repo.ExportFields()
	if err != nil {
		t.Fatal(err)
	}
	if len(fields) != 6 {
		t.Errorf("default selection has %d fields, want 6", len(fields))
	}

	if err := repo.SetExportFields([]string{"mood", "timestamp"}); err != nil {
		t.Fatal(err)
	}
	fields, _ = repo.ExportFields()
	if len(fields) != 2 || fields[0] != "mood" {
		t.Errorf("fields = %v", fields)
	}
}

func TestSettingsAppLock(t *testing.T) {
	repo := newSettingsRepo(t)

	enabled, err := repo.AppLockEnabled()
	if err != nil || enabled {
		t.Errorf("lock should default off, got (%v, %v)", enabled, err)
	}

	if err := repo.SetAppLockPINHash("hash-value"); err != nil {
		t.Fatal(err)
	}
	if err := repo.SetAppLockEnabled(true); err != nil {
		t.Fatal(err)
	}

	hash, err := repo.AppLockPINHash()
	if err != nil || hash != "hash-value" {
		t.Errorf("hash = (%q, %v)", hash, err)
	}

	if err := repo.ClearAppLockPINHash(); err != nil {
		t.Fatal(err)
	}
	hash, _ = repo.AppLockPINHash()
	if hash != "" {
		t.Errorf("hash after clear = %q, want empty", hash)
	}
}

func TestSettingsLastBackupAt(t *testing.T) {
	repo := newSettingsRepo(t)

	last, err := repo.LastBackupAt()
	if err != nil {
		t.Fatal(err)
	}
	if !last.IsZero() {
		t.Errorf("unset backup time = %v, want zero", last)
	}

	at := time.Date(2026, time.August, 12, 3, 0, 0, 0, time.UTC)
	if err := repo.SetLastBackupAt(at); err != nil {
		t.Fatal(err)
	}

	last, err = repo.LastBackupAt()
	if err != nil {
		t.Fatal(err)
	}
	if !last.Equal(at) {
		t.Errorf("got %v, want %v", last, at)
	}
}
