package repository

import (
	"time"

	"github.com/amirk1998/moodlog/internal/database"
	"github.com/amirk1998/moodlog/internal/models"
)

// Documented settings keys. Everything user-configurable lives in the flat
// key-value namespace under these names.
const (
	keyDetailedLabels      = "detailed_labels_enabled"
	keyDeveloperMode       = "developer_mode_enabled"
	keyHaptics             = "haptics_enabled"
	keyCustomContextTags   = "custom_context_tags"
	keyQuickEntryFields    = "quick_entry_fields"
	keyMoodScale           = "mood_scale"
	keyExportFields        = "export_fields"
	keyAppLockEnabled      = "app_lock_enabled"
	keyAppLockPINHash      = "app_lock_pin_hash"
	keyOnboardingCompleted = "onboarding_completed"
	keyLastBackupAt        = "last_backup_at"
)

// SettingsRepository exposes typed accessors for the documented settings
// keys over the key-value adapter. Haptics and similar flags are explicit
// state here rather than process-wide mutable variables, so callers and
// tests never share globals.
type SettingsRepository struct {
	kv *database.KVStore
}

// NewSettingsRepository creates a settings repository
func NewSettingsRepository(kv *database.KVStore) *SettingsRepository {
	return &SettingsRepository{kv: kv}
}

func (r *SettingsRepository) DetailedLabelsEnabled() (bool, error) {
	return r.kv.GetBool(keyDetailedLabels, true)
}

func (r *SettingsRepository) SetDetailedLabelsEnabled(v bool) error {
	return r.kv.SetBool(keyDetailedLabels, v)
}

func (r *SettingsRepository) DeveloperModeEnabled() (bool, error) {
	return r.kv.GetBool(keyDeveloperMode, false)
}

func (r *SettingsRepository) SetDeveloperModeEnabled(v bool) error {
	return r.kv.SetBool(keyDeveloperMode, v)
}

func (r *SettingsRepository) HapticsEnabled() (bool, error) {
	return r.kv.GetBool(keyHaptics, true)
}

func (r *SettingsRepository) SetHapticsEnabled(v bool) error {
	return r.kv.SetBool(keyHaptics, v)
}

func (r *SettingsRepository) CustomContextTags() ([]string, error) {
	var tags []string
	ok, err := r.kv.GetJSON(keyCustomContextTags, &tags)
	if err != nil || !ok {
		return nil, err
	}
	return tags, nil
}

func (r *SettingsRepository) SetCustomContextTags(tags []string) error {
	return r.kv.SetJSON(keyCustomContextTags, tags)
}

func (r *SettingsRepository) QuickEntryConfig() (models.QuickEntryConfig, error) {
	cfg := models.DefaultQuickEntryConfig()
	ok, err := r.kv.GetJSON(keyQuickEntryFields, &cfg)
	if err != nil {
		return models.DefaultQuickEntryConfig(), err
	}
	if !ok {
		return models.DefaultQuickEntryConfig(), nil
	}
	return cfg, nil
}

func (r *SettingsRepository) SetQuickEntryConfig(cfg models.QuickEntryConfig) error {
	return r.kv.SetJSON(keyQuickEntryFields, cfg)
}

// MoodScale returns the configured rating scale, defaulting to the fixed
// 0-10 baseline. A stored scale with inverted bounds is ignored.
func (r *SettingsRepository) MoodScale() (models.MoodScaleConfig, error) {
	scale := models.DefaultMoodScale()
	ok, err := r.kv.GetJSON(keyMoodScale, &scale)
	if err != nil {
		return models.DefaultMoodScale(), err
	}
	if !ok || scale.Min >= scale.Max {
		return models.DefaultMoodScale(), nil
	}
	return scale, nil
}

func (r *SettingsRepository) SetMoodScale(scale models.MoodScaleConfig) error {
	return r.kv.SetJSON(keyMoodScale, scale)
}

// ExportFields returns the therapy-export field selection, in order.
func (r *SettingsRepository) ExportFields() ([]string, error) {
	var fields []string
	ok, err := r.kv.GetJSON(keyExportFields, &fields)
	if err != nil {
		return nil, err
	}
	if !ok || len(fields) == 0 {
		return []string{"timestamp", "mood", "emotions", "context", "energy", "notes"}, nil
	}
	return fields, nil
}

func (r *SettingsRepository) SetExportFields(fields []string) error {
	return r.kv.SetJSON(keyExportFields, fields)
}

func (r *SettingsRepository) AppLockEnabled() (bool, error) {
	return r.kv.GetBool(keyAppLockEnabled, false)
}

func (r *SettingsRepository) SetAppLockEnabled(v bool) error {
	return r.kv.SetBool(keyAppLockEnabled, v)
}

func (r *SettingsRepository) AppLockPINHash() (string, error) {
	hash, _, err := r.kv.Get(keyAppLockPINHash)
	return hash, err
}

func (r *SettingsRepository) SetAppLockPINHash(hash string) error {
	return r.kv.Set(keyAppLockPINHash, hash)
}

func (r *SettingsRepository) ClearAppLockPINHash() error {
	return r.kv.Delete(keyAppLockPINHash)
}

func (r *SettingsRepository) OnboardingCompleted() (bool, error) {
	return r.kv.GetBool(keyOnboardingCompleted, false)
}

func (r *SettingsRepository) SetOnboardingCompleted(v bool) error {
	return r.kv.SetBool(keyOnboardingCompleted, v)
}

// LastBackupAt returns the time of the last successful backup, zero when
// none has run yet.
func (r *SettingsRepository) LastBackupAt() (time.Time, error) {
	raw, ok, err := r.kv.Get(keyLastBackupAt)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, nil
	}
	return t, nil
}

func (r *SettingsRepository) SetLastBackupAt(t time.Time) error {
	return r.kv.Set(keyLastBackupAt, t.Format(time.RFC3339))
}
