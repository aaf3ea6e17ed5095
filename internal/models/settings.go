package models

// MoodScaleConfig describes the active rating scale. The 0-10 discrete
// scale is the guaranteed baseline; alternate scales only change the
// validated bounds, never the stored representation.
type MoodScaleConfig struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// DefaultMoodScale is the fixed 11-point baseline scale.
func DefaultMoodScale() MoodScaleConfig {
	return MoodScaleConfig{Min: 0, Max: 10}
}

// QuickEntryConfig controls which optional fields the quick-entry flow shows.
type QuickEntryConfig struct {
	ShowNote     bool `json:"show_note"`
	ShowEnergy   bool `json:"show_energy"`
	ShowEmotions bool `json:"show_emotions"`
	ShowContext  bool `json:"show_context"`
	ShowPhotos   bool `json:"show_photos"`
	ShowLocation bool `json:"show_location"`
}

// DefaultQuickEntryConfig shows the lightweight fields only.
func DefaultQuickEntryConfig() QuickEntryConfig {
	return QuickEntryConfig{
		ShowNote:     true,
		ShowEnergy:   true,
		ShowEmotions: true,
	}
}
