package validator

import (
	"regexp"
	"strings"

	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/pkg/errors"
)

var (
	// PIN: 4-8 digits
	pinRegex = regexp.MustCompile(`^[0-9]{4,8}$`)

	// Emotion name: letters, spaces, hyphens
	emotionNameRegex = regexp.MustCompile(`^[\p{L}][\p{L} '-]{0,39}$`)
)

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateMood checks that a mood value falls within the configured scale
func (v *Validator) ValidateMood(mood int, scale models.MoodScaleConfig) error {
	if mood < scale.Min || mood > scale.Max {
		return errors.ErrMoodOutOfRange
	}

	return nil
}

// ValidateEnergy checks an optional energy level
func (v *Validator) ValidateEnergy(energy *int, scale models.MoodScaleConfig) error {
	if energy == nil {
		return nil
	}

	if *energy < scale.Min || *energy > scale.Max {
		return errors.ErrEnergyOutOfRange
	}

	return nil
}

// ValidateEmotions checks the emotion list attached to an entry
func (v *Validator) ValidateEmotions(emotions []models.Emotion) error {
	if len(emotions) > models.MaxEmotionsPerEntry {
		return errors.ErrTooManyEmotions
	}

	for _, emotion := range emotions {
		if err := v.ValidateEmotionName(emotion.Name); err != nil {
			return err
		}
		if !emotion.Category.Valid() {
			return errors.ErrInvalidCategory
		}
	}

	return nil
}

// ValidateEmotionName validates a single emotion name
func (v *Validator) ValidateEmotionName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) == 0 {
		return errors.NewAppError(errors.ErrValidation, "emotion name cannot be empty", 400)
	}

	if !emotionNameRegex.MatchString(name) {
		return errors.NewAppError(errors.ErrValidation, "emotion name contains invalid characters", 400)
	}

	return nil
}

// ValidateNote validates entry note text
func (v *Validator) ValidateNote(note string) error {
	if len(note) > 65536 { // 64KB max
		return errors.NewAppError(errors.ErrValidation, "note too long (max 64KB)", 400)
	}

	return nil
}

// ValidatePIN checks an app-lock PIN
func (v *Validator) ValidatePIN(pin string) error {
	if !pinRegex.MatchString(pin) {
		return errors.NewAppError(errors.ErrInvalidPIN, "PIN must be 4-8 digits", 400)
	}

	return nil
}

// SanitizeString removes dangerous characters and null bytes
func (v *Validator) SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Trim whitespace
	input = strings.TrimSpace(input)

	return input
}
