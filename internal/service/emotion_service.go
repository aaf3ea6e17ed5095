package service

import (
	"context"
	goerrors "errors"
	"fmt"

	"github.com/amirk1998/moodlog/internal/audit"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/pkg/errors"
	"github.com/amirk1998/moodlog/pkg/validator"
)

type EmotionService struct {
	emotionRepo *repository.EmotionRepository
	moodRepo    *repository.MoodRepository
	validator   *validator.Validator
	auditLogger *audit.Logger
}

// NewEmotionService creates a new emotion preset service
func NewEmotionService(
	emotionRepo *repository.EmotionRepository,
	moodRepo *repository.MoodRepository,
	auditLogger *audit.Logger,
) *EmotionService {
	return &EmotionService{
		emotionRepo: emotionRepo,
		moodRepo:    moodRepo,
		validator:   validator.New(),
		auditLogger: auditLogger,
	}
}

// List returns all emotion presets sorted by name
func (s *EmotionService) List(ctx context.Context) ([]models.Emotion, error) {
	return s.emotionRepo.GetAll()
}

// Add adds a new emotion preset
func (s *EmotionService) Add(ctx context.Context, emotion models.Emotion) error {
	emotion.Name = s.validator.SanitizeString(emotion.Name)

	if err := s.validator.ValidateEmotionName(emotion.Name); err != nil {
		return err
	}

	if !emotion.Category.Valid() {
		return errors.ErrInvalidCategory
	}

	if err := s.emotionRepo.Add(emotion); err != nil {
		return err
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "EMOTION_ADDED",
		Resource: "emotions",
		Success:  true,
		Metadata: fmt.Sprintf("name=%s", emotion.Name),
	})

	return nil
}

// Update updates a preset. When cascade is set, the category change is
// propagated into the embedded copies on existing entries; the returned
// count is the number of entries rewritten.
func (s *EmotionService) Update(ctx context.Context, oldName string, emotion models.Emotion, cascade bool) (int, error) {
	emotion.Name = s.validator.SanitizeString(emotion.Name)

	if err := s.validator.ValidateEmotionName(emotion.Name); err != nil {
		return 0, err
	}

	if !emotion.Category.Valid() {
		return 0, errors.ErrInvalidCategory
	}

	if err := s.emotionRepo.Update(oldName, emotion); err != nil {
		return 0, err
	}

	updated := 0
	if cascade {
		var err error
		updated, err = s.moodRepo.UpdateEmotionCategoryAcrossEntries(emotion.Name, emotion.Category)
		if err != nil {
			s.auditLogger.Log(&audit.Event{
				Level:    audit.LevelError,
				Action:   "EMOTION_CASCADE_FAILED",
				Resource: "emotions",
				Success:  false,
				ErrorMsg: err.Error(),
				Metadata: fmt.Sprintf("name=%s", emotion.Name),
			})
			return 0, err
		}
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "EMOTION_UPDATED",
		Resource: "emotions",
		Success:  true,
		Metadata: fmt.Sprintf("name=%s cascade=%d", emotion.Name, updated),
	})

	return updated, nil
}

// Delete removes a preset. When removeFromEntries is set, the emotion is
// also stripped from the entries that embed it; the returned count is the
// number of entries rewritten. When the last preset is deleted, the
// defaults are reseeded so the picker never goes empty.
func (s *EmotionService) Delete(ctx context.Context, name string, removeFromEntries bool) (int, error) {
	if err := s.emotionRepo.Delete(name); err != nil {
		return 0, err
	}

	removed := 0
	if removeFromEntries {
		var err error
		removed, err = s.moodRepo.RemoveEmotionFromEntries(name)
		if err != nil {
			return 0, err
		}
	}

	count, err := s.emotionRepo.Count()
	if err == nil && count == 0 {
		if seeded, err := s.emotionRepo.EnsureDefaults(); err == nil && seeded > 0 {
			s.auditLogger.Log(&audit.Event{
				Level:    audit.LevelInfo,
				Action:   "EMOTION_DEFAULTS_RESEEDED",
				Resource: "emotions",
				Success:  true,
				Metadata: fmt.Sprintf("count=%d", seeded),
			})
		}
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "EMOTION_DELETED",
		Resource: "emotions",
		Success:  true,
		Metadata: fmt.Sprintf("name=%s cascade=%d", name, removed),
	})

	return removed, nil
}

// ImportFromEntries adds a preset for every emotion name found in entry
// history that has no preset yet, defaulting to neutral. Returns how many
// presets were added.
func (s *EmotionService) ImportFromEntries(ctx context.Context) (int, error) {
	names, err := s.moodRepo.DistinctEmotionNames()
	if err != nil {
		return 0, err
	}

	added := 0
	for _, name := range names {
		err := s.emotionRepo.Add(models.Emotion{Name: name, Category: models.CategoryNeutral})
		if err != nil {
			if goerrors.Is(err, errors.ErrDuplicateEmotion) {
				continue
			}
			return added, err
		}
		added++
	}

	if added > 0 {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelInfo,
			Action:   "EMOTIONS_IMPORTED",
			Resource: "emotions",
			Success:  true,
			Metadata: fmt.Sprintf("count=%d", added),
		})
	}

	return added, nil
}
