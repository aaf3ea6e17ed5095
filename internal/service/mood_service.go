package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amirk1998/moodlog/internal/audit"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/internal/ratelimit"
	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/internal/security"
	"github.com/amirk1998/moodlog/pkg/validator"
)

type MoodService struct {
	moodRepo    *repository.MoodRepository
	settings    *repository.SettingsRepository
	encryptor   *security.NoteEncryptor
	validator   *validator.Validator
	rateLimiter *ratelimit.RateLimiter
	auditLogger *audit.Logger
}

// NewMoodService creates a new mood entry service
func NewMoodService(
	moodRepo *repository.MoodRepository,
	settings *repository.SettingsRepository,
	encryptor *security.NoteEncryptor,
	rateLimiter *ratelimit.RateLimiter,
	auditLogger *audit.Logger,
) *MoodService {
	return &MoodService{
		moodRepo:    moodRepo,
		settings:    settings,
		encryptor:   encryptor,
		validator:   validator.New(),
		rateLimiter: rateLimiter,
		auditLogger: auditLogger,
	}
}

// Create creates a new mood entry
func (s *MoodService) Create(ctx context.Context, req *models.CreateEntryRequest) (*models.MoodEntry, error) {
	// Rate limiting
	if err := s.rateLimiter.CheckLimit("entry_create"); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelWarning,
			Action:   "ENTRY_CREATE_RATE_LIMITED",
			Resource: "entries",
			Success:  false,
		})
		return nil, err
	}

	scale, err := s.settings.MoodScale()
	if err != nil {
		return nil, fmt.Errorf("failed to load mood scale: %w", err)
	}

	// Validate input
	req.Note = s.validator.SanitizeString(req.Note)

	if err := s.validator.ValidateMood(req.Mood, scale); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelWarning,
			Action:   "ENTRY_CREATE_INVALID_MOOD",
			Resource: "entries",
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, err
	}

	if err := s.validator.ValidateEnergy(req.Energy, scale); err != nil {
		return nil, err
	}

	if err := s.validator.ValidateNote(req.Note); err != nil {
		return nil, err
	}

	// Extra emotions are dropped silently, the cap is a storage invariant
	// rather than a user error
	if len(req.Emotions) > models.MaxEmotionsPerEntry {
		req.Emotions = req.Emotions[:models.MaxEmotionsPerEntry]
	}

	if err := s.validator.ValidateEmotions(req.Emotions); err != nil {
		return nil, err
	}

	timestamp := time.Now().UnixMilli()
	if req.Timestamp != nil {
		timestamp = *req.Timestamp
	}

	// Encrypt note
	encryptedNote, err := s.encryptor.Encrypt(req.Note)
	if err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_CREATE_ENCRYPTION_FAILED",
			Resource: "entries",
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, fmt.Errorf("failed to encrypt note: %w", err)
	}

	entry := &models.MoodEntry{
		Mood:          req.Mood,
		Timestamp:     timestamp,
		NoteEncrypted: encryptedNote,
		Energy:        req.Energy,
		Emotions:      req.Emotions,
		ContextTags:   req.ContextTags,
		Photos:        req.Photos,
		Location:      req.Location,
	}

	if err := s.moodRepo.Create(entry); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_CREATE_DB_ERROR",
			Resource: "entries",
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	// Decrypt for response
	entry.Note = req.Note

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "ENTRY_CREATED",
		Resource: "entries",
		EntryID:  &entry.ID,
		Success:  true,
	})

	return entry, nil
}

// GetByID retrieves a single entry
func (s *MoodService) GetByID(ctx context.Context, id int64) (*models.MoodEntry, error) {
	entry, err := s.moodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.decryptEntry(entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// List retrieves all entries, newest first
func (s *MoodService) List(ctx context.Context) ([]*models.MoodEntry, error) {
	entries, err := s.moodRepo.GetAll()
	if err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_LIST_FAILED",
			Resource: "entries",
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, err
	}

	s.decryptEntries(entries)

	return entries, nil
}

// ListPage retrieves one page of entries
func (s *MoodService) ListPage(ctx context.Context, offset, limit int) (*models.Page, error) {
	page, err := s.moodRepo.GetPaginated(offset, limit)
	if err != nil {
		return nil, err
	}

	s.decryptEntries(page.Items)

	return page, nil
}

// ListRange retrieves entries within a preset trailing window
func (s *MoodService) ListRange(ctx context.Context, preset models.RangePreset) ([]*models.MoodEntry, error) {
	start, end := preset.Bounds(time.Now())

	entries, err := s.moodRepo.GetWithinRange(start, end)
	if err != nil {
		return nil, err
	}

	s.decryptEntries(entries)

	return entries, nil
}

// Calendar retrieves a month of entries bucketed by local day
func (s *MoodService) Calendar(ctx context.Context, year int, month time.Month) (map[int][]*models.MoodEntry, error) {
	days, err := s.moodRepo.GetByMonth(year, month)
	if err != nil {
		return nil, err
	}

	for _, entries := range days {
		s.decryptEntries(entries)
	}

	return days, nil
}

// HasLoggedToday reports whether any entry falls on the current local day
func (s *MoodService) HasLoggedToday(ctx context.Context) (bool, error) {
	return s.moodRepo.HasLoggedToday(time.Now())
}

// Count returns the total number of entries
func (s *MoodService) Count(ctx context.Context) (int, error) {
	return s.moodRepo.Count()
}

// Update updates an entry, merging only the fields the request sets
func (s *MoodService) Update(ctx context.Context, id int64, req *models.UpdateEntryRequest) (*models.MoodEntry, error) {
	// Rate limiting
	if err := s.rateLimiter.CheckLimit("entry_update"); err != nil {
		return nil, err
	}

	entry, err := s.moodRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	scale, err := s.settings.MoodScale()
	if err != nil {
		return nil, fmt.Errorf("failed to load mood scale: %w", err)
	}

	// Update fields
	if req.Mood != nil {
		if err := s.validator.ValidateMood(*req.Mood, scale); err != nil {
			return nil, err
		}
		entry.Mood = *req.Mood
	}

	if req.Timestamp != nil {
		entry.Timestamp = *req.Timestamp
	}

	if req.Energy != nil {
		if err := s.validator.ValidateEnergy(req.Energy, scale); err != nil {
			return nil, err
		}
		entry.Energy = req.Energy
	}

	if req.Note != nil {
		note := s.validator.SanitizeString(*req.Note)
		if err := s.validator.ValidateNote(note); err != nil {
			return nil, err
		}

		encryptedNote, err := s.encryptor.Encrypt(note)
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt note: %w", err)
		}
		entry.NoteEncrypted = encryptedNote
		entry.Note = note
	}

	if req.Emotions != nil {
		emotions := *req.Emotions
		if len(emotions) > models.MaxEmotionsPerEntry {
			emotions = emotions[:models.MaxEmotionsPerEntry]
		}
		if err := s.validator.ValidateEmotions(emotions); err != nil {
			return nil, err
		}
		entry.Emotions = emotions
	}

	if req.ContextTags != nil {
		entry.ContextTags = *req.ContextTags
	}

	if req.Photos != nil {
		entry.Photos = *req.Photos
	}

	if req.Location != nil {
		entry.Location = req.Location
	}

	if err := s.moodRepo.Update(entry); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_UPDATE_FAILED",
			Resource: "entries",
			EntryID:  &id,
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, err
	}

	if req.Note == nil {
		if err := s.decryptEntry(entry); err != nil {
			return nil, err
		}
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "ENTRY_UPDATED",
		Resource: "entries",
		EntryID:  &id,
		Success:  true,
	})

	return entry, nil
}

// Delete removes an entry and returns the removed row so callers can offer
// undo. Deleting an absent id is not an error and returns nil.
func (s *MoodService) Delete(ctx context.Context, id int64) (*models.MoodEntry, error) {
	// Rate limiting
	if err := s.rateLimiter.CheckLimit("entry_delete"); err != nil {
		return nil, err
	}

	removed, err := s.moodRepo.Delete(id)
	if err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_DELETE_FAILED",
			Resource: "entries",
			EntryID:  &id,
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return nil, err
	}

	if removed == nil {
		return nil, nil
	}

	if err := s.decryptEntry(removed); err != nil {
		return nil, err
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "ENTRY_DELETED",
		Resource: "entries",
		EntryID:  &id,
		Success:  true,
	})

	return removed, nil
}

// Restore reinserts a previously deleted entry. The entry gets a fresh id;
// deleted ids are never reused.
func (s *MoodService) Restore(ctx context.Context, entry *models.MoodEntry) (*models.MoodEntry, error) {
	encryptedNote, err := s.encryptor.Encrypt(entry.Note)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt note: %w", err)
	}

	restored := &models.MoodEntry{
		Mood:          entry.Mood,
		Timestamp:     entry.Timestamp,
		NoteEncrypted: encryptedNote,
		Energy:        entry.Energy,
		Emotions:      entry.Emotions,
		ContextTags:   entry.ContextTags,
		Photos:        entry.Photos,
		Location:      entry.Location,
	}

	if err := s.moodRepo.Create(restored); err != nil {
		return nil, fmt.Errorf("failed to restore entry: %w", err)
	}

	restored.Note = entry.Note

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "ENTRY_RESTORED",
		Resource: "entries",
		EntryID:  &restored.ID,
		Success:  true,
	})

	return restored, nil
}

func (s *MoodService) decryptEntry(entry *models.MoodEntry) error {
	note, err := s.encryptor.Decrypt(entry.NoteEncrypted)
	if err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "ENTRY_DECRYPTION_FAILED",
			Resource: "entries",
			EntryID:  &entry.ID,
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return fmt.Errorf("failed to decrypt note: %w", err)
	}

	entry.Note = note
	return nil
}

// decryptEntries decrypts notes in place, skipping entries whose
// ciphertext cannot be read so one bad row never hides the rest
func (s *MoodService) decryptEntries(entries []*models.MoodEntry) {
	for _, entry := range entries {
		if err := s.decryptEntry(entry); err != nil {
			continue
		}
	}
}
