package service

import (
	"context"
	"fmt"
	"time"

	"github.com/amirk1998/moodlog/internal/audit"
	"github.com/amirk1998/moodlog/internal/export"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/pkg/errors"
)

type ExportService struct {
	moodRepo    *repository.MoodRepository
	settings    *repository.SettingsRepository
	encryptor   noteDecrypter
	exportDir   string
	auditLogger *audit.Logger
}

type noteDecrypter interface {
	Decrypt(ciphertext string) (string, error)
}

// NewExportService creates a new export service
func NewExportService(
	moodRepo *repository.MoodRepository,
	settings *repository.SettingsRepository,
	encryptor noteDecrypter,
	exportDir string,
	auditLogger *audit.Logger,
) *ExportService {
	return &ExportService{
		moodRepo:    moodRepo,
		settings:    settings,
		encryptor:   encryptor,
		exportDir:   exportDir,
		auditLogger: auditLogger,
	}
}

// ExportCSV writes all entries to a CSV file using the configured field
// selection and returns the file path.
func (s *ExportService) ExportCSV(ctx context.Context) (string, error) {
	entries, err := s.moodRepo.GetAll()
	if err != nil {
		return "", err
	}
	return s.exportEntries(entries)
}

// ExportCSVRange exports only the entries within a preset trailing window.
func (s *ExportService) ExportCSVRange(ctx context.Context, preset models.RangePreset) (string, error) {
	start, end := preset.Bounds(time.Now())

	entries, err := s.moodRepo.GetWithinRange(start, end)
	if err != nil {
		return "", err
	}
	return s.exportEntries(entries)
}

func (s *ExportService) exportEntries(entries []*models.MoodEntry) (string, error) {
	fieldNames, err := s.settings.ExportFields()
	if err != nil {
		return "", err
	}

	fields, err := export.ParseFields(fieldNames)
	if err != nil {
		return "", err
	}

	// Notes go out in the clear; an export is an explicit user action
	for _, entry := range entries {
		note, err := s.encryptor.Decrypt(entry.NoteEncrypted)
		if err != nil {
			continue
		}
		entry.Note = note
	}

	csv := export.CSV(entries, fields)

	path, err := export.WriteFile(s.exportDir, csv)
	if err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelError,
			Action:   "EXPORT_FAILED",
			Resource: "export",
			Success:  false,
			ErrorMsg: err.Error(),
		})
		return "", errors.NewAppError(errors.ErrExportFailed, "failed to write export file", 500)
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "EXPORT_COMPLETED",
		Resource: "export",
		Success:  true,
		Metadata: fmt.Sprintf("path=%s count=%d", path, len(entries)),
	})

	return path, nil
}
