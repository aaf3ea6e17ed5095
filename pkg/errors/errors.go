package errors

import (
	"errors"
	"fmt"
)

// Custom error types for better error handling
var (
	// Validation errors
	ErrValidation       = errors.New("validation failed")
	ErrMoodOutOfRange   = errors.New("mood value out of range")
	ErrEnergyOutOfRange = errors.New("energy value out of range")
	ErrTooManyEmotions  = errors.New("an entry can carry at most 3 emotions")
	ErrInvalidCategory  = errors.New("invalid emotion category")

	// Emotion preset errors
	ErrDuplicateEmotion = errors.New("emotion preset already exists")

	// Database errors
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrTransactionFailed  = errors.New("transaction failed")
	ErrRecordNotFound     = errors.New("record not found")
	ErrStorage            = errors.New("storage operation failed")

	// Migration errors
	ErrMigration = errors.New("migration failed")

	// Encryption errors
	ErrEncryptionFailed = errors.New("encryption failed")
	ErrDecryptionFailed = errors.New("decryption failed")
	ErrInvalidKey       = errors.New("invalid encryption key")

	// App lock errors
	ErrInvalidPIN = errors.New("invalid PIN")

	// Rate limiting errors
	ErrRateLimitExceeded = errors.New("rate limit exceeded")

	// Backup / export errors
	ErrBackupFailed  = errors.New("backup operation failed")
	ErrRestoreFailed = errors.New("restore operation failed")
	ErrExportFailed  = errors.New("export operation failed")
)

// AppError wraps errors with additional context
type AppError struct {
	Err     error
	Message string
	Code    int
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error
func NewAppError(err error, message string, code int) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
		Code:    code,
	}
}
