package service

import (
	"context"

	"github.com/amirk1998/moodlog/internal/audit"
	"github.com/amirk1998/moodlog/internal/ratelimit"
	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/internal/security"
	"github.com/amirk1998/moodlog/pkg/errors"
	"github.com/amirk1998/moodlog/pkg/validator"
)

// LockService manages the optional app-lock PIN. The hash lives in
// settings; there is no recovery path, clearing the lock requires the
// current PIN.
type LockService struct {
	settings    *repository.SettingsRepository
	validator   *validator.Validator
	rateLimiter *ratelimit.RateLimiter
	auditLogger *audit.Logger
}

// NewLockService creates a new app-lock service
func NewLockService(
	settings *repository.SettingsRepository,
	rateLimiter *ratelimit.RateLimiter,
	auditLogger *audit.Logger,
) *LockService {
	return &LockService{
		settings:    settings,
		validator:   validator.New(),
		rateLimiter: rateLimiter,
		auditLogger: auditLogger,
	}
}

// Enabled reports whether the app lock is active
func (s *LockService) Enabled(ctx context.Context) (bool, error) {
	return s.settings.AppLockEnabled()
}

// Enable turns on the app lock with the given PIN
func (s *LockService) Enable(ctx context.Context, pin string) error {
	if err := s.validator.ValidatePIN(pin); err != nil {
		return err
	}

	hash, err := security.HashPIN(pin)
	if err != nil {
		return err
	}

	if err := s.settings.SetAppLockPINHash(hash); err != nil {
		return err
	}

	if err := s.settings.SetAppLockEnabled(true); err != nil {
		return err
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "APP_LOCK_ENABLED",
		Resource: "settings",
		Success:  true,
	})

	return nil
}

// Disable turns off the app lock after verifying the current PIN
func (s *LockService) Disable(ctx context.Context, pin string) error {
	if err := s.Verify(ctx, pin); err != nil {
		return err
	}

	if err := s.settings.SetAppLockEnabled(false); err != nil {
		return err
	}

	if err := s.settings.ClearAppLockPINHash(); err != nil {
		return err
	}

	s.auditLogger.Log(&audit.Event{
		Level:    audit.LevelInfo,
		Action:   "APP_LOCK_DISABLED",
		Resource: "settings",
		Success:  true,
	})

	return nil
}

// Verify checks a PIN against the stored hash. Attempts are rate limited
// to slow down guessing.
func (s *LockService) Verify(ctx context.Context, pin string) error {
	if err := s.rateLimiter.CheckLimit("pin_verify"); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelWarning,
			Action:   "PIN_VERIFY_RATE_LIMITED",
			Resource: "settings",
			Success:  false,
		})
		return err
	}

	hash, err := s.settings.AppLockPINHash()
	if err != nil {
		return err
	}

	if hash == "" {
		return errors.ErrInvalidPIN
	}

	if err := security.VerifyPIN(hash, pin); err != nil {
		s.auditLogger.Log(&audit.Event{
			Level:    audit.LevelWarning,
			Action:   "PIN_VERIFY_FAILED",
			Resource: "settings",
			Success:  false,
		})
		return err
	}

	return nil
}
