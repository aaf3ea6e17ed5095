package security

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/amirk1998/moodlog/pkg/errors"
)

// HashPIN hashes an app-lock PIN for storage in settings.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.NewAppError(err, "failed to hash PIN", 500)
	}
	return string(hash), nil
}

// VerifyPIN checks a PIN against its stored hash.
func VerifyPIN(hash, pin string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return errors.ErrInvalidPIN
	}
	return nil
}
