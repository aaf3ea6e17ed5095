package security

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Key derivation parameters. The salt is fixed per purpose: there is a
// single local user, and the derived keys never leave the device.
const (
	kdfIterations = 100_000
	keyLen        = 32
)

type KeyManager struct {
	dbKey   []byte
	noteKey []byte
}

// NewKeyManager derives the database and note-field keys from their
// configured passphrases.
func NewKeyManager(dbPassphrase, notePassphrase string) (*KeyManager, error) {
	if len(dbPassphrase) < 32 || len(notePassphrase) < 32 {
		return nil, fmt.Errorf("encryption passphrases must be at least 32 characters")
	}

	return &KeyManager{
		dbKey:   DeriveKey(dbPassphrase, "moodlog.db"),
		noteKey: DeriveKey(notePassphrase, "moodlog.note"),
	}, nil
}

// GetDBKey returns the database encryption key as a string for the DSN.
func (km *KeyManager) GetDBKey() string {
	return fmt.Sprintf("%x", km.dbKey)
}

// GetNoteKey returns the 32-byte note-field encryption key.
func (km *KeyManager) GetNoteKey() []byte {
	return km.noteKey
}

// DeriveKey stretches a passphrase into a 32-byte key with PBKDF2-SHA256.
func DeriveKey(passphrase, purpose string) []byte {
	salt := sha256.Sum256([]byte("moodlog/" + purpose))
	return pbkdf2.Key([]byte(passphrase), salt[:], kdfIterations, keyLen, sha256.New)
}
