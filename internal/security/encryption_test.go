package security

import (
	"strings"
	"testing"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	return DeriveKey("test-passphrase-that-is-long-enough!", "test")
}

func TestNoteEncryptorRoundTrip(t *testing.T) {
	enc, err := NewNoteEncryptor(testKey(t))
	if err != nil {
		t.Fatalf("NewNoteEncryptor: %v", err)
	}

	plaintext := "felt calm after a long walk"

	ciphertext, err := enc.Encrypt(plaintext)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext == plaintext {
		t.Fatal("ciphertext equals plaintext")
	}

	got, err := enc.Decrypt(ciphertext)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != plaintext {
		t.Errorf("round trip = %q, want %q", got, plaintext)
	}
}

func TestNoteEncryptorEmptyNote(t *testing.T) {
	enc, err := NewNoteEncryptor(testKey(t))
	if err != nil {
		t.Fatalf("NewNoteEncryptor: %v", err)
	}

	ciphertext, err := enc.Encrypt("")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if ciphertext != "" {
		t.Errorf("empty note should stay empty, got %q", ciphertext)
	}

	plaintext, err := enc.Decrypt("")
	if err != nil || plaintext != "" {
		t.Errorf("Decrypt(\"\") = (%q, %v), want empty", plaintext, err)
	}
}

func TestNoteEncryptorWrongKey(t *testing.T) {
	enc1, _ := NewNoteEncryptor(testKey(t))
	enc2, _ := NewNoteEncryptor(DeriveKey("another-passphrase-that-is-long-enough", "test"))

	ciphertext, err := enc1.Encrypt("secret")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if _, err := enc2.Decrypt(ciphertext); err == nil {
		t.Error("decrypting with the wrong key should fail")
	}
}

func TestNoteEncryptorRejectsShortKey(t *testing.T) {
	if _, err := NewNoteEncryptor([]byte("short")); err == nil {
		t.Error("expected error for a non-32-byte key")
	}
}

func TestNoteEncryptorNondeterministic(t *testing.T) {
	enc, _ := NewNoteEncryptor(testKey(t))

	a, _ := enc.Encrypt("same note")
	b, _ := enc.Encrypt("same note")

	if a == b {
		t.Error("two encryptions of the same note should differ (random nonce)")
	}
}

func TestDeriveKeyStablePerPurpose(t *testing.T) {
	a := DeriveKey("a-passphrase-that-is-long-enough-ok!", "backup")
	b := DeriveKey("a-passphrase-that-is-long-enough-ok!", "backup")
	c := DeriveKey("a-passphrase-that-is-long-enough-ok!", "note")

	if string(a) != string(b) {
		t.Error("same passphrase and purpose must derive the same key")
	}
	if string(a) == string(c) {
		t.Error("different purposes must derive different keys")
	}
	if len(a) != 32 {
		t.Errorf("key length = %d, want 32", len(a))
	}
}

func TestKeyManagerRejectsShortPassphrases(t *testing.T) {
	if _, err := NewKeyManager("short", strings.Repeat("x", 32)); err == nil {
		t.Error("expected error for a short database passphrase")
	}
	if _, err := NewKeyManager(strings.Repeat("x", 32), "short"); err == nil {
		t.Error("expected error for a short note passphrase")
	}
	if _, err := NewKeyManager(strings.Repeat("x", 32), strings.Repeat("y", 32)); err != nil {
		t.Errorf("valid passphrases rejected: %v", err)
	}
}
