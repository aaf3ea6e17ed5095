package security

import (
	"testing"

	"github.com/amirk1998/moodlog/pkg/errors"
)

func TestHashAndVerifyPIN(t *testing.T) {
	hash, err := HashPIN("4821")
	if err != nil {
		t.Fatalf("HashPIN: %v", err)
	}
	if hash == "4821" {
		t.Fatal("hash must not equal the PIN")
	}

	if err := VerifyPIN(hash, "4821"); err != nil {
		t.Errorf("correct PIN rejected: %v", err)
	}

	if err := VerifyPIN(hash, "0000"); err != errors.ErrInvalidPIN {
		t.Errorf("wrong PIN: got %v, want ErrInvalidPIN", err)
	}
}

func TestHashPINUnique(t *testing.T) {
	a, _ := HashPIN("4821")
	b, _ := HashPIN("4821")

	// bcrypt salts every hash
	if a == b {
		t.Error("two hashes of the same PIN should differ")
	}
}
