package security

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	password := "correct-horse"

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "" {
		t.Fatal("expected non-empty hash")
	}
	if strings.Contains(hash, password) {
		t.Error("hash must not contain the plaintext password")
	}
	if !CheckPasswordHash(password, hash) {
		t.Error("expected hash to verify against original password")
	}
}

func TestCheckPasswordHash_WrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CheckPasswordHash("wrong-horse", hash) {
		t.Error("expected verification to fail for a different password")
	}
}

func TestHashPassword_SaltedPerHash(t *testing.T) {
	first, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := HashPassword("same-password")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first == second {
		t.Error("expected distinct hashes for the same password (embedded salt)")
	}
}
