package security

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("StrongPass123!@#", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "StrongPass123!@#" {
		t.Fatal("hash must not equal the plain password")
	}

	if !CheckPassword(hash, "StrongPass123!@#") {
		t.Error("expected matching password to verify")
	}
	if CheckPassword(hash, "wrong-password") {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_DefaultCost(t *testing.T) {
	hash, err := HashPassword("secret-password", 0)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("expected default cost %d, got %d", bcrypt.DefaultCost, cost)
	}
}

func TestHashPassword_SaltedHashesDiffer(t *testing.T) {
	first, err := HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	second, err := HashPassword("secret-password", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if first == second {
		t.Error("expected different salts to produce different hashes")
	}
}
