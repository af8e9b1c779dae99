package auth

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "secret1" || hash == "" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !CheckPassword("secret1", hash) {
		t.Error("expected matching password to verify")
	}
	if CheckPassword("secret2", hash) {
		t.Error("expected non-matching password to fail")
	}
}

func TestHashIsSalted(t *testing.T) {
	h1, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	h2, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if h1 == h2 {
		t.Error("two hashes of the same input should differ")
	}
	if !CheckPassword("secret1", h1) || !CheckPassword("secret1", h2) {
		t.Error("both hashes should verify against the original password")
	}
}

func TestCheckPasswordGarbageHash(t *testing.T) {
	if CheckPassword("secret1", "not-a-bcrypt-hash") {
		t.Error("garbage hash must never verify")
	}
}
