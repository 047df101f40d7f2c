package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashPassword_PHCFormat(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("expected 6 PHC segments, got %d in %q", len(parts), hash)
	}
	if parts[1] != "argon2id" {
		t.Errorf("algorithm = %q, want argon2id", parts[1])
	}
	if parts[2] != "v=19" {
		t.Errorf("version segment = %q, want v=19", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("parameter segment = %q, want m=65536,t=3,p=4", parts[3])
	}
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	t.Parallel()

	password := "correct-horse-battery-staple"

	first, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	if first == second {
		t.Error("two hashes of one password must differ via random salts")
	}

	for _, hash := range []string{first, second} {
		match, err := VerifyPassword(password, hash)
		if err != nil || !match {
			t.Errorf("hash %q failed to verify: match=%v err=%v", hash, match, err)
		}
	}
}

func TestVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct-horse-battery-staple")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	match, err := VerifyPassword("correct-horse-battery-staple", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !match {
		t.Error("correct password must match")
	}

	// Wrong password: no error, just no match.
	match, err = VerifyPassword("wrong-horse-battery-staple", hash)
	if err != nil {
		t.Fatalf("verify wrong password: %v", err)
	}
	if match {
		t.Error("wrong password must not match")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"not a hash", "not-a-hash"},
		{"foreign algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash"},
		{"truncated", "$argon2id$v=19$m=65536"},
		{"bad salt encoding", "$argon2id$v=19$m=65536,t=3,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := VerifyPassword("password", tt.hash); !errors.Is(err, ErrInvalidHash) {
				t.Errorf("expected ErrInvalidHash, got %v", err)
			}
		})
	}
}

func TestVerifyPassword_IncompatibleVersion(t *testing.T) {
	t.Parallel()

	hash := "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl"

	match, err := VerifyPassword("password", hash)
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("expected ErrIncompatibleVersion, got %v", err)
	}
	if match {
		t.Error("incompatible version must never match")
	}
}

func TestQuickHash(t *testing.T) {
	t.Parallel()

	if QuickHash("bearer-token") != QuickHash("bearer-token") {
		t.Error("QuickHash must be deterministic")
	}
	if QuickHash("token-one") == QuickHash("token-two") {
		t.Error("distinct inputs must yield distinct digests")
	}

	for _, input := range []string{"", "abc", strings.Repeat("x", 1000)} {
		if got := len(QuickHash(input)); got != 32 {
			t.Errorf("digest length for %d-byte input = %d, want 32", len(input), got)
		}
	}
}
