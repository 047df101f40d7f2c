package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenService_IssueAndValidate(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}

	subject, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected subject %q, got %q", "alice", subject)
	}
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewTokenService("secret-one", 30*time.Minute)
	validator := NewTokenService("secret-two", 30*time.Minute)

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := validator.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Validate_Expired(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -1*time.Minute)

	token, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := svc.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := svc.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken for %q, got %v", tt.name, err)
			}
		})
	}
}

func TestTokenService_Validate_MissingSubject(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	// Sign a token with the right secret but no subject claim.
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(raw); !errors.Is(err, ErrMissingSubject) {
		t.Errorf("expected ErrMissingSubject, got %v", err)
	}
}

func TestTokenService_Validate_WrongAlgorithm(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", 30*time.Minute)

	// An unsigned token must never validate, even with a matching payload.
	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(30 * time.Minute)),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := svc.Validate(raw); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for alg=none token, got %v", err)
	}
}
