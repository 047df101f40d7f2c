package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/geonews/geonews/internal/auth"
	"github.com/geonews/geonews/internal/model"
	"github.com/geonews/geonews/internal/service"
)

// stubResolver is an IdentityResolver returning a fixed result.
type stubResolver struct {
	user *model.User
	err  error
}

func (s *stubResolver) Resolve(ctx context.Context, rawToken string) (*model.User, error) {
	return s.user, s.err
}

func serveAuth(t *testing.T, resolver IdentityResolver, authorization string, next http.Handler) *httptest.ResponseRecorder {
	t.Helper()

	cfg := AuthConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Auth:   resolver,
	}

	req := httptest.NewRequest("POST", "/news/", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	Auth(cfg)(next).ServeHTTP(rec, req)
	return rec
}

func TestAuth_InjectsUser(t *testing.T) {
	resolver := &stubResolver{user: &model.User{ID: 1, Name: "alice", Email: "alice@example.com"}}

	var seen *model.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = auth.UserFromContext(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	rec := serveAuth(t, resolver, "Bearer some-token", next)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if seen == nil || seen.Name != "alice" {
		t.Fatalf("expected alice in request context, got %+v", seen)
	}
}

func TestAuth_IdentityFailuresAreUniform401(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid token", auth.ErrInvalidToken},
		{"missing subject", auth.ErrMissingSubject},
		{"unknown user", service.ErrUnknownUser},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run on rejected auth")
	})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serveAuth(t, &stubResolver{err: tt.err}, "Bearer some-token", next)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}

			var body struct {
				Error string `json:"error"`
				Code  string `json:"code"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body.Error != "Could not validate credentials" || body.Code != "UNAUTHORIZED" {
				t.Errorf("body must not reveal the failure reason, got %+v", body)
			}
		})
	}
}

func TestAuth_MissingTokenIs401(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run without a token")
	})

	rec := serveAuth(t, &stubResolver{}, "", next)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuth_ResolverFailureIs500(t *testing.T) {
	resolver := &stubResolver{err: errors.New("connect: connection refused")}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler must not run when the resolver fails")
	})

	rec := serveAuth(t, resolver, "Bearer some-token", next)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for infrastructure failure", rec.Code)
	}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Code != "INTERNAL_ERROR" {
		t.Errorf("code = %q, want INTERNAL_ERROR", body.Code)
	}
	if body.Error == "connect: connection refused" {
		t.Error("response must not leak the internal error message")
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"bearer token", "Bearer abc123", "abc123"},
		{"no header", "", ""},
		{"wrong scheme", "Basic abc123", ""},
		{"lowercase scheme", "bearer abc123", ""},
		{"bare token", "abc123", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/news", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			if got := extractBearerToken(req); got != tt.want {
				t.Errorf("extractBearerToken() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteAuthError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeAuthError(rec)

	if rec.Code != 401 {
		t.Errorf("expected status 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}

	var body struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "Could not validate credentials" || body.Code != "UNAUTHORIZED" {
		t.Errorf("unexpected body: %+v", body)
	}
}
