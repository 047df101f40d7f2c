package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// stubChecker is a HealthChecker returning a fixed error.
type stubChecker struct {
	err error
}

func (s *stubChecker) Ping(ctx context.Context) error {
	return s.err
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return response
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	h.Healthz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if response := decodeHealth(t, rec); response.Status != "ok" {
		t.Errorf("expected status 'ok', got %s", response.Status)
	}
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name         string
		db, cache    error
		wantCode     int
		wantStatus   string
		wantPostgres string
		wantRedis    string
	}{
		{
			name:         "all healthy",
			wantCode:     http.StatusOK,
			wantStatus:   "ok",
			wantPostgres: "ok",
			wantRedis:    "ok",
		},
		{
			name:         "postgres down",
			db:           errors.New("connection refused"),
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "error: connection refused",
			wantRedis:    "ok",
		},
		{
			name:         "redis down",
			cache:        errors.New("timeout"),
			wantCode:     http.StatusServiceUnavailable,
			wantStatus:   "unhealthy",
			wantPostgres: "ok",
			wantRedis:    "error: timeout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(&stubChecker{err: tt.db}, &stubChecker{err: tt.cache})

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			rec := httptest.NewRecorder()

			h.Readyz(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}

			response := decodeHealth(t, rec)
			if response.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", response.Status, tt.wantStatus)
			}
			if response.Checks["postgres"] != tt.wantPostgres {
				t.Errorf("postgres check = %q, want %q", response.Checks["postgres"], tt.wantPostgres)
			}
			if response.Checks["redis"] != tt.wantRedis {
				t.Errorf("redis check = %q, want %q", response.Checks["redis"], tt.wantRedis)
			}
		})
	}
}

func TestHealthHandler_Readyz_NoDependencies(t *testing.T) {
	h := NewHealthHandler(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()

	h.Readyz(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	response := decodeHealth(t, rec)
	if response.Checks["postgres"] != "not configured" {
		t.Errorf("expected 'not configured', got %s", response.Checks["postgres"])
	}
	if response.Checks["redis"] != "not configured" {
		t.Errorf("expected 'not configured', got %s", response.Checks["redis"])
	}
}
