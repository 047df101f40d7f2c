package handler

import (
	"context"
	"net/http"
	"time"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db    HealthChecker
	cache HealthChecker
}

// NewHealthHandler creates a HealthHandler. Either dependency may be
// nil; it is then reported as "not configured" instead of failing.
func NewHealthHandler(db, cache HealthChecker) *HealthHandler {
	return &HealthHandler{
		db:    db,
		cache: cache,
	}
}

// HealthResponse is the probe response body.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

const readyzTimeout = 5 * time.Second

// Healthz is the liveness probe. It answers 200 whenever the process
// can serve requests at all; dependencies are not consulted.
//
// GET /healthz
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

// Readyz is the readiness probe. It pings Postgres and Redis and
// answers 503 if either fails, so load balancers stop routing here.
//
// GET /readyz
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
	defer cancel()

	checks := map[string]string{
		"postgres": ping(ctx, h.db),
		"redis":    ping(ctx, h.cache),
	}

	status, code := "ok", http.StatusOK
	for _, result := range checks {
		if result != "ok" && result != "not configured" {
			status, code = "unhealthy", http.StatusServiceUnavailable
			break
		}
	}

	writeJSON(w, code, HealthResponse{
		Status: status,
		Checks: checks,
	})
}

func ping(ctx context.Context, dep HealthChecker) string {
	if dep == nil {
		return "not configured"
	}
	if err := dep.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
