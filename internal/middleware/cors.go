package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig holds CORS configuration options.
type CORSConfig struct {
	// AllowedOrigins lists origins permitted to make cross-origin
	// requests. Supports exact origins and "*.example.com" patterns.
	// Empty means all cross-origin requests are denied.
	AllowedOrigins []string

	// AllowedMethods for the Access-Control-Allow-Methods header.
	AllowedMethods []string

	// AllowedHeaders for the Access-Control-Allow-Headers header.
	AllowedHeaders []string

	// ExposedHeaders names response headers scripts may read.
	ExposedHeaders []string

	// AllowCredentials permits cookies and auth headers cross-origin.
	// Must never be combined with a "*" origin.
	AllowCredentials bool

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int
}

// DefaultCORSConfig returns deny-by-default CORS settings; callers set
// AllowedOrigins from configuration.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: []string{},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-Request-ID",
			"Accept",
			"Accept-Language",
		},
		ExposedHeaders: []string{
			"X-Request-ID",
		},
		AllowCredentials: false,
		MaxAge:           86400,
	}
}

// CORS returns a middleware that answers preflight requests and adds
// cross-origin headers for allowed origins. Disallowed origins get a
// 403 on preflight and a header-free response otherwise, which the
// browser then blocks.
func CORS(cfg CORSConfig) func(http.Handler) http.Handler {
	methods := strings.Join(cfg.AllowedMethods, ", ")
	headers := strings.Join(cfg.AllowedHeaders, ", ")
	exposed := strings.Join(cfg.ExposedHeaders, ", ")

	exact := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		exact[strings.ToLower(origin)] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// Same-origin request, nothing to do.
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if !originAllowed(origin, exact, cfg.AllowedOrigins) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			if cfg.AllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
			if exposed != "" {
				w.Header().Set("Access-Control-Expose-Headers", exposed)
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				if cfg.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// originAllowed matches the origin against exact entries and
// "*.domain" wildcard patterns. Matching is case-insensitive.
func originAllowed(origin string, exact map[string]bool, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}

	normalized := strings.ToLower(origin)
	if exact[normalized] {
		return true
	}

	for _, pattern := range patterns {
		if !strings.HasPrefix(pattern, "*.") {
			continue
		}
		suffix := strings.ToLower(strings.TrimPrefix(pattern, "*"))
		if !strings.HasSuffix(normalized, suffix) {
			continue
		}
		// Require a real subdomain label: "*.example.com" matches
		// "https://app.example.com" but not "https://notexample.com"
		// (no suffix match) and not the apex "https://example.com".
		prefix := strings.TrimSuffix(normalized, suffix)
		if idx := strings.Index(prefix, "://"); idx >= 0 && len(prefix) > idx+3 {
			return true
		}
	}

	return false
}
