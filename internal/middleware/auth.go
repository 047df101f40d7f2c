package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/geonews/geonews/internal/auth"
	"github.com/geonews/geonews/internal/model"
	"github.com/geonews/geonews/internal/service"
)

// IdentityResolver resolves a bearer token to the user it identifies.
// Satisfied by *service.AuthService.
type IdentityResolver interface {
	Resolve(ctx context.Context, rawToken string) (*model.User, error)
}

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Auth   IdentityResolver
}

// Auth returns a middleware that authenticates requests carrying a bearer
// token. The token is validated, its subject resolved to a user record,
// and the user injected into the request context. All identity failure
// reasons produce the same 401 body so callers cannot learn whether a
// token was malformed, expired, or orphaned; infrastructure failures
// surface as 500 instead.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_token"),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			user, err := cfg.Auth.Resolve(r.Context(), token)
			if err != nil {
				reason := "invalid_token"
				switch {
				case errors.Is(err, auth.ErrMissingSubject):
					reason = "missing_subject"
				case errors.Is(err, service.ErrUnknownUser):
					reason = "unknown_user"
				case !errors.Is(err, auth.ErrInvalidToken):
					// Not an identity verdict: the resolver itself
					// failed (database, cache). Never a 401.
					cfg.Logger.Error("identity resolution error",
						slog.String("error", err.Error()),
						slog.String("request_id", GetRequestID(r.Context())),
					)
					writeServerError(w)
					return
				}

				cfg.Logger.Warn("authentication failed",
					slog.String("reason", reason),
					slog.String("ip", r.RemoteAddr),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			cfg.Logger.Info("authentication successful",
				slog.String("user", user.Name),
				slog.String("ip", r.RemoteAddr),
				slog.String("endpoint", r.Method+" "+r.URL.Path),
				slog.String("request_id", GetRequestID(r.Context())),
			)

			ctx := auth.ContextWithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractBearerToken extracts the bearer token from the Authorization header.
func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Could not validate credentials","code":"UNAUTHORIZED"}`))
}

// writeServerError writes a 500 response with no internal detail.
func writeServerError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = w.Write([]byte(`{"error":"An internal error occurred","code":"INTERNAL_ERROR"}`))
}
