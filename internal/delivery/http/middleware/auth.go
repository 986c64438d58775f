package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

type contextKey string

const roleKey contextKey = "role"

// SetRole returns a context with the caller's role set. Used by auth middleware.
func SetRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, roleKey, role)
}

// RoleFromContext returns the authenticated role from the context, if present.
func RoleFromContext(ctx context.Context) (string, bool) {
	role, ok := ctx.Value(roleKey).(string)
	return role, ok
}

// IsAdmin reports whether the context carries the admin role.
func IsAdmin(ctx context.Context) bool {
	role, ok := RoleFromContext(ctx)
	return ok && role == domain.AdminRole
}

// bearerToken extracts the Bearer token from the Authorization header.
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}

// RequireAdmin returns a wrapper that validates the Bearer token and requires
// the admin role. If the token is missing, invalid, or not an admin token, it
// responds with 401 and does not call next.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing or malformed authorization header")
				return
			}
			role, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(r.Context(), "rejected token", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if role != domain.AdminRole {
				logger.WarnContext(r.Context(), "non-admin token on admin route", "path", r.URL.Path, "role", role)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "admin access required")
				return
			}
			r = r.WithContext(SetRole(r.Context(), role))
			next(w, r)
		}
	}
}

// OptionalAdmin returns a wrapper that sets the role in context when a valid
// admin token is present, and passes through anonymously otherwise.
func OptionalAdmin(verifier domain.TokenVerifier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if token := bearerToken(r); token != "" {
				if role, err := verifier.Verify(token); err == nil {
					r = r.WithContext(SetRole(r.Context(), role))
				}
			}
			next(w, r)
		}
	}
}
