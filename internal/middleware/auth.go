package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/avasiliev/cadastral-service/internal/domain"
)

// Authenticator resolves a bearer token to the user it belongs to.
// Implemented by service.AuthService; mocked in tests.
type Authenticator interface {
	AuthenticateToken(ctx context.Context, token string) (domain.User, error)
}

type contextKeyUser struct{}

// UserFromContext retrieves the authenticated user placed in the request
// context by RequireAuth. The second return value is false when the request
// did not pass through the middleware.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(contextKeyUser{}).(domain.User)
	return user, ok
}

// RequireAuth returns a middleware that authenticates the request's bearer
// token and stores the resolved user in the request context. Missing or
// invalid tokens short-circuit with 401; a valid token for a deactivated
// account short-circuits with 403.
func RequireAuth(auth Authenticator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			tokenString, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || tokenString == "" {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			user, err := auth.AuthenticateToken(r.Context(), tokenString)
			if err != nil {
				if errors.Is(err, domain.ErrInactiveUser) {
					writeAuthError(w, http.StatusForbidden, "forbidden", "user inactive")
					return
				}
				logger.WarnContext(r.Context(), "rejected bearer token", "error", err)
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), contextKeyUser{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes the service's standard error envelope. Duplicated
// from the handler package rather than imported to keep middleware free of a
// handler dependency.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}
