package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mkumaran/trip-tracker/backend/internal/auth"
)

type contextKey string

// userIDKey carries the authenticated user id through the request context.
const userIDKey contextKey = "user_id"

// UserID returns the authenticated user id placed in ctx by RequireAuth,
// or "" for unauthenticated requests (e.g. in tests that skip the middleware).
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

// WithUserID returns a context carrying the given user id.
// Exported for handler tests that bypass RequireAuth.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// RequireAuth returns a middleware that verifies the "Authorization: Bearer"
// token on every request and stores the token subject (user id) in the
// request context. Missing, malformed, or invalid tokens get 401 with the
// API's standard error body.
func RequireAuth(tokens *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "authorization header required")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				unauthorized(w, "authorization header must be Bearer {token}")
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.Subject)))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	//nolint:errcheck — nothing to do if the client is gone.
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
