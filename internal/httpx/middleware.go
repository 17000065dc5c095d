package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/ariefcatur/go-shop-orders.git/internal/users"
)

type ctxKey int

const userIDKey ctxKey = iota

// UserID returns the authenticated user id injected by Authenticator.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// Authenticator verifies the bearer token and stores the user id on the
// request context. Requests without a valid token never reach the handler.
func Authenticator(tokens *users.TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				fail(w, http.StatusUnauthorized, "token not found")
				return
			}
			token := strings.TrimPrefix(raw, "Bearer ")
			userID, err := tokens.Verify(token)
			if err != nil {
				fail(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin gates a route on the stored user level, not on token claims.
// Must run inside Authenticator.
func RequireAdmin(svc *users.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, okID := UserID(r.Context())
			if !okID {
				fail(w, http.StatusUnauthorized, "token not found")
				return
			}
			if _, err := svc.RequireAdmin(r.Context(), userID); err != nil {
				failErr(w, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
