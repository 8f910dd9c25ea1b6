package middleware

import (
	"net/http"
	"strings"

	"account-platform/backend/internal/security"
	"account-platform/backend/internal/server/respond"
)

const bearerPrefix = "bearer "

// RequireAuth validates the Bearer access token and stores the caller's
// identity in context. Requests without a valid token get 401; suspended
// accounts get 403 even with a valid token.
func RequireAuth(tokens *security.TokenProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearer(r)
			if token == "" {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization")
				return
			}
			claims, err := tokens.ValidateAccess(token)
			if err != nil {
				respond.Error(w, http.StatusUnauthorized, "unauthorized", "missing or invalid authorization")
				return
			}
			if claims.Status == "suspended" {
				respond.Error(w, http.StatusForbidden, "account_suspended", "account suspended")
				return
			}
			id := Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Role:   claims.Role,
				Status: claims.Status,
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// extractBearer returns the Bearer token from the Authorization header, or
// "" if missing or malformed.
func extractBearer(r *http.Request) string {
	v := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(v) < len(bearerPrefix) {
		return ""
	}
	if !strings.EqualFold(v[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(v[len(bearerPrefix):])
}
