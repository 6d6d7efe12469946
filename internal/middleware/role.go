package middleware

import (
	"context"
	"net/http"

	"dicel-erp/internal/errs"
	"dicel-erp/internal/models"
)

type UserLookup interface {
	GetByID(ctx context.Context, userID string) (models.User, error)
}

// RequireRole re-reads the caller's role on every request so a demotion
// takes effect before the token expires.
func RequireRole(users UserLookup, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := UserIDFromContext(r.Context())
			if !ok {
				writeError(w, errs.Unauthorized("unauthorized"))
				return
			}
			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				writeError(w, errs.Unauthorized("unauthorized"))
				return
			}
			if user.Role != role {
				writeError(w, errs.Forbidden(role+" privileges required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
