package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"dicel-erp/internal/auth"
	"dicel-erp/internal/errs"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity stores the authenticated caller on ctx.
func WithIdentity(ctx context.Context, identity auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok && identity.UserID != ""
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	identity, ok := IdentityFromContext(ctx)
	return identity.UserID, ok
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(errs.HTTPStatus(err))
	_ = json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   errs.Message(err),
		"kind":    errs.Kind(err),
	})
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, errs.Unauthorized("missing authorization header"))
				return
			}
			token, ok := BearerToken(header)
			if !ok {
				writeError(w, errs.Unauthorized("invalid authorization header"))
				return
			}
			claims, err := auth.ParseToken(secret, token)
			if err != nil {
				writeError(w, errs.Unauthorized("invalid token"))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.Identity())))
		})
	}
}
