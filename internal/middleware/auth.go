package middleware

import (
	"context"
	"net/http"
	"strings"
)

// ContextKey is the type for request-context values set by middleware.
type ContextKey string

// ContextKeyUserID carries the authenticated user's ID.
const ContextKeyUserID ContextKey = "user_id"

// UserResolver resolves an opaque bearer credential to a user ID. ok is
// false for unknown or expired credentials; err is reserved for session
// store failures.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (userID string, ok bool, err error)
}

// Auth rejects requests without a resolvable bearer credential before any
// handler logic runs.
type Auth struct {
	resolver UserResolver
}

func NewAuth(resolver UserResolver) *Auth {
	return &Auth{resolver: resolver}
}

// RequireUser resolves the Authorization header and stores the user ID in
// the request context. Responds 401 for missing or unknown credentials and
// 500 when the session store is unreachable.
func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := BearerToken(r)
		if token == "" {
			unauthorized(w)
			return
		}

		userID, ok, err := a.resolver.ResolveUser(r.Context(), token)
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"success":false,"message":"Something went wrong. Please try again."}`))
			return
		}
		if !ok {
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyUserID, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"success":false,"message":"Authentication required"}`))
}

// BearerToken extracts the credential from the Authorization header.
// Returns "" when the header is missing or not a Bearer scheme.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// UserID returns the authenticated user ID stored by RequireUser.
func UserID(r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(ContextKeyUserID).(string)
	return userID, ok && userID != ""
}
