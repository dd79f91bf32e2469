package auth

import (
	"context"
	"encoding/json"
	"net/http"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user's ID, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(userIDKey).(string)
	return v, ok
}

// WithUserID stores the authenticated user's ID on the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// RequireUser rejects requests without a valid user session cookie and puts
// the user ID on the request context.
func RequireUser(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName())
			if err != nil {
				unauthorized(w, "unauthorized")
				return
			}
			userID, err := VerifyToken(cookie.Value, secret)
			if err != nil || userID == AdminSubject {
				unauthorized(w, "invalid_session")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// RequireAdmin rejects requests whose admin-auth cookie is missing, expired,
// or not signed with the server secret. A valid token is allowed regardless
// of any other header.
func RequireAdmin(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAdminRequest(r, secret) {
				unauthorized(w, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdminRequest reports whether the request carries a valid admin session
// cookie. Used directly by handlers whose behavior varies with admin status
// (e.g. reading draft posts).
func IsAdminRequest(r *http.Request, secret []byte) bool {
	cookie, err := r.Cookie(AdminCookieName())
	if err != nil {
		return false
	}
	subject, err := VerifyToken(cookie.Value, secret)
	return err == nil && subject == AdminSubject
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
