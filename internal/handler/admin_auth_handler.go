package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"github.com/launchkit/backend/pkg/auth"
)

// adminSessionMaxAge is the fixed lifetime of an admin session: one day.
const adminSessionMaxAge = 24 * time.Hour

// AdminAuthHandler issues and clears the admin session cookie. This is a
// shared-secret gate, not a user-identity system: anyone holding the two
// configured strings gets the one undifferentiated admin capability.
type AdminAuthHandler struct {
	adminEmail    string
	adminPassword string
	sessionSecret []byte
	secureCookies bool
}

// NewAdminAuthHandler creates an AdminAuthHandler.
func NewAdminAuthHandler(adminEmail, adminPassword string, sessionSecret []byte, secureCookies bool) *AdminAuthHandler {
	return &AdminAuthHandler{
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
		sessionSecret: sessionSecret,
		secureCookies: secureCookies,
	}
}

// loginRequest is the expected JSON body for POST /api/admin-auth.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin-auth. Both fields are compared in constant
// time and every mismatch gets the same generic 401: wrong email and wrong
// password are indistinguishable, and there is no lockout or attempt counter.
func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}

	emailOK := subtle.ConstantTimeCompare([]byte(req.Email), []byte(h.adminEmail))
	passwordOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(h.adminPassword))
	if emailOK&passwordOK != 1 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_credentials"})
		return
	}

	token := auth.CreateToken(auth.AdminSubject, adminSessionMaxAge, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AdminCookieName(),
		Value:    token,
		Path:     "/",
		MaxAge:   int(adminSessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}

// Logout handles DELETE /api/admin-auth. The token itself stays valid until
// its embedded expiry; there is no server-side session store to revoke.
func (h *AdminAuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AdminCookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"ok": "true"})
}
