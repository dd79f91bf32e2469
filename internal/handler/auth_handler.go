package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/launchkit/backend/internal/service"
	"github.com/launchkit/backend/pkg/auth"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const oauthStateCookieName = "oauth_state"

// userSessionMaxAge is the lifetime of a dashboard user session.
const userSessionMaxAge = 7 * 24 * time.Hour

// AuthHandler handles Google sign-in for dashboard users.
type AuthHandler struct {
	authService   service.AuthService
	googleConfig  *oauth2.Config
	sessionSecret []byte
	frontendURL   string
	secureCookies bool
}

// AuthConfig carries the AuthHandler settings.
type AuthConfig struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectPath string
	BackendURL         string
	FrontendURL        string
	SessionSecret      []byte
	SecureCookies      bool
}

// NewAuthHandler creates an AuthHandler (DI: AuthService injected).
func NewAuthHandler(authService service.AuthService, cfg AuthConfig) *AuthHandler {
	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.BackendURL + cfg.GoogleRedirectPath,
		Scopes:       []string{"profile", "email"},
		Endpoint:     google.Endpoint,
	}
	return &AuthHandler{
		authService:   authService,
		googleConfig:  googleConfig,
		sessionSecret: cfg.SessionSecret,
		frontendURL:   cfg.FrontendURL,
		secureCookies: cfg.SecureCookies,
	}
}

// generateOAuthState returns a random state string for CSRF protection.
func generateOAuthState() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return base64.URLEncoding.EncodeToString(b)
}

func (h *AuthHandler) setStateCookie(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   600, // 10 minutes
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})
}

// verifyOAuthState compares the state cookie with the query parameter.
func verifyOAuthState(r *http.Request) bool {
	cookie, err := r.Cookie(oauthStateCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}
	return cookie.Value == r.URL.Query().Get("state")
}

func clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Expires:  time.Unix(0, 0),
	})
}

// googleUserInfo is the Google userinfo API response.
type googleUserInfo struct {
	Sub   string `json:"sub"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// GoogleLoginURL returns the Google OAuth consent URL (GET /api/auth/google/login).
func (h *AuthHandler) GoogleLoginURL(w http.ResponseWriter, r *http.Request) {
	state := generateOAuthState()
	h.setStateCookie(w, state)
	url := h.googleConfig.AuthCodeURL(state)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"url": url})
}

// GoogleCallback completes the OAuth flow (GET /api/auth/google/callback).
// Failures redirect back to the frontend with an error code rather than
// rendering a backend error page.
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if !verifyOAuthState(r) {
		clearStateCookie(w)
		http.Redirect(w, r, h.frontendURL+"/login?error=invalid_state", http.StatusFound)
		return
	}
	clearStateCookie(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, h.frontendURL+"/login?error=no_code", http.StatusFound)
		return
	}

	token, err := h.googleConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/login?error=exchange_failed", http.StatusFound)
		return
	}

	client := h.googleConfig.Client(r.Context(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/login?error=userinfo_failed", http.StatusFound)
		return
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		http.Redirect(w, r, h.frontendURL+"/login?error=decode_failed", http.StatusFound)
		return
	}

	user, err := h.authService.GetOrCreateUserFromGoogle(r.Context(), &service.GoogleUserInfo{
		Sub:   info.Sub,
		Email: info.Email,
		Name:  info.Name,
	})
	if err != nil {
		http.Redirect(w, r, h.frontendURL+"/login?error=create_user_failed", http.StatusFound)
		return
	}

	sessionToken := auth.CreateToken(user.ID, userSessionMaxAge, h.sessionSecret)
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
		Value:    sessionToken,
		Path:     "/",
		MaxAge:   int(userSessionMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.secureCookies,
	})

	http.Redirect(w, r, h.frontendURL+"/dashboard", http.StatusFound)
}

// Logout clears the user session cookie (POST /api/auth/logout).
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName(),
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
