package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

// ---------------------------------------------------------------------------
// RequireAdmin
// ---------------------------------------------------------------------------

func TestRequireAdmin_ValidCookie(t *testing.T) {
	secret := SecretBytes("test-secret")
	var called bool
	h := RequireAdmin(secret)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: CreateToken(AdminSubject, time.Hour, secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !called {
		t.Error("expected next handler to be called")
	}
}

func TestRequireAdmin_MissingCookie(t *testing.T) {
	var called bool
	h := RequireAdmin(SecretBytes("test-secret"))(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if called {
		t.Error("expected next handler not to be called")
	}
}

func TestRequireAdmin_GarbageCookie(t *testing.T) {
	var called bool
	h := RequireAdmin(SecretBytes("test-secret"))(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: "authenticated"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unsigned cookie value, got %d", rec.Code)
	}
	if called {
		t.Error("expected next handler not to be called")
	}
}

func TestRequireAdmin_UserTokenRejected(t *testing.T) {
	secret := SecretBytes("test-secret")
	var called bool
	h := RequireAdmin(secret)(okHandler(&called))

	// A valid user token in the admin cookie must not grant admin.
	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: CreateToken("user-123", time.Hour, secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for user token in admin cookie, got %d", rec.Code)
	}
}

func TestRequireAdmin_ExpiredToken(t *testing.T) {
	secret := SecretBytes("test-secret")
	var called bool
	h := RequireAdmin(secret)(okHandler(&called))

	req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: CreateToken(AdminSubject, -time.Minute, secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for expired token, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// RequireUser
// ---------------------------------------------------------------------------

func TestRequireUser_ValidSession(t *testing.T) {
	secret := SecretBytes("test-secret")
	var gotUserID string
	h := RequireUser(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateToken("user-123", time.Hour, secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUserID != "user-123" {
		t.Errorf("expected user id on context, got %q", gotUserID)
	}
}

func TestRequireUser_MissingCookie(t *testing.T) {
	h := RequireUser(SecretBytes("test-secret"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireUser_AdminTokenRejected(t *testing.T) {
	secret := SecretBytes("test-secret")
	h := RequireUser(secret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("next handler should not be called")
	}))

	// The admin gate is not a user identity; an admin token in the user
	// session cookie is rejected.
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName(), Value: CreateToken(AdminSubject, time.Hour, secret)})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for admin token in user cookie, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// IsAdminRequest
// ---------------------------------------------------------------------------

func TestIsAdminRequest(t *testing.T) {
	secret := SecretBytes("test-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	if IsAdminRequest(req, secret) {
		t.Error("expected false without cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.AddCookie(&http.Cookie{Name: AdminCookieName(), Value: CreateToken(AdminSubject, time.Hour, secret)})
	if !IsAdminRequest(req, secret) {
		t.Error("expected true with valid admin cookie")
	}
}
