package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/launchkit/backend/pkg/auth"
)

func newAdminAuthHandler() *AdminAuthHandler {
	return NewAdminAuthHandler("admin@example.com", "hunter2", testSecret, false)
}

func findCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	res := rec.Result()
	defer res.Body.Close()
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// POST /api/admin-auth tests
// ---------------------------------------------------------------------------

func TestAdminAuthHandler_Login_Success(t *testing.T) {
	h := newAdminAuthHandler()

	body := `{"email":"admin@example.com","password":"hunter2"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin-auth", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d — body: %s", rec.Code, rec.Body.String())
	}

	cookie := findCookie(rec, auth.AdminCookieName())
	if cookie == nil {
		t.Fatal("expected admin session cookie to be set")
	}
	if !cookie.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if cookie.SameSite != http.SameSiteLaxMode {
		t.Error("expected SameSite=Lax cookie")
	}

	// The cookie carries a signed token, never a literal marker value.
	if cookie.Value == "authenticated" {
		t.Error("cookie must not be a literal marker value")
	}
	subject, err := auth.VerifyToken(cookie.Value, testSecret)
	if err != nil {
		t.Fatalf("expected verifiable token in cookie, got: %v", err)
	}
	if subject != auth.AdminSubject {
		t.Errorf("expected subject=%q, got %q", auth.AdminSubject, subject)
	}
}

func TestAdminAuthHandler_Login_WrongPassword(t *testing.T) {
	h := newAdminAuthHandler()

	body := `{"email":"admin@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin-auth", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
	if findCookie(rec, auth.AdminCookieName()) != nil {
		t.Error("expected no session cookie on failed login")
	}
}

// TestAdminAuthHandler_Login_SameErrorForBothFields verifies wrong email and
// wrong password are indistinguishable in the response.
func TestAdminAuthHandler_Login_SameErrorForBothFields(t *testing.T) {
	h := newAdminAuthHandler()

	bodies := []string{
		`{"email":"wrong@example.com","password":"hunter2"}`,
		`{"email":"admin@example.com","password":"wrong"}`,
	}
	var responses []string
	for _, body := range bodies {
		req := httptest.NewRequest(http.MethodPost, "/api/admin-auth", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Login(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		var resp map[string]string
		_ = json.NewDecoder(rec.Body).Decode(&resp)
		responses = append(responses, resp["error"])
	}
	if responses[0] != responses[1] {
		t.Errorf("expected identical error for wrong email and wrong password, got %q vs %q",
			responses[0], responses[1])
	}
}

func TestAdminAuthHandler_Login_InvalidJSON(t *testing.T) {
	h := newAdminAuthHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin-auth", strings.NewReader("{bad"))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
}

// ---------------------------------------------------------------------------
// DELETE /api/admin-auth tests
// ---------------------------------------------------------------------------

func TestAdminAuthHandler_Logout_ClearsCookie(t *testing.T) {
	h := newAdminAuthHandler()

	req := httptest.NewRequest(http.MethodDelete, "/api/admin-auth", nil)
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookie := findCookie(rec, auth.AdminCookieName())
	if cookie == nil {
		t.Fatal("expected expired cookie to be set")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Errorf("expected cleared cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}
