package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Token errors. Callers treat both as "not authenticated"; the distinction
// only matters for logging.
var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// AdminSubject is the fixed subject carried by admin session tokens. User
// tokens carry the user's UUID instead, so the two can never be confused.
const AdminSubject = "admin"

const adminCookieName = "admin-auth"
const sessionCookieName = "lk_session"
const minSecretLen = 32

// AdminCookieName is the cookie holding the admin session token.
func AdminCookieName() string { return adminCookieName }

// SessionCookieName is the cookie holding the user session token.
func SessionCookieName() string { return sessionCookieName }

// CreateToken builds a signed session token for the given subject:
//
//	base64url(subject|session-id|expiry-unix) + "." + hex(HMAC-SHA256(payload))
//
// The expiry lives inside the signed payload, so a holder cannot stretch the
// cookie lifetime past what the server issued.
func CreateToken(subject string, ttl time.Duration, secret []byte) string {
	payload := subject + "|" + uuid.NewString() + "|" +
		strconv.FormatInt(time.Now().Add(ttl).Unix(), 10)
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(payload))
	sig := hex.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(payload)) + "." + sig
}

// VerifyToken checks the signature and expiry and returns the subject.
func VerifyToken(token string, secret []byte) (string, error) {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return "", ErrInvalidToken
	}
	payload, err := base64.URLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", ErrInvalidToken
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(parts[1])) {
		return "", ErrInvalidToken
	}

	fields := strings.Split(string(payload), "|")
	if len(fields) != 3 {
		return "", ErrInvalidToken
	}
	exp, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().Unix() > exp {
		return "", ErrExpiredToken
	}
	return fields[0], nil
}

// SecretBytes derives the signing key from a configured string, padding to a
// minimum of 32 bytes.
func SecretBytes(s string) []byte {
	b := []byte(s)
	if len(b) < minSecretLen {
		out := make([]byte, minSecretLen)
		copy(out, b)
		return out
	}
	return b
}
