package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrInvalidToken = errors.New("invalid session token")

const sessionIDBytes = 32

// HMACSigner signs opaque session ids so forged cookies are rejected before
// the session store is consulted.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner builds HMACSigner with provided secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// NewSessionID returns 32 random bytes encoded as hex.
func NewSessionID() (string, error) {
	buf := make([]byte, sessionIDBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Sign returns the cookie value for a session id.
func (s *HMACSigner) Sign(id string) string {
	return id + "." + s.sign(id)
}

// Verify validates token and returns the session id it carries.
func (s *HMACSigner) Verify(token string) (string, error) {
	id, sig, ok := strings.Cut(token, ".")
	if !ok || id == "" || sig == "" {
		return "", ErrInvalidToken
	}
	if _, err := hex.DecodeString(id); err != nil || len(id) != sessionIDBytes*2 {
		return "", ErrInvalidToken
	}
	if !hmac.Equal([]byte(s.sign(id)), []byte(sig)) {
		return "", ErrInvalidToken
	}
	return id, nil
}

func (s *HMACSigner) sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
