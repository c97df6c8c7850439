// Package auth holds the backend-issued session token on the client side.
// The signing secret is server-owned, so tokens are decoded without
// verification: the only client-side concerns are reading the user identity
// for display and noticing expiry before an engagement call is attempted.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken is returned by a TokenSource that has nothing to offer; API
// calls then go out unauthenticated.
var ErrNoToken = errors.New("no session token")

// TokenSource supplies the bearer token attached to backend requests.
type TokenSource interface {
	Token() (string, error)
}

type Claims struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionToken is a decoded access token plus its raw form.
type SessionToken struct {
	Raw    string
	Claims Claims
}

var _ TokenSource = (*SessionToken)(nil)

// ParseSessionToken decodes a backend-issued JWT without verifying its
// signature. Malformed tokens are rejected; expired tokens parse fine and
// are caught by Expired.
func ParseSessionToken(raw string) (*SessionToken, error) {
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return &SessionToken{Raw: raw, Claims: claims}, nil
}

// Expired reports whether the token's exp claim is at or before now.
// Tokens without an exp claim never expire client-side.
func (t *SessionToken) Expired(now time.Time) bool {
	exp := t.Claims.ExpiresAt
	if exp == nil {
		return false
	}
	return !exp.Time.After(now)
}

func (t *SessionToken) Token() (string, error) {
	if t == nil || t.Raw == "" {
		return "", ErrNoToken
	}
	if t.Expired(time.Now()) {
		return "", fmt.Errorf("session token expired at %s", t.Claims.ExpiresAt.Time.Format(time.RFC3339))
	}
	return t.Raw, nil
}

// StaticToken passes an opaque token string through unchanged, for callers
// that manage refresh themselves.
type StaticToken string

var _ TokenSource = StaticToken("")

func (s StaticToken) Token() (string, error) {
	if s == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}
