// Package token issues and verifies the stateless bearer tokens used for
// authentication. Tokens are HS256-signed JWTs carrying the user id as
// subject plus issued-at and expiry timestamps; validity depends only on
// the signature and the clock, never on server-side state.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTTL = time.Hour

// ErrInvalidToken is returned for any token that fails verification:
// bad signature, wrong algorithm, malformed input, or elapsed expiry.
var ErrInvalidToken = errors.New("invalid token")

// Manager signs and verifies tokens with a shared symmetric secret.
// The secret is injected at construction so tests can use distinct secrets.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing with secret and issuing tokens valid
// for ttl. A non-positive ttl falls back to DefaultTTL.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token asserting userID as subject.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry and returns the subject claim.
func (m *Manager) Verify(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
