// Package token implements the session token issuer/verifier as HS256 JWTs.
// A token is a stateless assertion of {sub, iat, exp}; nothing is persisted
// and there is no revocation short of rotating the signing secret.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platformlab/auth-api/internal/core/domain"
)

const defaultTTL = time.Hour

// Manager signs and verifies session tokens with a single shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a Manager. When ttl <= 0 the default of one hour is
// used, matching the fixed session window of the API.
func NewManager(secret string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Issue returns a signed token bound to userID, valid from now until now+ttl.
func (m *Manager) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(m.secret)
}

// Verify parses and validates raw and returns the subject user id. Every
// failure mode — empty input, bad signature, wrong algorithm, expiry, empty
// subject — collapses to domain.ErrUnauthenticated; callers never learn why
// a token was rejected.
func (m *Manager) Verify(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrUnauthenticated
	}

	return claims.Subject, nil
}
