package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/platformlab/auth-api/internal/core/domain"
)

func TestManager_IssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	sub, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if sub != "user-42" {
		t.Fatalf("expected subject user-42, got %q", sub)
	}
}

func TestManager_Verify_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour)

	// Hand-craft an already expired token with the same secret.
	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	signed, err := NewManager("one", time.Hour).Issue("user-42")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := NewManager("two", time.Hour).Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestManager_Verify_WrongAlgorithm(t *testing.T) {
	m := NewManager("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS384, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestManager_Verify_Garbage(t *testing.T) {
	m := NewManager("secret", time.Hour)

	for _, raw := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Verify(raw); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("input %q: expected ErrUnauthenticated, got %v", raw, err)
		}
	}
}

func TestManager_Verify_MissingSubject(t *testing.T) {
	m := NewManager("secret", time.Hour)

	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := m.Verify(signed); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
