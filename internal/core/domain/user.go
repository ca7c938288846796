package domain

import (
	"errors"
	"time"
)

// User models a registered account. The password hash never leaves the
// service layer: it is excluded from JSON and stripped from profile reads.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Error taxonomy. Every service operation fails with exactly one of these
// (possibly wrapped); the HTTP layer maps them to status codes in a single
// place.
var (
	// ErrValidation signals missing or malformed input.
	ErrValidation = errors.New("missing or malformed input")

	// ErrConflict signals a username or email uniqueness violation.
	ErrConflict = errors.New("username or email already exists")

	// ErrInvalidCredentials covers both unknown username and wrong password
	// on login. The two cases are deliberately indistinguishable to the
	// caller so account existence cannot be probed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated signals a missing, malformed, invalid or expired
	// session token.
	ErrUnauthenticated = errors.New("missing or invalid token")

	// ErrUserNotFound signals that a token's subject no longer resolves to a
	// stored user, e.g. the account was deleted after the token was issued.
	ErrUserNotFound = errors.New("user not found")
)
