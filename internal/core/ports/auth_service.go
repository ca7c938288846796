package ports

import (
	"context"
	"time"
)

// RegisterInput carries the fields required to create an account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries login credentials.
type LoginInput struct {
	Username string
	Password string
}

// UpdateProfileInput carries an optional new value per mutable field.
// A nil pointer means "leave the current value untouched"; this is how the
// service distinguishes an absent field from an empty one.
type UpdateProfileInput struct {
	Username *string
	Email    *string
	Password *string
}

// Session is the result of a successful registration or login.
type Session struct {
	Token    string
	UserID   string
	Username string
}

// Profile is a user record with the password hash stripped.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthService orchestrates the credential lifecycle. The three protected
// operations take the raw bearer token and resolve the subject themselves;
// any path-supplied identifier is ignored by design.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*Session, error)
	Login(ctx context.Context, in LoginInput) (*Session, error)
	GetProfile(ctx context.Context, token string) (*Profile, error)
	UpdateProfile(ctx context.Context, token string, in UpdateProfileInput) error
	DeleteProfile(ctx context.Context, token string) error
}
