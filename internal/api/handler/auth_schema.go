package handler

import "time"

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// updateProfileRequest uses pointers so an absent field can be told apart
// from an empty one: only fields present in the body are applied.
type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// --- Response types ---

// sessionResponse is returned by register and login. Field names match the
// original wire contract consumed by existing clients.
type sessionResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ackResponse struct {
	Message string `json:"message"`
}
