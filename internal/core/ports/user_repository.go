package ports

import (
	"context"

	"github.com/platformlab/auth-api/internal/core/domain"
)

// UserUpdate describes a partial update. Nil fields are not written.
type UserUpdate struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// UserRepository is the persistence port for user records.
//
// Create and Update must surface the store's uniqueness violations as
// domain.ErrConflict — the store's unique constraint is the only
// serialization point for racing registrations. Delete is idempotent:
// deleting an id that no longer exists is not an error.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, upd UserUpdate) error
	Delete(ctx context.Context, id string) error
}
