package user

import (
	"context"

	"github.com/google/uuid"

	"assustadus/internal/domain/common"
)

var (
	ErrNotFound      = common.NewNotFound("user")
	ErrEmailConflict = common.NewConflict("user", "email")
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	// Create stores u and fills in the generated ID and timestamps.
	Create(ctx context.Context, u *User) error
	// Update applies patch to the user with the given id, refreshes
	// UpdatedAt and returns the stored result.
	Update(ctx context.Context, id uuid.UUID, patch Patch) (*User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
