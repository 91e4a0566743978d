package user

import (
	"context"

	"github.com/google/uuid"

	"librobuddy-backend/internal/shared"
)

// Repository is the data access contract for users
type Repository interface {
	// Create returns ErrEmailAlreadyExists on a duplicate email
	Create(ctx context.Context, user *User) error

	// FindByID returns ErrUserNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail returns ErrUserNotFound when missing
	FindByEmail(ctx context.Context, email string) (*User, error)

	UpdateRole(ctx context.Context, id uuid.UUID, role shared.Role) error
}
