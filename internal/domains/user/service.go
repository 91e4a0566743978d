package user

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for accounts and authentication
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*UserDTO, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*UserDTO, error)
	UpdateUserRole(ctx context.Context, userID uuid.UUID, req UpdateRoleRequest) error
}
