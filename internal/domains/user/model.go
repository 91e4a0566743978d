package user

import (
	"time"

	"github.com/google/uuid"

	"librobuddy-backend/internal/shared"
)

// User maps 1:1 to the users table
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	FullName     string      `json:"full_name"`
	Role         shared.Role `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// AllRoles returns all valid roles
func AllRoles() []shared.Role {
	return []shared.Role{shared.RoleCustomer, shared.RoleCashier, shared.RoleAdmin}
}

func (u *User) ToDTO() UserDTO {
	return UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
