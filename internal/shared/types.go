package shared

import "github.com/google/uuid"

// Role is the authorization role carried in access tokens.
// Declared here so order and supplier can authorize without importing the user domain.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleCashier  Role = "cashier"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleCustomer, RoleCashier, RoleAdmin:
		return true
	}
	return false
}

// IsStaff reports whether the role acts on behalf of the store
func (r Role) IsStaff() bool {
	return r == RoleCashier || r == RoleAdmin
}

func (r Role) String() string {
	return string(r)
}

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}
