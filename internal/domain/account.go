package domain

import "github.com/google/uuid"

// Role is the closed set of account kinds. Each role owns an independent
// account population with its own backing files.
type Role string

const (
	RoleAdministrator Role = "ADMINISTRATOR"
	RoleCustomer      Role = "CUSTOMER"
	RoleSeller        Role = "SELLER"
)

// Roles lists every role in a stable order.
func Roles() []Role {
	return []Role{RoleAdministrator, RoleCustomer, RoleSeller}
}

// ParseRole maps a stored or user-supplied value to a Role.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleAdministrator, RoleCustomer, RoleSeller:
		return Role(value), true
	}
	return "", false
}

// Account is a credentialed identity scoped to one role. The id and role
// never change; email, display name and credential are mutated only through
// the owning identity store.
type Account struct {
	Role         Role
	ID           uuid.UUID
	Email        string
	DisplayName  string
	PasswordHash string
}
