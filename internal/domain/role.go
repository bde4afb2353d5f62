package domain

import "fmt"

// Role enumerates the access levels carried in credentials. The set is flat:
// admin does not implicitly satisfy a manager-only check, each protected
// operation lists the roles it accepts.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// ParseRole validates a raw role string.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleCustomer, RoleManager, RoleAdmin:
		return Role(raw), nil
	default:
		return "", fmt.Errorf("unknown role %q", raw)
	}
}

// RolesIntersect reports whether the two role lists share at least one role.
func RolesIntersect(held []Role, allowed map[Role]struct{}) bool {
	for _, role := range held {
		if _, ok := allowed[role]; ok {
			return true
		}
	}
	return false
}
