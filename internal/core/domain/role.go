package domain

import "errors"

// Role identifies one of the fixed marketplace roles. The set is closed:
// values outside the four constants below are rejected at the boundary.
type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleSeller  Role = "seller"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

var ErrInvalidRole = errors.New("invalid role specified")

// roleLabels maps each role to its human display label for the managed
// entity type (list headings, navigation links).
var roleLabels = map[Role]string{
	RoleBuyer:   "Buyers",
	RoleSeller:  "Sellers",
	RoleManager: "Managers",
	RoleAdmin:   "Admins",
}

// Roles returns all roles in a stable order.
func Roles() []Role {
	return []Role{RoleBuyer, RoleSeller, RoleManager, RoleAdmin}
}

// ParseRole validates a raw role value, typically a route path parameter.
// An unknown value yields ErrInvalidRole, which callers must keep distinct
// from an authorization denial.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleLabels[r]; !ok {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleLabels[r]
	return ok
}

// Label returns the display label for the role, or the raw value when the
// role is unknown.
func (r Role) Label() string {
	if l, ok := roleLabels[r]; ok {
		return l
	}
	return string(r)
}
