// Package models holds the console-side data types produced by the
// authentication flow and consumed by the session manager and view router.
package models

// Role determines which application shell a user may see.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleTenant  Role = "TENANT"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleTenant:
		return true
	}
	return false
}

// DisplayName returns the human-readable label shown in the shell header.
func (r Role) DisplayName() string {
	switch r {
	case RoleAdmin:
		return "Super Admin"
	case RoleManager:
		return "Property Manager"
	default:
		return "Tenant"
	}
}

// User is the authenticated identity. It is created only by a successful
// login or verified registration and owned by the session manager for the
// lifetime of the session.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// WellFormed reports whether u carries the minimum fields a restored
// session record must have. Records failing this check are discarded.
func (u *User) WellFormed() bool {
	return u != nil && u.ID != "" && u.Email != "" && u.Role.Valid()
}
