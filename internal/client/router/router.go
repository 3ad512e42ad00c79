// Package router selects which application shell to mount for a given user
// and view-mode toggle. It is a pure function of its inputs and never
// mutates the user.
package router

import "github.com/imararent/imararent/internal/client/models"

// View identifies the mounted shell.
type View string

const (
	// ViewAuth is the login/register flow, forced whenever no session
	// user exists.
	ViewAuth View = "auth"
	// ViewAdminShell is the administrative console.
	ViewAdminShell View = "admin"
	// ViewTenantPortal is the tenant self-service portal.
	ViewTenantPortal View = "tenant-portal"
)

// Route picks the shell for (user, tenantView). Tenants always land in the
// tenant portal regardless of the toggle; admins and managers see the
// tenant portal only when the toggle is set.
func Route(user *models.User, tenantView bool) View {
	switch {
	case user == nil:
		return ViewAuth
	case user.Role == models.RoleTenant:
		return ViewTenantPortal
	case tenantView:
		return ViewTenantPortal
	default:
		return ViewAdminShell
	}
}

// CanToggle reports whether role may flip the tenant-view toggle. Only
// Admin and Manager may toggle into the tenant portal for support purposes;
// tenants cannot toggle out.
func CanToggle(role models.Role) bool {
	return role == models.RoleAdmin || role == models.RoleManager
}

// HasBackToAdmin reports whether the mounted tenant portal offers a
// return-to-admin affordance, i.e. the viewer is an admin or manager
// visiting the portal through the toggle.
func HasBackToAdmin(user *models.User, tenantView bool) bool {
	if user == nil || user.Role == models.RoleTenant {
		return false
	}
	return tenantView
}
