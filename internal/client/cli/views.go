package cli

import (
	"fmt"

	"github.com/imararent/imararent/internal/client/models"
	"github.com/imararent/imararent/internal/client/router"
)

// The business views are presentational; the console only names them. What
// matters here is WHICH shell is mounted, which is the view router's job.

var adminMenu = []string{
	"dashboard", "properties", "tenants", "invoices", "payments", "wallet", "settings",
}

var tenantMenu = []string{
	"my-lease", "invoices", "pay-rent", "maintenance", "profile",
}

func renderAdminShell(user *models.User) {
	fmt.Printf("— ImaraRent admin console — %s (%s)\n", user.Name, user.Role.DisplayName())
	fmt.Print("  sections:")
	for _, item := range adminMenu {
		fmt.Printf(" %s", item)
	}
	fmt.Println()
}

func renderTenantPortal(user *models.User, backToAdmin bool) {
	fmt.Printf("— ImaraRent tenant portal — %s\n", user.Name)
	fmt.Print("  sections:")
	for _, item := range tenantMenu {
		fmt.Printf(" %s", item)
	}
	fmt.Println()
	if backToAdmin {
		fmt.Println("  (viewing as tenant — type 'back' to return to the admin console)")
	}
}

func (a *App) renderShell() {
	user := a.sessions.Current()
	switch router.Route(user, a.tenantView) {
	case router.ViewTenantPortal:
		renderTenantPortal(user, router.HasBackToAdmin(user, a.tenantView))
	case router.ViewAdminShell:
		renderAdminShell(user)
	}
}
