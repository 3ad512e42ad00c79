package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/imararent/imararent/internal/client/router"
)

func (a *App) getStatus() string {
	if u := a.sessions.Current(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return "(guest)"
}

// Root is the console REPL. The absence of a session user forces the auth
// commands regardless of anything else; once a session exists the view
// router decides which shell's commands are live.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to the ImaraRent console (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		a.renderShell()
		fmt.Printf("imara %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		if !a.sessions.Authenticated() {
			switch cmd {
			case "help":
				fmt.Println("Available commands: register, login, exit")
			case "login":
				_ = a.Login(ctx)
			case "register":
				_ = a.Register(ctx)
			case "exit", "quit":
				fmt.Println("Bye!")
				return
			default:
				fmt.Println("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			if router.CanToggle(a.sessions.Current().Role) {
				fmt.Println("Available commands: whoami, tenantview, back, logout, exit")
			} else {
				fmt.Println("Available commands: whoami, logout, exit")
			}
		case "whoami":
			u := a.sessions.Current()
			fmt.Printf("%s <%s> — %s\n", u.Name, u.Email, u.Role.DisplayName())
		case "tenantview":
			a.ToggleTenantView()
		case "back":
			a.BackToAdmin()
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}

// ToggleTenantView flips the tenant-view toggle for Admin/Manager users.
// Tenants cannot toggle; the flag never exposes the admin shell to them.
func (a *App) ToggleTenantView() {
	u := a.sessions.Current()
	if u == nil || !router.CanToggle(u.Role) {
		fmt.Println("Only admins and managers may switch views.")
		return
	}
	a.tenantView = !a.tenantView
}

// BackToAdmin leaves the toggled tenant view. A no-op for tenants, whose
// portal is not a toggle.
func (a *App) BackToAdmin() {
	u := a.sessions.Current()
	if u == nil || !router.CanToggle(u.Role) {
		return
	}
	a.tenantView = false
}
