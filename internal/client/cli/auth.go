package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/imararent/imararent/internal/client/flow"
	"github.com/imararent/imararent/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// printFeedback renders the controller's per-field errors and status
// message after a submit attempt.
func (a *App) printFeedback() {
	for field, msg := range a.flow.Errors() {
		fmt.Printf("  %s: %s\n", field, msg)
	}
	if m := a.flow.Message(); m != nil {
		fmt.Printf("[%s] %s\n", m.Kind, m.Text)
	}
}

// Login prompts for credentials and submits them through the flow
// controller. On success the session manager already holds the user; the
// REPL re-routes on the next prompt.
func (a *App) Login(ctx context.Context) error {
	prompt := "Enter email"
	if prefill := a.flow.LoginEmail(); prefill != "" {
		prompt = fmt.Sprintf("Enter email [%s]", prefill)
	}
	email, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return err
	}
	if email == "" {
		email = a.flow.LoginEmail()
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.flow.SubmitLogin(ctx, email, string(password))
	a.printFeedback()
	if err != nil {
		return err
	}
	if user != nil {
		a.applyLoginViewDefaults()
		fmt.Printf("Welcome back, %s (%s)\n", user.Name, user.Role.DisplayName())
	}
	return nil
}

// Register collects the registration draft, submits it, and on acceptance
// walks the user through code verification.
func (a *App) Register(ctx context.Context) error {
	a.flow.SwitchToRegister()

	name, err := getSimpleText(a.reader, "Full name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email address", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	confirmation, err := getPassword("Repeat password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)

	draft := flow.Draft{
		Name:                 name,
		Email:                email,
		Password:             string(password),
		PasswordConfirmation: string(confirmation),
	}

	err = a.flow.SubmitRegister(ctx, draft)
	a.printFeedback()
	if err != nil {
		return err
	}

	if a.flow.Mode() == flow.ModePendingVerification {
		return a.Verify(ctx)
	}
	return nil
}

// Logout terminates the session and returns the application to the auth
// flow.
func (a *App) Logout(ctx context.Context) error {
	if err := a.sessions.Terminate(ctx); err != nil {
		return err
	}
	a.tenantView = false
	fmt.Println("Logged out.")
	return nil
}
