package cli

import (
	"bufio"
	"context"
	"io"
	"testing"

	"github.com/imararent/imararent/internal/client/flow"
	"github.com/imararent/imararent/internal/client/models"
	"github.com/imararent/imararent/internal/client/session"
)

func stubInputs(t *testing.T, text string, password []byte) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ string, _ io.Writer) ([]byte, error) { return password, nil }
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

// fakeBackend implements api.Client for App tests.
type fakeBackend struct {
	user       *models.User
	loginErr   error
	loginCalls int
}

func (f *fakeBackend) Register(_ context.Context, name, email, password string) error { return nil }
func (f *fakeBackend) Login(_ context.Context, email, password string) (*models.User, error) {
	f.loginCalls++
	return f.user, f.loginErr
}
func (f *fakeBackend) VerifyCode(_ context.Context, email, code string) error { return nil }
func (f *fakeBackend) ResendCode(_ context.Context, email string) error       { return nil }
func (f *fakeBackend) Ping(context.Context) error                             { return nil }
func (f *fakeBackend) Close() error                                           { return nil }

func newTestApp(f *fakeBackend) *App {
	sessions := session.NewManager(session.NewMemoryStore())
	return &App{
		client:   f,
		sessions: sessions,
		flow:     flow.NewController(f, sessions),
	}
}

func TestLogin_SuccessEstablishesSession(t *testing.T) {
	f := &fakeBackend{user: &models.User{ID: "u1", Name: "Alice", Email: "alice@example.org", Role: models.RoleTenant}}
	a := newTestApp(f)

	restore := stubInputs(t, "alice@example.org", []byte("Passw0rd"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if !a.sessions.Authenticated() {
		t.Fatalf("session not established")
	}
	if !a.tenantView {
		t.Fatalf("tenant login should land in the tenant portal")
	}
}

func TestLogin_AdminDefaultsToAdminShell(t *testing.T) {
	f := &fakeBackend{user: &models.User{ID: "u2", Name: "Root", Email: "admin@imararent.io", Role: models.RoleAdmin}}
	a := newTestApp(f)

	restore := stubInputs(t, "admin@imararent.io", []byte("Passw0rd"))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if a.tenantView {
		t.Fatalf("admin login should not start in tenant view")
	}
}

func TestLogin_LocalValidationSkipsBackend(t *testing.T) {
	f := &fakeBackend{}
	a := newTestApp(f)

	restore := stubInputs(t, "alice@example.org", []byte(""))
	defer restore()

	if err := a.Login(context.Background()); err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if f.loginCalls != 0 {
		t.Fatalf("backend called despite local validation failure")
	}
	if a.sessions.Authenticated() {
		t.Fatalf("no session should exist")
	}
}

func TestLogout_ClearsSessionAndView(t *testing.T) {
	f := &fakeBackend{}
	a := newTestApp(f)
	ctx := context.Background()

	user := &models.User{ID: "u3", Name: "M", Email: "m@x.io", Role: models.RoleManager}
	if err := a.sessions.Establish(ctx, user); err != nil {
		t.Fatalf("Establish err: %v", err)
	}
	a.tenantView = true

	if err := a.Logout(ctx); err != nil {
		t.Fatalf("Logout err: %v", err)
	}
	if a.sessions.Authenticated() {
		t.Fatalf("session not cleared")
	}
	if a.tenantView {
		t.Fatalf("tenant view flag not reset")
	}
}

func TestToggleTenantView_RoleGate(t *testing.T) {
	f := &fakeBackend{}
	a := newTestApp(f)
	ctx := context.Background()

	_ = a.sessions.Establish(ctx, &models.User{ID: "t", Name: "T", Email: "t@x.io", Role: models.RoleTenant})
	a.tenantView = true
	a.ToggleTenantView()
	if !a.tenantView {
		t.Fatalf("tenant must not be able to leave the tenant portal")
	}

	_ = a.sessions.Establish(ctx, &models.User{ID: "adm", Name: "A", Email: "a@x.io", Role: models.RoleAdmin})
	a.tenantView = false
	a.ToggleTenantView()
	if !a.tenantView {
		t.Fatalf("admin toggle should enter tenant view")
	}
	a.BackToAdmin()
	if a.tenantView {
		t.Fatalf("back should return to the admin shell")
	}
}
