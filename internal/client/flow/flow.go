// Package flow implements the authentication state machine: a visitor moves
// from Login or Register through PendingVerification into an authenticated
// session. The controller orchestrates the credential validator and the code
// entry widget, talks to the backend through api.Client, and hands the
// resulting user to the session manager.
package flow

import (
	"context"
	"errors"
	"sync"

	"github.com/imararent/imararent/internal/client/api"
	"github.com/imararent/imararent/internal/client/models"
	"github.com/imararent/imararent/internal/client/validate"
	"github.com/imararent/imararent/internal/common"
)

// Mode identifies the active authentication screen. Exactly one mode is
// active at a time.
type Mode string

const (
	ModeLogin               Mode = "login"
	ModeRegister            Mode = "register"
	ModePendingVerification Mode = "pending-verification"
)

// MessageKind classifies a status message for rendering.
type MessageKind string

const (
	KindSuccess MessageKind = "success"
	KindError   MessageKind = "error"
	KindInfo    MessageKind = "info"
)

// Message is a single human-readable status line shown above the form.
type Message struct {
	Kind MessageKind
	Text string
}

// Draft holds the transient registration form. It exists only while mode is
// Register or PendingVerification and is discarded on success. Switching
// back to Login keeps the entered values, matching the observed form
// behavior.
type Draft struct {
	Name                 string
	Email                string
	Password             string
	PasswordConfirmation string
}

// SessionEstablisher receives the authenticated user on login success.
type SessionEstablisher interface {
	Establish(ctx context.Context, user *models.User) error
}

// Controller is the auth flow state machine. All exported methods are safe
// for concurrent use; in practice the console drives it from a single
// goroutine, with only the widget's resend callback arriving from outside.
type Controller struct {
	mu       sync.Mutex
	client   api.Client
	sessions SessionEstablisher

	mode       Mode
	draft      Draft
	loginEmail string
	errors     map[string]string
	message    *Message
	loading    bool

	// gen guards against a completed-but-now-irrelevant backend response
	// being applied after the user navigated away mid-request.
	gen int
}

// NewController returns a controller in the initial Login mode.
func NewController(client api.Client, sessions SessionEstablisher) *Controller {
	return &Controller{
		client:   client,
		sessions: sessions,
		mode:     ModeLogin,
		errors:   map[string]string{},
	}
}

// Mode returns the active mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Loading reports whether a backend round trip is in flight. Submit
// controls are disabled while true.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Errors returns the per-field validation errors from the last submit
// attempt.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Message returns the current status message, or nil.
func (c *Controller) Message() *Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.message == nil {
		return nil
	}
	m := *c.message
	return &m
}

// LoginEmail returns the email pre-filled on the login form (set after a
// verified registration).
func (c *Controller) LoginEmail() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loginEmail
}

// Draft returns a copy of the registration draft.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// SwitchToRegister moves Login -> Register, clearing errors and any prior
// status message.
func (c *Controller) SwitchToRegister() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeLogin {
		return
	}
	c.mode = ModeRegister
	c.clearFeedbackLocked()
	c.gen++
}

// SwitchToLogin moves Register -> Login. Errors and messages are cleared;
// the draft's entered values are retained.
func (c *Controller) SwitchToLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeRegister {
		return
	}
	c.mode = ModeLogin
	c.clearFeedbackLocked()
	c.gen++
}

// Back abandons verification and returns to the registration form.
func (c *Controller) Back() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModePendingVerification {
		return
	}
	c.mode = ModeRegister
	c.clearFeedbackLocked()
	c.gen++
}

func (c *Controller) clearFeedbackLocked() {
	c.errors = map[string]string{}
	c.message = nil
}

// begin claims the in-flight slot for a backend round trip. It reports the
// generation to guard the completion with, and false when a request is
// already running (submit controls are disabled during loading).
func (c *Controller) begin() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return 0, false
	}
	c.loading = true
	return c.gen, true
}

// endLoading always runs, success or failure, so a crash mid round trip can
// never leave the controls disabled.
func (c *Controller) endLoading() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// stillCurrent reports whether a completion belongs to the present
// navigation state. Stale completions are ignored rather than applied.
func (c *Controller) stillCurrent(gen int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return gen == c.gen
}

func (c *Controller) setMessage(gen int, kind MessageKind, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.message = &Message{Kind: kind, Text: text}
}

// SubmitLogin validates credentials locally, then authenticates against the
// backend. Local failures attach per-field errors and send nothing over the
// wire. On success the user is handed to the session manager and returned.
func (c *Controller) SubmitLogin(ctx context.Context, email, password string) (*models.User, error) {
	errs := map[string]string{}
	if !validate.Email(email) {
		errs["email"] = "Valid email is required"
	}
	if password == "" {
		errs["password"] = "Password is required"
	}

	c.mu.Lock()
	if c.loading || c.mode != ModeLogin {
		c.mu.Unlock()
		return nil, nil
	}
	c.message = nil
	c.errors = errs
	if len(errs) > 0 {
		c.mu.Unlock()
		return nil, nil
	}
	c.loading = true
	gen := c.gen
	c.mu.Unlock()
	defer c.endLoading()

	user, err := c.client.Login(ctx, email, password)
	if err != nil {
		c.setMessage(gen, KindError, loginErrorText(err))
		return nil, err
	}
	if !c.stillCurrent(gen) {
		return nil, nil
	}

	// The backend response determines role; it is trusted verbatim.
	if err := c.sessions.Establish(ctx, user); err != nil {
		c.setMessage(gen, KindError, "An unexpected error occurred. Please try again.")
		return nil, err
	}
	return user, nil
}

// SubmitRegister validates the draft locally, then sends a registration
// request. On acceptance the flow enters PendingVerification; on backend
// failure a status message is surfaced and the mode stays Register.
func (c *Controller) SubmitRegister(ctx context.Context, draft Draft) error {
	errs := map[string]string{}
	if draft.Name == "" {
		errs["name"] = "Full name is required"
	}
	if !validate.Email(draft.Email) {
		errs["email"] = "Please enter a valid email address"
	}
	if !validate.PasswordComplexity(draft.Password) {
		errs["password"] = "Password must be 8+ chars with uppercase, lowercase, and a number"
	}
	if draft.Password != draft.PasswordConfirmation {
		errs["passwordConfirmation"] = "Passwords do not match"
	}

	c.mu.Lock()
	if c.loading || c.mode != ModeRegister {
		c.mu.Unlock()
		return nil
	}
	c.draft = draft
	c.message = nil
	c.errors = errs
	if len(errs) > 0 {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	gen := c.gen
	c.mu.Unlock()
	defer c.endLoading()

	if err := c.client.Register(ctx, draft.Name, draft.Email, draft.Password); err != nil {
		c.setMessage(gen, KindError, registerErrorText(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.mode = ModePendingVerification
	return nil
}

// SubmitCode hands a completed 6-digit code to the backend. Acceptance
// returns the flow to Login with a success message and the registration
// email pre-filled; rejection surfaces an error and stays in
// PendingVerification. The code buffer itself is widget-owned and is not
// touched here.
func (c *Controller) SubmitCode(ctx context.Context, code string) error {
	c.mu.Lock()
	if c.loading || c.mode != ModePendingVerification {
		c.mu.Unlock()
		return nil
	}
	email := c.draft.Email
	c.message = nil
	c.loading = true
	gen := c.gen
	c.mu.Unlock()
	defer c.endLoading()

	if err := c.client.VerifyCode(ctx, email, code); err != nil {
		c.setMessage(gen, KindError, verifyErrorText(err))
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.mode = ModeLogin
	c.loginEmail = email
	c.draft = Draft{}
	c.message = &Message{Kind: KindSuccess, Text: "Account activated! You can now log in securely."}
	return nil
}

// RequestResend asks the backend to reissue a code for the draft email. It
// does not change mode; the widget owns the cooldown bookkeeping. The bool
// reports whether a code was actually requested, so a resend refused while
// another round trip is in flight does not restart the widget's cooldown.
func (c *Controller) RequestResend(ctx context.Context) (bool, error) {
	c.mu.Lock()
	if c.loading || c.mode != ModePendingVerification {
		c.mu.Unlock()
		return false, nil
	}
	email := c.draft.Email
	c.loading = true
	gen := c.gen
	c.mu.Unlock()
	defer c.endLoading()

	if err := c.client.ResendCode(ctx, email); err != nil {
		c.setMessage(gen, KindError, resendErrorText(err))
		return false, err
	}
	c.setMessage(gen, KindSuccess, "A fresh security code has been sent to your inbox.")
	return true, nil
}

func loginErrorText(err error) string {
	switch {
	case errors.Is(err, common.ErrUnauthorized):
		return "Invalid email or password."
	case errors.Is(err, common.ErrNotVerified):
		return "Please verify your email before logging in."
	case errors.Is(err, common.ErrUnavailable):
		return "The server is unreachable. Please try again shortly."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

func registerErrorText(err error) string {
	switch {
	case errors.Is(err, common.ErrEmailTaken):
		return "This email is already registered. Try logging in instead."
	case errors.Is(err, common.ErrUnavailable):
		return "The server is unreachable. Please try again shortly."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

func verifyErrorText(err error) string {
	switch {
	case errors.Is(err, common.ErrCodeExpired):
		return "Your code has expired. Request a new one."
	case errors.Is(err, common.ErrCodeInvalid):
		return "Invalid verification code. Please try again."
	case errors.Is(err, common.ErrUnavailable):
		return "The server is unreachable. Please try again shortly."
	default:
		return "An unexpected error occurred. Please try again."
	}
}

func resendErrorText(err error) string {
	switch {
	case errors.Is(err, common.ErrResendTooSoon):
		return "A code was sent recently. Please wait before requesting another."
	case errors.Is(err, common.ErrUnavailable):
		return "The server is unreachable. Please try again shortly."
	default:
		return "An unexpected error occurred. Please try again."
	}
}
