// Package api defines the console's contract with the credential backend
// and its HTTP implementation. The flow controller depends only on the
// Client interface; tests substitute a fake.
package api

import (
	"context"

	"github.com/imararent/imararent/internal/client/models"
)

// Client is the credential backend boundary.
//
// Contract:
//   - Register begins registration and triggers out-of-band code delivery.
//   - Login authenticates and returns a fully populated User, role included.
//   - VerifyCode confirms a 6-digit code; on success the account becomes
//     login-eligible.
//   - ResendCode reissues a code to the same email.
//   - Ping checks backend liveness.
//
// All methods must honor context cancellation/timeouts. Failures are mapped
// onto the sentinel errors in internal/common.
type Client interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (*models.User, error)
	VerifyCode(ctx context.Context, email, code string) error
	ResendCode(ctx context.Context, email string) error
	Ping(ctx context.Context) error
	Close() error
}
