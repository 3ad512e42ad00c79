package users

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imararent/imararent/internal/common"
	"github.com/imararent/imararent/internal/logging"
	"github.com/imararent/imararent/internal/server/auth"
	"github.com/imararent/imararent/internal/server/codes"
	"github.com/imararent/imararent/internal/server/config"
	"github.com/imararent/imararent/internal/server/models"
	usersrepo "github.com/imararent/imararent/internal/server/repositories/users"
)

type recordingMailer struct {
	emails []string
	codes  []string
}

func (m *recordingMailer) SendCode(_ context.Context, email, code string) error {
	m.emails = append(m.emails, email)
	m.codes = append(m.codes, code)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	return cfg
}

func newTestService(t *testing.T) (*Service, *recordingMailer, *config.Config) {
	t.Helper()
	cfg := testConfig()
	m := &recordingMailer{}
	logger := logging.NewSlogLogger(slog.New(slog.DiscardHandler))
	svc := NewService(usersrepo.NewMemoryRepository(), codes.NewMemoryStore(cfg.CodeTTL, cfg.CodeMaxAttempts), m, logger, cfg)
	return svc, m, cfg
}

func pinCode(t *testing.T, code string) {
	t.Helper()
	orig := makeCode
	makeCode = func() (string, error) { return code, nil }
	t.Cleanup(func() { makeCode = orig })
}

func TestRegisterVerifyLogin(t *testing.T) {
	svc, m, cfg := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	require.Equal(t, []string{"alice@example.org"}, m.emails)

	// Unverified accounts cannot log in.
	_, _, err := svc.Login(ctx, "alice@example.org", "Passw0rd!")
	assert.ErrorIs(t, err, common.ErrNotVerified)

	require.NoError(t, svc.Verify(ctx, "alice@example.org", "123456"))

	user, token, err := svc.Login(ctx, "alice@example.org", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, models.RoleTenant, user.Role)
	assert.Equal(t, models.StatusActive, user.Status)

	claims, err := auth.ParseToken(token, []byte(cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(models.RoleTenant), claims.Role)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	err := svc.Register(ctx, "Mallory", "alice@example.org", "Other1Pass")
	assert.ErrorIs(t, err, common.ErrEmailTaken)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	require.NoError(t, svc.Verify(ctx, "alice@example.org", "123456"))

	_, _, err := svc.Login(ctx, "alice@example.org", "wrong password")
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// Unknown email is indistinguishable from a wrong password.
	_, _, err = svc.Login(ctx, "nobody@example.org", "Passw0rd!")
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestVerify_WrongCode(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	assert.ErrorIs(t, svc.Verify(ctx, "alice@example.org", "654321"), common.ErrCodeInvalid)

	// The right code still activates afterwards.
	require.NoError(t, svc.Verify(ctx, "alice@example.org", "123456"))
}

func TestResend_ThrottledThenAllowed(t *testing.T) {
	svc, m, cfg := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	require.Len(t, m.codes, 1)

	// Immediately after registration the resend interval has not elapsed.
	assert.ErrorIs(t, svc.Resend(ctx, "alice@example.org"), common.ErrResendTooSoon)

	origSince := timeSince
	timeSince = func(time.Time) time.Duration { return cfg.ResendMinInterval + time.Second }
	defer func() { timeSince = origSince }()

	require.NoError(t, svc.Resend(ctx, "alice@example.org"))
	assert.Len(t, m.codes, 2)
}

func TestResend_UnknownOrActive(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	pinCode(t, "123456")

	assert.ErrorIs(t, svc.Resend(ctx, "nobody@example.org"), common.ErrCodeInvalid)

	require.NoError(t, svc.Register(ctx, "Alice", "alice@example.org", "Passw0rd!"))
	require.NoError(t, svc.Verify(ctx, "alice@example.org", "123456"))
	assert.ErrorIs(t, svc.Resend(ctx, "alice@example.org"), common.ErrCodeInvalid)
}
