// Package mailer delivers verification codes out of band.
package mailer

import (
	"context"

	"github.com/imararent/imararent/internal/logging"
)

// Mailer sends a verification code to an address.
type Mailer interface {
	SendCode(ctx context.Context, email, code string) error
}

// LogMailer writes codes to the structured log instead of sending mail.
// Good enough for development and for the demo deployment, where operators
// read the code off the server log.
type LogMailer struct {
	logger logging.Logger
}

func NewLogMailer(logger logging.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendCode(ctx context.Context, email, code string) error {
	m.logger.Info(ctx, "verification code issued", "email", email, "code", code)
	return nil
}
