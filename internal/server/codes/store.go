// Package codes stores the short-lived verification codes emailed during
// registration.
package codes

import (
	"context"
	"time"
)

// Store keeps at most one live code per email address.
//
// Save replaces any previous code, resets the attempt counter, and stamps
// the issue time. Check compares a candidate against the stored code:
// a match consumes the code; a mismatch burns an attempt, and once the
// attempt cap is exhausted the code is discarded. LastIssued reports when
// the current code was saved (zero time when none) so the caller can
// enforce a minimum resend interval.
type Store interface {
	Save(ctx context.Context, email, code string) error
	Check(ctx context.Context, email, code string) error
	LastIssued(ctx context.Context, email string) (time.Time, error)
	Delete(ctx context.Context, email string) error
}
