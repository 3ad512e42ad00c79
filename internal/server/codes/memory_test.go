package codes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imararent/imararent/internal/common"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore(10*time.Minute, 5)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a@b.io", "123456"))

	issued, err := s.LastIssued(ctx, "a@b.io")
	require.NoError(t, err)
	assert.False(t, issued.IsZero())

	require.NoError(t, s.Check(ctx, "a@b.io", "123456"))

	// Consumed on success.
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "123456"), common.ErrCodeInvalid)
}

func TestMemoryStore_Mismatch(t *testing.T) {
	s := NewMemoryStore(10*time.Minute, 5)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a@b.io", "123456"))
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "000000"), common.ErrCodeInvalid)

	// The right code still works after a failed attempt.
	assert.NoError(t, s.Check(ctx, "a@b.io", "123456"))
}

func TestMemoryStore_AttemptCap(t *testing.T) {
	s := NewMemoryStore(10*time.Minute, 3)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "a@b.io", "123456"))

	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "000001"), common.ErrCodeInvalid)
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "000002"), common.ErrCodeInvalid)
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "000003"), common.ErrCodeExpired)

	// Burned entirely, even for the right code.
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "123456"), common.ErrCodeInvalid)
}

func TestMemoryStore_Expiry(t *testing.T) {
	s := NewMemoryStore(10*time.Minute, 5)
	ctx := context.Background()

	base := time.Now()
	s.now = func() time.Time { return base }
	require.NoError(t, s.Save(ctx, "a@b.io", "123456"))

	s.now = func() time.Time { return base.Add(11 * time.Minute) }
	assert.ErrorIs(t, s.Check(ctx, "a@b.io", "123456"), common.ErrCodeExpired)

	issued, err := s.LastIssued(ctx, "a@b.io")
	require.NoError(t, err)
	assert.True(t, issued.IsZero())
}
