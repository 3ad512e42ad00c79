package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWidget_CooldownCountdown(t *testing.T) {
	w := NewWidget(nil, nil)

	assert.Equal(t, ResendCooldownSeconds, w.Cooldown())
	assert.False(t, w.CanResend())
	assert.False(t, w.Resend())

	// Resend stays disabled right up to the last second.
	for i := 0; i < ResendCooldownSeconds-1; i++ {
		w.tick()
		assert.False(t, w.CanResend(), "after %d ticks", i+1)
	}

	// ...and becomes enabled at exactly cooldown == 0.
	w.tick()
	assert.Equal(t, 0, w.Cooldown())
	assert.True(t, w.CanResend())
}

func TestWidget_ResendResetsCooldownAndKeepsDigits(t *testing.T) {
	var notified bool
	w := NewWidget(nil, func() bool { notified = true; return true })
	defer w.Stop()

	w.Paste("123")
	for i := 0; i < ResendCooldownSeconds; i++ {
		w.tick()
	}
	require.True(t, w.CanResend())

	require.True(t, w.Resend())
	assert.True(t, notified)
	assert.Equal(t, ResendCooldownSeconds, w.Cooldown())
	assert.False(t, w.CanResend())
	assert.False(t, w.Resend(), "resend disabled again immediately after use")

	// Digits entered before the resend are retained.
	assert.Equal(t, "[1][2][3][_][_][_]", w.Render())
}

func TestWidget_ResendRefusedLeavesCooldownAlone(t *testing.T) {
	refuse := true
	w := NewWidget(nil, func() bool { return !refuse })
	defer w.Stop()

	for i := 0; i < ResendCooldownSeconds; i++ {
		w.tick()
	}
	require.True(t, w.CanResend())

	// The controller turned the request down (say, a verification round
	// trip was in flight): no fresh countdown, resend stays available.
	assert.False(t, w.Resend())
	assert.True(t, w.CanResend())
	assert.Equal(t, 0, w.Cooldown())

	refuse = false
	assert.True(t, w.Resend())
	assert.False(t, w.CanResend())
	assert.Equal(t, ResendCooldownSeconds, w.Cooldown())
}

func TestWidget_SubmitRequiresCompleteBuffer(t *testing.T) {
	var got string
	w := NewWidget(func(code string) { got = code }, nil)

	w.Paste("12345")
	assert.False(t, w.Submit())
	assert.Empty(t, got)

	w.Enter(w.Focus(), "6")
	assert.True(t, w.Submit())
	assert.Equal(t, "123456", got)
}

func TestWidget_SubmitDisabledWhileInFlight(t *testing.T) {
	var calls int
	w := NewWidget(func(string) { calls++ }, nil)
	w.Paste("123456")

	w.SetInFlight(true)
	assert.False(t, w.Submit())
	assert.Zero(t, calls)

	w.SetInFlight(false)
	assert.True(t, w.Submit())
	assert.Equal(t, 1, calls)
}

func TestWidget_TickerDrivenCountdown(t *testing.T) {
	orig := tickInterval
	tickInterval = time.Millisecond
	defer func() { tickInterval = orig }()

	w := NewWidget(nil, nil)
	w.Start()
	defer w.Stop()

	assert.Eventually(t, w.CanResend, time.Second, time.Millisecond,
		"cooldown should reach zero on the ticker")
	assert.Equal(t, 0, w.Cooldown())
}

func TestWidget_StopIsIdempotent(t *testing.T) {
	w := NewWidget(nil, nil)
	w.Start()
	w.Stop()
	w.Stop()
}
