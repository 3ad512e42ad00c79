package otp

import (
	"context"
	"sync"
	"time"
)

// ResendCooldownSeconds is the mandatory wait before a new verification code
// may be requested.
const ResendCooldownSeconds = 30

// tickInterval is a test seam: production code ticks once per second, tests
// shrink this so cooldown countdowns complete instantly.
var tickInterval = time.Second

// Widget owns the code buffer, the resend cooldown, and the canResend flag.
// A single repeating timer decrements the cooldown once per interval; the
// timer goroutine exits when the countdown reaches zero and is torn down
// whenever the widget is stopped or the countdown is replaced, so no
// periodic work is ever orphaned.
//
// The widget emits either a completed code (onSubmit) or a resend request
// (onResend); everything else is internal state.
type Widget struct {
	mu         sync.Mutex
	buf        *Buffer
	cooldown   int
	canResend  bool
	inFlight   bool
	cancelTick context.CancelFunc

	onSubmit func(code string)
	onResend func() bool
}

// NewWidget returns a widget with an empty buffer, cooldown at its initial
// value, and resend disabled. Callbacks may be nil. onResend reports whether
// a code was actually requested; a refusal leaves the widget retryable. The
// countdown does not run until Start is called.
func NewWidget(onSubmit func(code string), onResend func() bool) *Widget {
	return &Widget{
		buf:      NewBuffer(),
		cooldown: ResendCooldownSeconds,
		onSubmit: onSubmit,
		onResend: onResend,
	}
}

// Start begins the cooldown countdown (the "initial render" of the widget).
func (w *Widget) Start() {
	w.startCountdown()
}

// Stop tears down any running countdown. Safe to call repeatedly.
func (w *Widget) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancelTick != nil {
		w.cancelTick()
		w.cancelTick = nil
	}
}

// startCountdown replaces the current countdown goroutine with a fresh one.
// The previous goroutine, if any, is cancelled first.
func (w *Widget) startCountdown() {
	w.mu.Lock()
	if w.cancelTick != nil {
		w.cancelTick()
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.cancelTick = cancel
	w.mu.Unlock()

	go func() {
		t := time.NewTicker(tickInterval)
		defer t.Stop()
		for {
			select {
			case <-t.C:
				if w.tick() {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// tick decrements the cooldown by one second. It reports true when the
// countdown has finished, which also enables resend.
func (w *Widget) tick() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cooldown > 0 {
		w.cooldown--
	}
	if w.cooldown == 0 {
		w.canResend = true
		return true
	}
	return false
}

// Enter forwards a single-slot edit at position i to the buffer.
func (w *Widget) Enter(i int, input string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Enter(i, input)
}

// Backspace forwards a backspace keystroke at position i to the buffer.
func (w *Widget) Backspace(i int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.buf.Backspace(i)
}

// Paste forwards clipboard text to the buffer.
func (w *Widget) Paste(text string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Paste(text)
}

// Focus returns the buffer's cursor position.
func (w *Widget) Focus() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Focus()
}

// Cooldown returns the seconds remaining before resend is permitted.
func (w *Widget) Cooldown() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cooldown
}

// CanResend reports whether the cooldown has elapsed.
func (w *Widget) CanResend() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.canResend
}

// SetInFlight marks a verification round trip as started or finished.
// Submit is a no-op while a request is in flight.
func (w *Widget) SetInFlight(v bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.inFlight = v
}

// Complete reports whether all slots are filled.
func (w *Widget) Complete() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Complete()
}

// Render returns the prompt representation of the buffer.
func (w *Widget) Render() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.String()
}

// Submit emits the concatenated code when all six slots are filled and no
// verification request is in flight. It reports whether a code was emitted.
func (w *Widget) Submit() bool {
	w.mu.Lock()
	if w.inFlight || !w.buf.Complete() {
		w.mu.Unlock()
		return false
	}
	code := w.buf.Code()
	cb := w.onSubmit
	w.mu.Unlock()

	if cb != nil {
		cb(code)
	}
	return true
}

// Resend requests a fresh code. Permitted only once the cooldown has
// elapsed. The cooldown resets and the countdown restarts only after the
// callback confirms a code was requested; a refused request (for example a
// round trip already in flight) leaves resend enabled and the countdown at
// zero. Entered digits are retained. It reports whether a code was
// requested.
func (w *Widget) Resend() bool {
	w.mu.Lock()
	if !w.canResend {
		w.mu.Unlock()
		return false
	}
	w.canResend = false
	cb := w.onResend
	w.mu.Unlock()

	if cb != nil && !cb() {
		w.mu.Lock()
		w.canResend = true
		w.mu.Unlock()
		return false
	}

	w.mu.Lock()
	w.cooldown = ResendCooldownSeconds
	w.mu.Unlock()
	w.startCountdown()
	return true
}
