package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuffer_SequentialEntry(t *testing.T) {
	b := NewBuffer()

	for i, d := range []string{"1", "2", "3", "4", "5", "6"} {
		assert.True(t, b.Enter(b.Focus(), d), "digit %d", i)
	}

	assert.True(t, b.Complete())
	assert.Equal(t, "123456", b.Code())
	// Focus stays on the last slot.
	assert.Equal(t, 5, b.Focus())
}

func TestBuffer_RejectsNonDigit(t *testing.T) {
	b := NewBuffer()
	b.Enter(0, "7")

	assert.False(t, b.Enter(1, "x"))
	assert.Equal(t, "", b.Slot(1))
	// Focus did not advance on rejection.
	assert.Equal(t, 1, b.Focus())
}

func TestBuffer_OverwriteKeepsLastChar(t *testing.T) {
	b := NewBuffer()
	assert.True(t, b.Enter(0, "12"))
	assert.Equal(t, "2", b.Slot(0))
}

func TestBuffer_BackspaceOnEmptyMovesFocus(t *testing.T) {
	b := NewBuffer()
	b.Enter(0, "9") // focus now 1

	b.Backspace(1)
	assert.Equal(t, 0, b.Focus())
	// Previous slot's content is not deleted automatically.
	assert.Equal(t, "9", b.Slot(0))

	// A subsequent backspace at the new position clears in place.
	b.Backspace(0)
	assert.Equal(t, "", b.Slot(0))
	assert.Equal(t, 0, b.Focus())
}

func TestBuffer_BackspaceAtZeroIsNoop(t *testing.T) {
	b := NewBuffer()
	b.Backspace(0)
	assert.Equal(t, 0, b.Focus())
}

func TestBuffer_Paste(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.Paste("98765"))
	assert.Equal(t, "9", b.Slot(0))
	assert.Equal(t, "8", b.Slot(1))
	assert.Equal(t, "7", b.Slot(2))
	assert.Equal(t, "6", b.Slot(3))
	assert.Equal(t, "5", b.Slot(4))
	assert.Equal(t, "", b.Slot(5))
	assert.Equal(t, 4, b.Focus())
	assert.False(t, b.Complete())
}

func TestBuffer_PasteOverwritesAndCaps(t *testing.T) {
	b := NewBuffer()
	b.Paste("111111")

	assert.True(t, b.Paste("22222299")) // only first six taken
	assert.Equal(t, "222222", b.Code())
	assert.Equal(t, 5, b.Focus())
}

func TestBuffer_PasteRejectsMixedPayload(t *testing.T) {
	b := NewBuffer()
	b.Enter(0, "4")

	assert.False(t, b.Paste("12a4"))
	// Rejected payload leaves the buffer untouched.
	assert.Equal(t, "4", b.Slot(0))
	assert.Equal(t, "", b.Slot(1))
}

func TestBuffer_Render(t *testing.T) {
	b := NewBuffer()
	b.Paste("12")
	assert.Equal(t, "[1][2][_][_][_][_]", b.String())
}
