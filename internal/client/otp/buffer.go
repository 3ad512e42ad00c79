// Package otp implements the one-time-code entry widget: a fixed-length
// buffer of digit slots with focus tracking, and a resend cooldown driven by
// a repeating timer.
package otp

import "strings"

// CodeLength is the number of digit slots in a verification code.
const CodeLength = 6

// Buffer is an ordered sequence of exactly CodeLength digit-or-empty slots
// plus a focus cursor. Slots are overwrite-not-append: typing several
// characters into one slot keeps only the last one.
type Buffer struct {
	slots [CodeLength]string
	focus int
}

// NewBuffer returns an empty buffer with focus at position 0.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Focus returns the current cursor position.
func (b *Buffer) Focus() int { return b.focus }

// Slot returns the content of position i ("" when empty).
func (b *Buffer) Slot(i int) string {
	if i < 0 || i >= CodeLength {
		return ""
	}
	return b.slots[i]
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// Enter applies a single-slot edit at position i. Non-digit input is
// rejected and leaves the slot unchanged. If input holds several characters
// only the last is stored. A non-empty entry advances focus to i+1 unless i
// is already the last slot. Enter reports whether the buffer changed.
func (b *Buffer) Enter(i int, input string) bool {
	if i < 0 || i >= CodeLength {
		return false
	}
	if input == "" {
		b.slots[i] = ""
		return true
	}
	runes := []rune(input)
	last := runes[len(runes)-1]
	if !isDigit(last) {
		return false
	}
	b.slots[i] = string(last)
	if i < CodeLength-1 {
		b.focus = i + 1
	}
	return true
}

// Backspace handles a backspace keystroke at position i. On an empty slot
// with i>0 it only moves focus back; the previous slot keeps its content and
// is deleted by a subsequent keystroke at the new position. On a filled slot
// it clears the slot in place.
func (b *Buffer) Backspace(i int) {
	if i < 0 || i >= CodeLength {
		return
	}
	if b.slots[i] == "" {
		if i > 0 {
			b.focus = i - 1
		}
		return
	}
	b.slots[i] = ""
}

// Paste distributes clipboard text across the buffer. Up to CodeLength
// characters are taken; the payload is accepted only if every taken
// character is a digit. Characters fill left to right from position 0,
// overwriting existing entries, and focus moves to min(len, CodeLength-1).
// Paste reports whether the payload was accepted.
func (b *Buffer) Paste(text string) bool {
	runes := []rune(text)
	if len(runes) > CodeLength {
		runes = runes[:CodeLength]
	}
	if len(runes) == 0 {
		return false
	}
	for _, r := range runes {
		if !isDigit(r) {
			return false
		}
	}
	for i, r := range runes {
		b.slots[i] = string(r)
	}
	b.focus = len(runes)
	if b.focus > CodeLength-1 {
		b.focus = CodeLength - 1
	}
	return true
}

// Complete reports whether every slot is filled.
func (b *Buffer) Complete() bool {
	for _, s := range b.slots {
		if s == "" {
			return false
		}
	}
	return true
}

// Code concatenates the slots into a single string. Meaningful only when
// Complete() is true.
func (b *Buffer) Code() string {
	return strings.Join(b.slots[:], "")
}

// Reset clears every slot and returns focus to position 0.
func (b *Buffer) Reset() {
	b.slots = [CodeLength]string{}
	b.focus = 0
}

// String renders the buffer for the console prompt, e.g. [1][2][_][_][_][_].
func (b *Buffer) String() string {
	var sb strings.Builder
	for _, s := range b.slots {
		if s == "" {
			s = "_"
		}
		sb.WriteString("[" + s + "]")
	}
	return sb.String()
}
