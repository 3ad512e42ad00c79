// Package validate contains the pure credential checks applied at submit
// time. There is no live per-keystroke validation; the flow controller calls
// these once per submit attempt.
package validate

import (
	"regexp"
	"unicode"
)

// emailShape matches local@domain.tld: a non-whitespace local part, a
// non-whitespace domain, and at least one dot segment after the '@'.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email reports whether s has the shape of an email address. It is a shape
// check only; deliverability is the backend's problem.
func Email(s string) bool {
	return emailShape.MatchString(s)
}

// PasswordComplexity reports whether s is at least 8 characters long and
// contains an uppercase letter, a lowercase letter, and a digit.
func PasswordComplexity(s string) bool {
	if len(s) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}
