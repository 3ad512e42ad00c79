// Package common defines shared constants and sentinel errors used across
// the console and server components of ImaraRent. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Service-level errors.
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("server unavailable")

	// Registration / verification errors.
	ErrEmailTaken    = errors.New("email already registered")
	ErrCodeInvalid   = errors.New("invalid verification code")
	ErrCodeExpired   = errors.New("verification code expired")
	ErrResendTooSoon = errors.New("code requested too recently")
	ErrNotVerified   = errors.New("account not verified")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
