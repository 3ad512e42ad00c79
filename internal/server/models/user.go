// Package models holds the server-side domain records.
package models

import "time"

// Role is the access level stored on an account. The console's view router
// keys off the same wire values.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleManager Role = "MANAGER"
	RoleTenant  Role = "TENANT"
)

// Status is the account lifecycle state. Accounts are created pending and
// become active once the emailed verification code is confirmed.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
)

// User is the persisted account record. PasswordHash is a bcrypt hash and
// never leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         Role
	Status       Status
	AvatarKey    string
	CreatedAt    time.Time
}
