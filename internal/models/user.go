package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique, lower-cased).
	Email string

	// DisplayName is the default name used when the user joins a trip.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a fresh ID and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  displayName,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Invite is a one-time code that lets a user join a trip with a given role.
type Invite struct {
	ID        string
	TripID    string
	CodeHash  string
	Role      Role
	CreatedBy string
	CreatedAt int64
	ExpiresAt int64
	// UsedBy is the user ID that redeemed the invite; empty while unused.
	UsedBy string
}
