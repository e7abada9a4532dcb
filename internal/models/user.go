package models

import (
	"strings"
	"time"

	"github.com/mmynk/splitledger/internal/id"
)

// User represents a registered user account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Email is the user's email address (unique, stored lower-case).
	Email string

	// DisplayName is copied into group memberships when the user joins.
	DisplayName string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	// Groups lists the groups the user is an active member of.
	Groups []string

	// Friends lists user ids the user can add to groups directly.
	Friends []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser creates a user with a fresh id and timestamps.
func NewUser(email, displayName, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:           id.NewUUID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// HasFriend reports whether friendID is in the user's friend list.
func (u *User) HasFriend(friendID string) bool {
	for _, f := range u.Friends {
		if f == friendID {
			return true
		}
	}
	return false
}
