// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/splitledger/internal/models"
)

// GroupStore persists group documents. A group is stored and loaded whole:
// members, expenses, debts and comments travel with it.
type GroupStore interface {
	// CreateGroup persists a new group and sets its Version to 1.
	// Returns models.ErrDuplicateCode if the code or invite code is taken.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group by its ID.
	// Returns models.ErrGroupNotFound if no such group exists.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// GetGroupByCode retrieves a group by its join code, case-insensitively.
	GetGroupByCode(ctx context.Context, code string) (*models.Group, error)

	// GetGroupByInviteCode retrieves a group by its current invite code.
	// Returns models.ErrInvalidInvite if no group carries the code.
	GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error)

	// GroupCodeExists reports whether a group already uses code.
	GroupCodeExists(ctx context.Context, code string) (bool, error)

	// InviteCodeExists reports whether any group currently carries the invite code.
	InviteCodeExists(ctx context.Context, code string) (bool, error)

	// UpdateGroup replaces the stored group if its version still equals
	// group.Version, then increments group.Version.
	// Returns models.ErrVersionConflict when another writer got there first.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group.
	// Returns models.ErrGroupNotFound if no such group exists.
	DeleteGroup(ctx context.Context, groupID string) error

	// ListGroupsByMember returns every group where userID holds an active
	// membership, newest first.
	ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error)
}

// UserStore persists user accounts and their group and friend lists.
type UserStore interface {
	// CreateUser inserts a new user.
	// Returns models.ErrEmailExists if the email is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns models.ErrUserNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID returns models.ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// AddGroupToUser records groupID in the user's group list. Idempotent.
	AddGroupToUser(ctx context.Context, userID, groupID string) error

	// RemoveGroupFromUser drops groupID from the user's group list. Idempotent.
	RemoveGroupFromUser(ctx context.Context, userID, groupID string) error

	// RemoveGroupFromUsers drops groupID from the group list of every user.
	RemoveGroupFromUsers(ctx context.Context, groupID string) error

	// AddFriend records a mutual friendship between two users. Idempotent.
	AddFriend(ctx context.Context, userID, friendID string) error

	// ListFriends returns the users userID is friends with.
	ListFriends(ctx context.Context, userID string) ([]*models.User, error)
}

// Store defines the full persistence surface.
// This abstraction allows swapping storage backends (SQLite, MongoDB, memory)
// without changing the engine or service layer.
type Store interface {
	GroupStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
