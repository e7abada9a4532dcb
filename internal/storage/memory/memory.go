// Package memory provides an in-process implementation of storage.Store.
// Groups are deep-copied on the way in and out, so callers never share state
// with the store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps groups and users in maps guarded by a single RWMutex.
type Store struct {
	mu      sync.RWMutex
	groups  map[string]*models.Group
	users   map[string]*models.User
	friends map[string]map[string]bool
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		groups:  make(map[string]*models.Group),
		users:   make(map[string]*models.User),
		friends: make(map[string]map[string]bool),
	}
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// CreateGroup stores a copy of group with Version 1.
func (s *Store) CreateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[group.ID]; ok {
		return fmt.Errorf("%w: group id %s", models.ErrDuplicateCode, group.ID)
	}
	for _, g := range s.groups {
		if g.Code == group.Code {
			return fmt.Errorf("%w: %s", models.ErrDuplicateCode, group.Code)
		}
		if group.InviteCode != "" && g.InviteCode == group.InviteCode {
			return fmt.Errorf("%w: invite %s", models.ErrDuplicateCode, group.InviteCode)
		}
	}

	group.Version = 1
	s.groups[group.ID] = group.Clone()
	return nil
}

// GetGroup returns a copy of the stored group.
func (s *Store) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g, ok := s.groups[groupID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	return g.Clone(), nil
}

// GetGroupByCode scans for a group with the given join code.
func (s *Store) GetGroupByCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if g.Code == code {
			return g.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: code %s", models.ErrGroupNotFound, code)
}

// GetGroupByInviteCode scans for a group carrying the invite code.
func (s *Store) GetGroupByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	code = models.NormalizeCode(code)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, g := range s.groups {
		if code != "" && g.InviteCode == code {
			return g.Clone(), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrInvalidInvite, code)
}

// GroupCodeExists reports whether a group uses code.
func (s *Store) GroupCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.GetGroupByCode(ctx, code)
	return err == nil, nil
}

// InviteCodeExists reports whether a group carries the invite code.
func (s *Store) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	_, err := s.GetGroupByInviteCode(ctx, code)
	return err == nil, nil
}

// UpdateGroup replaces the stored group when versions match.
func (s *Store) UpdateGroup(ctx context.Context, group *models.Group) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.groups[group.ID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrGroupNotFound, group.ID)
	}
	if current.Version != group.Version {
		return fmt.Errorf("%w: %s at version %d, have %d", models.ErrVersionConflict, group.ID, current.Version, group.Version)
	}
	if group.InviteCode != "" {
		for id, g := range s.groups {
			if id != group.ID && g.InviteCode == group.InviteCode {
				return fmt.Errorf("%w: invite %s", models.ErrDuplicateCode, group.InviteCode)
			}
		}
	}

	group.Version++
	s.groups[group.ID] = group.Clone()
	return nil
}

// DeleteGroup removes a group.
func (s *Store) DeleteGroup(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groups[groupID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrGroupNotFound, groupID)
	}
	delete(s.groups, groupID)
	return nil
}

// ListGroupsByMember returns copies of every group userID is active in.
func (s *Store) ListGroupsByMember(ctx context.Context, userID string) ([]*models.Group, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Group
	for _, g := range s.groups {
		if g.IsActiveMember(userID) {
			out = append(out, g.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CreateUser stores a copy of user.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: %s", models.ErrEmailExists, user.Email)
		}
	}
	s.users[user.ID] = copyUser(user)
	return nil
}

// GetUserByEmail scans for a user with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			return s.withFriends(u), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, email)
}

// GetUserByID returns a copy of the stored user.
func (s *Store) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	return s.withFriends(u), nil
}

// AddGroupToUser appends groupID to the user's group list.
func (s *Store) AddGroupToUser(ctx context.Context, userID, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	if !slices.Contains(u.Groups, groupID) {
		u.Groups = append(u.Groups, groupID)
	}
	return nil
}

// RemoveGroupFromUser drops groupID from the user's group list.
func (s *Store) RemoveGroupFromUser(ctx context.Context, userID, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[userID]; ok {
		u.Groups = slices.DeleteFunc(u.Groups, func(id string) bool { return id == groupID })
	}
	return nil
}

// RemoveGroupFromUsers drops groupID from every user's group list.
func (s *Store) RemoveGroupFromUsers(ctx context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		u.Groups = slices.DeleteFunc(u.Groups, func(id string) bool { return id == groupID })
	}
	return nil
}

// AddFriend records the friendship in both directions.
func (s *Store) AddFriend(ctx context.Context, userID, friendID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range []string{userID, friendID} {
		if _, ok := s.users[id]; !ok {
			return fmt.Errorf("%w: %s", models.ErrUserNotFound, id)
		}
	}
	s.link(userID, friendID)
	s.link(friendID, userID)
	return nil
}

// ListFriends returns copies of userID's friends, ordered by display name.
func (s *Store) ListFriends(ctx context.Context, userID string) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrUserNotFound, userID)
	}
	var out []*models.User
	for id := range s.friends[userID] {
		out = append(out, s.withFriends(s.users[id]))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayName < out[j].DisplayName
	})
	return out, nil
}

func (s *Store) link(from, to string) {
	if s.friends[from] == nil {
		s.friends[from] = make(map[string]bool)
	}
	s.friends[from][to] = true
}

// withFriends copies u and fills its friend list. Callers hold s.mu.
func (s *Store) withFriends(u *models.User) *models.User {
	c := copyUser(u)
	c.Friends = nil
	for id := range s.friends[u.ID] {
		c.Friends = append(c.Friends, id)
	}
	sort.Strings(c.Friends)
	return c
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.Groups = slices.Clone(u.Groups)
	c.Friends = slices.Clone(u.Friends)
	return &c
}
