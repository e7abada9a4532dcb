package models

import (
	"fmt"
	"strings"
	"time"
)

// Role is a member's role within a group.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Member is one user's membership record. Records are never removed, only
// deactivated, so ledger entries keep resolving to a member.
type Member struct {
	UserID string `json:"user_id"`

	// Name is the display name captured when the user joined.
	Name string `json:"name"`

	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
	IsActive bool      `json:"is_active"`
}

// FindMember returns the membership record for userID, active or not.
func (g *Group) FindMember(userID string) *Member {
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// ActiveMember returns the active membership record for userID, or nil.
func (g *Group) ActiveMember(userID string) *Member {
	if m := g.FindMember(userID); m != nil && m.IsActive {
		return m
	}
	return nil
}

// IsActiveMember reports whether userID has an active membership.
func (g *Group) IsActiveMember(userID string) bool {
	return g.ActiveMember(userID) != nil
}

// IsAdmin reports whether userID is an active admin.
func (g *Group) IsAdmin(userID string) bool {
	m := g.ActiveMember(userID)
	return m != nil && m.Role == RoleAdmin
}

// ActiveMemberCount counts memberships with IsActive set.
func (g *Group) ActiveMemberCount() int {
	n := 0
	for _, m := range g.Members {
		if m.IsActive {
			n++
		}
	}
	return n
}

// ActiveMembers returns the active membership records in join order.
func (g *Group) ActiveMembers() []Member {
	var active []Member
	for _, m := range g.Members {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// AddMember adds userID as an active member. A previously removed member is
// reactivated in place (keeping their role and position) rather than
// duplicated. role defaults to RoleMember.
func (g *Group) AddMember(userID, name string, role Role, now time.Time) (*Member, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, invalid(ErrValidation, "user_id", "user is required")
	}
	switch role {
	case "":
		role = RoleMember
	case RoleAdmin, RoleMember:
	default:
		return nil, invalid(ErrValidation, "role", "unknown role %q", role)
	}

	existing := g.FindMember(userID)
	if existing != nil && existing.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyMember, userID)
	}
	if active := g.ActiveMemberCount(); active >= g.MaxMembers {
		return nil, fmt.Errorf("%w: %d of %d", ErrCapacityExceeded, active, g.MaxMembers)
	}

	if existing != nil {
		existing.IsActive = true
		existing.JoinedAt = now
		if name != "" {
			existing.Name = name
		}
		return existing, nil
	}

	g.Members = append(g.Members, Member{
		UserID:   userID,
		Name:     name,
		Role:     role,
		JoinedAt: now,
		IsActive: true,
	})
	return &g.Members[len(g.Members)-1], nil
}

// RemoveMember soft-deletes userID's membership. It fails while any pending
// debt, in any currency, names the user on either side.
func (g *Group) RemoveMember(userID string) error {
	m := g.ActiveMember(userID)
	if m == nil {
		return fmt.Errorf("%w: %s", ErrNotAMember, userID)
	}
	if n := len(g.PendingDebtsFor(userID)); n > 0 {
		return fmt.Errorf("%w: %s has %d", ErrOutstandingDebt, userID, n)
	}
	m.IsActive = false
	return nil
}

// memberName returns the denormalized name for userID, falling back to the
// id for users with no membership record.
func (g *Group) memberName(userID string) string {
	if m := g.FindMember(userID); m != nil && m.Name != "" {
		return m.Name
	}
	return userID
}
