package groups

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

const (
	// DefaultInviteHours is used when GenerateInviteCode gets zero hours.
	DefaultInviteHours = 24
	// MaxInviteHours bounds invite code lifetime to 30 days.
	MaxInviteHours = 720
)

// CreateGroup creates a group owned by actor with a fresh join code.
// ID, Code, OwnerID and OwnerName in p are ignored.
func (e *Engine) CreateGroup(ctx context.Context, actor Actor, p models.GroupParams) (*models.Group, error) {
	g, err := e.createGroup(ctx, actor, p)
	if err != nil {
		return nil, e.observe("create_group", err)
	}
	e.observe("create_group", nil)

	slog.InfoContext(ctx, "Group created", "group_id", g.ID, "code", g.Code, "owner_id", actor.UserID)
	e.linkUser(ctx, actor.UserID, g.ID)
	e.publish(ctx, events.GroupCreated, g, actor, map[string]any{"code": g.Code, "title": g.Title})
	return g, nil
}

func (e *Engine) createGroup(ctx context.Context, actor Actor, p models.GroupParams) (*models.Group, error) {
	p.ID = uuid.New().String()
	p.OwnerID = actor.UserID
	p.OwnerName = actor.Name

	// Validate before spending codes on an invalid request.
	if _, err := models.NewGroup(p, e.now()); err != nil {
		return nil, err
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := e.uniqueCode(ctx, GroupCodeLength, e.store.GroupCodeExists)
		if err != nil {
			return nil, err
		}
		p.Code = code
		g, err := models.NewGroup(p, e.now())
		if err != nil {
			return nil, err
		}
		err = e.store.CreateGroup(ctx, g)
		if errors.Is(err, models.ErrDuplicateCode) {
			// Lost a race with another creator for the same code.
			continue
		}
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: no free group code after %d attempts", models.ErrDuplicateCode, maxCodeAttempts)
}

// GetGroup returns the group if actor is an active member.
func (e *Engine) GetGroup(ctx context.Context, actor Actor, groupID string) (*models.Group, error) {
	return e.view(ctx, actor, groupID)
}

// ListGroups returns the groups actor is an active member of, newest first.
func (e *Engine) ListGroups(ctx context.Context, actor Actor) ([]*models.Group, error) {
	return e.store.ListGroupsByMember(ctx, actor.UserID)
}

// UpdateSettings applies a partial settings update. Admin only.
func (e *Engine) UpdateSettings(ctx context.Context, actor Actor, groupID string, s models.Settings) (*models.Group, error) {
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireAdmin(g, actor); err != nil {
			return err
		}
		return g.UpdateSettings(s)
	})
	if err != nil {
		return nil, e.observe("update_settings", err)
	}
	e.observe("update_settings", nil)

	e.publish(ctx, events.GroupUpdated, g, actor, map[string]any{"is_archived": g.IsArchived})
	return g, nil
}

// GenerateInviteCode replaces the group's invite code with a fresh one valid
// for hours (DefaultInviteHours when zero). Admin only.
func (e *Engine) GenerateInviteCode(ctx context.Context, actor Actor, groupID string, hours int) (*models.Group, error) {
	if hours == 0 {
		hours = DefaultInviteHours
	}
	if hours < 1 || hours > MaxInviteHours {
		return nil, e.observe("generate_invite", &models.ValidationError{
			Field:   "expiration_hours",
			Message: fmt.Sprintf("must be between 1 and %d", MaxInviteHours),
		})
	}

	g, err := e.rotateInvite(ctx, actor, groupID, time.Duration(hours)*time.Hour)
	if err != nil {
		return nil, e.observe("generate_invite", err)
	}
	e.observe("generate_invite", nil)

	slog.InfoContext(ctx, "Invite code generated", "group_id", g.ID, "expires_at", g.InviteCodeExpiresAt)
	return g, nil
}

func (e *Engine) rotateInvite(ctx context.Context, actor Actor, groupID string, ttl time.Duration) (*models.Group, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := e.uniqueCode(ctx, InviteCodeLength, e.store.InviteCodeExists)
		if err != nil {
			return nil, err
		}
		g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
			if err := requireAdmin(g, actor); err != nil {
				return err
			}
			if err := g.CheckWritable(); err != nil {
				return err
			}
			g.SetInviteCode(code, e.now().Add(ttl))
			return nil
		})
		if errors.Is(err, models.ErrDuplicateCode) {
			// Another group claimed the code after the existence check.
			continue
		}
		if err != nil {
			return nil, err
		}
		return g, nil
	}
	return nil, fmt.Errorf("%w: no free invite code after %d attempts", models.ErrDuplicateCode, maxCodeAttempts)
}

// DeleteGroup removes a group with no pending debts. Owner only, unless the
// owner's membership is inactive, in which case any active admin may.
func (e *Engine) DeleteGroup(ctx context.Context, actor Actor, groupID string) error {
	err := e.deleteGroup(ctx, actor, groupID)
	return e.observe("delete_group", err)
}

func (e *Engine) deleteGroup(ctx context.Context, actor Actor, groupID string) error {
	unlock := e.locks.Lock(groupID)
	defer unlock()

	g, err := e.store.GetGroup(ctx, groupID)
	if err != nil {
		return err
	}
	if err := requireDeleter(g, actor); err != nil {
		return err
	}
	if err := g.CheckDeletable(); err != nil {
		return err
	}

	if err := e.store.DeleteGroup(ctx, groupID); err != nil {
		return err
	}
	// The group is already gone; list cleanup is best-effort.
	if err := e.store.RemoveGroupFromUsers(ctx, groupID); err != nil {
		slog.WarnContext(ctx, "Failed to remove deleted group from users", "group_id", groupID, "error", err)
	}

	slog.InfoContext(ctx, "Group deleted", "group_id", groupID, "actor_id", actor.UserID)
	e.publish(ctx, events.GroupDeleted, g, actor, nil)
	return nil
}
