package groups

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/splitledger/internal/events"
	"github.com/mmynk/splitledger/internal/models"
)

// JoinGroup adds actor to the group with the given join code.
func (e *Engine) JoinGroup(ctx context.Context, actor Actor, code string) (*models.Group, error) {
	found, err := e.store.GetGroupByCode(ctx, code)
	if err != nil {
		return nil, e.observe("join_group", err)
	}
	g, err := e.join(ctx, actor, found.ID, nil)
	return g, e.observe("join_group", err)
}

// JoinByInvite adds actor to the group whose current invite code is code.
func (e *Engine) JoinByInvite(ctx context.Context, actor Actor, code string) (*models.Group, error) {
	found, err := e.store.GetGroupByInviteCode(ctx, code)
	if err != nil {
		return nil, e.observe("join_invite", err)
	}
	g, err := e.join(ctx, actor, found.ID, func(g *models.Group) error {
		// Checked again under the lock: the code may have been rotated.
		return g.CheckInvite(code, e.now())
	})
	return g, e.observe("join_invite", err)
}

func (e *Engine) join(ctx context.Context, actor Actor, groupID string, check func(*models.Group) error) (*models.Group, error) {
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if check != nil {
			if err := check(g); err != nil {
				return err
			}
		}
		if err := g.CheckWritable(); err != nil {
			return err
		}
		_, err := g.AddMember(actor.UserID, actor.Name, models.RoleMember, e.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Member joined", "group_id", g.ID, "user_id", actor.UserID)
	e.linkUser(ctx, actor.UserID, g.ID)
	e.publish(ctx, events.MemberJoined, g, actor, map[string]any{"user_id": actor.UserID})
	return g, nil
}

// AddFriendToGroup adds one of actor's friends to the group as a member.
func (e *Engine) AddFriendToGroup(ctx context.Context, actor Actor, groupID, friendID string) (*models.Group, error) {
	g, err := e.addFriend(ctx, actor, groupID, friendID)
	return g, e.observe("add_member", err)
}

func (e *Engine) addFriend(ctx context.Context, actor Actor, groupID, friendID string) (*models.Group, error) {
	user, err := e.store.GetUserByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if !user.HasFriend(friendID) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFriend, friendID)
	}
	friend, err := e.store.GetUserByID(ctx, friendID)
	if err != nil {
		return nil, err
	}

	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		if err := g.CheckWritable(); err != nil {
			return err
		}
		_, err := g.AddMember(friend.ID, friend.DisplayName, models.RoleMember, e.now())
		return err
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Member added", "group_id", g.ID, "user_id", friend.ID, "added_by", actor.UserID)
	e.linkUser(ctx, friend.ID, g.ID)
	e.publish(ctx, events.MemberJoined, g, actor, map[string]any{"user_id": friend.ID})
	return g, nil
}

// RemoveMember deactivates userID's membership. Members may remove
// themselves and admins may remove anyone but the owner. The owner never
// leaves; they delete the group instead.
func (e *Engine) RemoveMember(ctx context.Context, actor Actor, groupID, userID string) (*models.Group, error) {
	g, err := e.mutate(ctx, groupID, func(g *models.Group) error {
		if err := requireMember(g, actor); err != nil {
			return err
		}
		if userID != actor.UserID {
			if !g.IsAdmin(actor.UserID) {
				return fmt.Errorf("%w: only admins can remove other members", models.ErrForbidden)
			}
			if userID == g.OwnerID {
				return fmt.Errorf("%w: the owner cannot be removed", models.ErrForbidden)
			}
		} else if userID == g.OwnerID {
			return models.ErrOwnerCannotLeave
		}
		return g.RemoveMember(userID)
	})
	if err != nil {
		return nil, e.observe("remove_member", err)
	}
	e.observe("remove_member", nil)

	slog.InfoContext(ctx, "Member removed", "group_id", g.ID, "user_id", userID, "removed_by", actor.UserID)
	e.unlinkUser(ctx, userID, g.ID)
	e.publish(ctx, events.MemberRemoved, g, actor, map[string]any{"user_id": userID})
	return g, nil
}
