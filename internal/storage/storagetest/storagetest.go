// Package storagetest holds the behavioural suite every storage.Store
// backend must pass.
package storagetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Factory returns a fresh, empty store. The suite closes it.
type Factory func(t *testing.T) storage.Store

// Run exercises a storage.Store implementation.
func Run(t *testing.T, newStore Factory) {
	t.Run("Groups", func(t *testing.T) { testGroups(t, newStore(t)) })
	t.Run("OptimisticUpdate", func(t *testing.T) { testOptimisticUpdate(t, newStore(t)) })
	t.Run("Codes", func(t *testing.T) { testCodes(t, newStore(t)) })
	t.Run("ListGroupsByMember", func(t *testing.T) { testListGroupsByMember(t, newStore(t)) })
	t.Run("Users", func(t *testing.T) { testUsers(t, newStore(t)) })
	t.Run("Friends", func(t *testing.T) { testFriends(t, newStore(t)) })
}

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// timeApprox tolerates backends that store timestamps at reduced precision.
var timeApprox = cmpopts.EquateApproxTime(time.Millisecond)

// NewGroup builds a populated group for store tests.
func NewGroup(t *testing.T, id, code, owner string, created time.Time) *models.Group {
	t.Helper()
	g, err := models.NewGroup(models.GroupParams{
		ID:        id,
		Code:      code,
		OwnerID:   owner,
		OwnerName: "Owner " + owner,
		Title:     "Group " + id,
	}, created)
	if err != nil {
		t.Fatalf("NewGroup failed: %v", err)
	}
	if _, err := g.AddMember("member-"+id, "Member", "", created); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}
	if _, err := g.AddExpense(models.ExpenseInput{
		Description: "Dinner",
		Amount:      90,
		PayerID:     owner,
		SplitBetween: []models.SplitInput{
			{UserID: owner, Amount: 45},
			{UserID: "member-" + id, Amount: 45},
		},
		Category: "food",
	}, created, models.RecalcDiscardSettled); err != nil {
		t.Fatalf("AddExpense failed: %v", err)
	}
	if _, err := g.AddComment(owner, "paid in cash", created); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	return g
}

func testGroups(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	g := NewGroup(t, "g1", "ABC123", "owner", base)
	if err := s.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if g.Version != 1 {
		t.Errorf("Version after create = %d, want 1", g.Version)
	}

	got, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if diff := cmp.Diff(g, got, timeApprox, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GetGroup mismatch (-want +got):\n%s", diff)
	}

	byCode, err := s.GetGroupByCode(ctx, "abc123")
	if err != nil {
		t.Fatalf("GetGroupByCode failed: %v", err)
	}
	if byCode.ID != "g1" {
		t.Errorf("GetGroupByCode returned %s, want g1", byCode.ID)
	}

	if _, err := s.GetGroup(ctx, "missing"); !errors.Is(err, models.ErrGroupNotFound) {
		t.Errorf("GetGroup(missing) error = %v, want ErrGroupNotFound", err)
	}
	if _, err := s.GetGroupByCode(ctx, "ZZZ999"); !errors.Is(err, models.ErrGroupNotFound) {
		t.Errorf("GetGroupByCode(missing) error = %v, want ErrGroupNotFound", err)
	}

	if err := s.DeleteGroup(ctx, "g1"); err != nil {
		t.Fatalf("DeleteGroup failed: %v", err)
	}
	if _, err := s.GetGroup(ctx, "g1"); !errors.Is(err, models.ErrGroupNotFound) {
		t.Errorf("GetGroup after delete error = %v, want ErrGroupNotFound", err)
	}
	if err := s.DeleteGroup(ctx, "g1"); !errors.Is(err, models.ErrGroupNotFound) {
		t.Errorf("second DeleteGroup error = %v, want ErrGroupNotFound", err)
	}
}

func testOptimisticUpdate(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	if err := s.CreateGroup(ctx, NewGroup(t, "g1", "ABC123", "owner", base)); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	first, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	second, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}

	first.Title = "Renamed"
	if err := s.UpdateGroup(ctx, first); err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	if first.Version != 2 {
		t.Errorf("Version after update = %d, want 2", first.Version)
	}

	second.Title = "Lost update"
	if err := s.UpdateGroup(ctx, second); !errors.Is(err, models.ErrVersionConflict) {
		t.Fatalf("stale UpdateGroup error = %v, want ErrVersionConflict", err)
	}

	got, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if got.Title != "Renamed" || got.Version != 2 {
		t.Errorf("stored group = %q v%d, want Renamed v2", got.Title, got.Version)
	}

	missing := NewGroup(t, "nope", "NOPE12", "owner", base)
	missing.Version = 1
	if err := s.UpdateGroup(ctx, missing); err == nil {
		t.Error("UpdateGroup of unknown group should fail")
	}
}

func testCodes(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	g := NewGroup(t, "g1", "ABC123", "owner", base)
	g.SetInviteCode("INV12345", base.Add(time.Hour))
	if err := s.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}

	dup := NewGroup(t, "g2", "ABC123", "owner", base)
	if err := s.CreateGroup(ctx, dup); !errors.Is(err, models.ErrDuplicateCode) {
		t.Errorf("CreateGroup with taken code error = %v, want ErrDuplicateCode", err)
	}

	exists, err := s.GroupCodeExists(ctx, "ABC123")
	if err != nil || !exists {
		t.Errorf("GroupCodeExists(ABC123) = %v, %v; want true", exists, err)
	}
	exists, err = s.GroupCodeExists(ctx, "XYZ789")
	if err != nil || exists {
		t.Errorf("GroupCodeExists(XYZ789) = %v, %v; want false", exists, err)
	}

	exists, err = s.InviteCodeExists(ctx, "INV12345")
	if err != nil || !exists {
		t.Errorf("InviteCodeExists = %v, %v; want true", exists, err)
	}

	got, err := s.GetGroupByInviteCode(ctx, "inv12345")
	if err != nil {
		t.Fatalf("GetGroupByInviteCode failed: %v", err)
	}
	if got.ID != "g1" {
		t.Errorf("GetGroupByInviteCode returned %s, want g1", got.ID)
	}
	if _, err := s.GetGroupByInviteCode(ctx, "NOPE0000"); !errors.Is(err, models.ErrInvalidInvite) {
		t.Errorf("GetGroupByInviteCode(missing) error = %v, want ErrInvalidInvite", err)
	}

	// A second group without an invite must not collide on the empty code.
	other := NewGroup(t, "g3", "DEF456", "owner", base)
	if err := s.CreateGroup(ctx, other); err != nil {
		t.Fatalf("CreateGroup without invite failed: %v", err)
	}
	other.SetInviteCode("INV99999", base.Add(time.Hour))
	if err := s.UpdateGroup(ctx, other); err != nil {
		t.Fatalf("UpdateGroup with new invite failed: %v", err)
	}
	got, err = s.GetGroupByInviteCode(ctx, "INV99999")
	if err != nil || got.ID != "g3" {
		t.Errorf("GetGroupByInviteCode(INV99999) = %v, %v; want g3", got, err)
	}
}

func testListGroupsByMember(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	older := NewGroup(t, "g1", "AAA111", "alice", base)
	newer := NewGroup(t, "g2", "BBB222", "alice", base.Add(time.Hour))
	other := NewGroup(t, "g3", "CCC333", "bob", base)
	for _, g := range []*models.Group{older, newer, other} {
		if err := s.CreateGroup(ctx, g); err != nil {
			t.Fatalf("CreateGroup(%s) failed: %v", g.ID, err)
		}
	}

	groups, err := s.ListGroupsByMember(ctx, "alice")
	if err != nil {
		t.Fatalf("ListGroupsByMember failed: %v", err)
	}
	var ids []string
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	if diff := cmp.Diff([]string{"g2", "g1"}, ids); diff != "" {
		t.Errorf("ListGroupsByMember(alice) mismatch (-want +got):\n%s", diff)
	}

	// Inactive memberships are not listed.
	older.Members[1].IsActive = false
	if err := s.UpdateGroup(ctx, older); err != nil {
		t.Fatalf("UpdateGroup failed: %v", err)
	}
	groups, err = s.ListGroupsByMember(ctx, "member-g1")
	if err != nil {
		t.Fatalf("ListGroupsByMember failed: %v", err)
	}
	if len(groups) != 0 {
		t.Errorf("ListGroupsByMember(removed member) = %d groups, want 0", len(groups))
	}
}

func testUsers(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	u := models.NewUser("Alice@Example.com", "Alice", "hash")
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := s.CreateUser(ctx, models.NewUser("alice@example.com", "Other", "hash")); !errors.Is(err, models.ErrEmailExists) {
		t.Errorf("CreateUser duplicate email error = %v, want ErrEmailExists", err)
	}

	got, err := s.GetUserByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if diff := cmp.Diff(u, got, timeApprox, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("GetUserByEmail mismatch (-want +got):\n%s", diff)
	}

	if _, err := s.GetUserByID(ctx, "missing"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("GetUserByID(missing) error = %v, want ErrUserNotFound", err)
	}
	if _, err := s.GetUserByEmail(ctx, "nobody@example.com"); !errors.Is(err, models.ErrUserNotFound) {
		t.Errorf("GetUserByEmail(missing) error = %v, want ErrUserNotFound", err)
	}

	for _, gid := range []string{"g1", "g2", "g1"} {
		if err := s.AddGroupToUser(ctx, u.ID, gid); err != nil {
			t.Fatalf("AddGroupToUser(%s) failed: %v", gid, err)
		}
	}
	got, err = s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if diff := cmp.Diff([]string{"g1", "g2"}, got.Groups, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}

	if err := s.RemoveGroupFromUser(ctx, u.ID, "g1"); err != nil {
		t.Fatalf("RemoveGroupFromUser failed: %v", err)
	}
	if err := s.RemoveGroupFromUsers(ctx, "g2"); err != nil {
		t.Fatalf("RemoveGroupFromUsers failed: %v", err)
	}
	got, err = s.GetUserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(got.Groups) != 0 {
		t.Errorf("Groups = %v, want empty", got.Groups)
	}
}

func testFriends(t *testing.T, s storage.Store) {
	defer s.Close()
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash")
	bob := models.NewUser("bob@example.com", "Bob", "hash")
	carol := models.NewUser("carol@example.com", "Carol", "hash")
	for _, u := range []*models.User{alice, bob, carol} {
		if err := s.CreateUser(ctx, u); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	if err := s.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}
	if err := s.AddFriend(ctx, alice.ID, bob.ID); err != nil {
		t.Fatalf("repeated AddFriend failed: %v", err)
	}
	if err := s.AddFriend(ctx, carol.ID, alice.ID); err != nil {
		t.Fatalf("AddFriend failed: %v", err)
	}

	friends, err := s.ListFriends(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListFriends failed: %v", err)
	}
	var names []string
	for _, f := range friends {
		names = append(names, f.DisplayName)
	}
	if diff := cmp.Diff([]string{"Bob", "Carol"}, names); diff != "" {
		t.Errorf("ListFriends(alice) mismatch (-want +got):\n%s", diff)
	}

	got, err := s.GetUserByID(ctx, bob.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if !got.HasFriend(alice.ID) {
		t.Error("friendship should be mutual")
	}
	if got.HasFriend(carol.ID) {
		t.Error("bob and carol are not friends")
	}
}
