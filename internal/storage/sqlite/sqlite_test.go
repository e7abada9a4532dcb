package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/storagetest"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	return store
}

func TestSQLiteStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return newTestStore(t)
	})
}

func TestReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "test.db")
	ctx := context.Background()

	store, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	g := storagetest.NewGroup(t, "g1", "ABC123", "owner", time.Now().UTC())
	if err := store.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	store.Close()

	// Migrations must be a no-op on an up-to-date database.
	reopened, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen store: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if len(got.Expenses) != 1 || len(got.Debts) != 1 || len(got.Comments) != 1 {
		t.Errorf("group document not round-tripped: %d expenses, %d debts, %d comments",
			len(got.Expenses), len(got.Debts), len(got.Comments))
	}
	if got.Expenses[0].Category != models.CategoryFood {
		t.Errorf("Category = %q, want food", got.Expenses[0].Category)
	}
}

func TestAddFriendUnknownUser(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	alice := models.NewUser("alice@example.com", "Alice", "hash")
	if err := store.CreateUser(ctx, alice); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if err := store.AddFriend(ctx, alice.ID, "ghost"); err == nil {
		t.Error("AddFriend with unknown user should fail")
	}
}
