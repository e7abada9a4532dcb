package memory

import (
	"context"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/storagetest"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Store {
		return New()
	})
}

func TestStoreReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	g := storagetest.NewGroup(t, "g1", "ABC123", "owner", time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	if err := s.CreateGroup(ctx, g); err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	g.Title = "mutated after create"

	got, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	got.Members[0].Name = "mutated after get"

	again, err := s.GetGroup(ctx, "g1")
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if again.Title == "mutated after create" || again.Members[0].Name == "mutated after get" {
		t.Error("store shares group state with callers")
	}
}
