package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/internal/storage/storagetest"
)

// TestStore runs against a live server; set MONGO_TEST_URI to enable it.
func TestStore(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	n := 0
	storagetest.Run(t, func(t *testing.T) storage.Store {
		n++
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		database := fmt.Sprintf("splitledger_test_%d_%d", time.Now().UnixNano(), n)
		s, err := Connect(ctx, uri, database)
		if err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
		t.Cleanup(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			client, err := Connect(ctx, uri, database)
			if err != nil {
				return
			}
			_ = client.db.Drop(ctx)
			_ = client.Close()
		})
		return s
	})
}

func TestMigrationIndexes(t *testing.T) {
	idx := migrationIndexes()
	if len(idx[colGroups]) != 3 {
		t.Errorf("group indexes = %d, want 3", len(idx[colGroups]))
	}
	if len(idx[colUsers]) != 2 {
		t.Errorf("user indexes = %d, want 2", len(idx[colUsers]))
	}
}
