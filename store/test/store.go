package test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/hrygo/cookbot/internal/profile"
	"github.com/hrygo/cookbot/store"
	"github.com/hrygo/cookbot/store/db/sqlite"
)

// NewTestingStore creates a throwaway sqlite-backed store for tests.
func NewTestingStore(ctx context.Context, t *testing.T) *store.Store {
	p := &profile.Profile{
		Mode:   "dev",
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "cookbot_test.db"),
	}
	driver, err := sqlite.NewDB(p)
	if err != nil {
		t.Fatalf("failed to create sqlite driver: %v", err)
	}
	ts := store.New(driver, p)
	if err := ts.Migrate(ctx); err != nil {
		t.Fatalf("failed to migrate testing store: %v", err)
	}
	t.Cleanup(func() {
		_ = ts.Close()
	})
	return ts
}
