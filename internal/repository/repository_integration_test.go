package repository

import (
	"context"
	"testing"

	"github.com/geonews/geonews/internal/testutil"
)

// newTestRepository connects to the test database, serializes access with
// an advisory lock, and resets the schema. Skips when TEST_DATABASE_URL
// is not set.
func newTestRepository(t *testing.T, ctx context.Context) *Repository {
	t.Helper()

	dbURL := testutil.RequireEnv(t, "TEST_DATABASE_URL")

	repo, err := New(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect test database: %v", err)
	}

	unlock, err := testutil.AcquireDBLock(ctx, repo.Pool())
	if err != nil {
		repo.Close()
		t.Fatalf("acquire db lock: %v", err)
	}

	t.Cleanup(func() {
		if err := unlock(); err != nil {
			t.Errorf("release db lock: %v", err)
		}
		repo.Close()
	})

	if err := testutil.ResetSchema(ctx, repo.Pool()); err != nil {
		t.Fatalf("reset schema: %v", err)
	}

	return repo
}
