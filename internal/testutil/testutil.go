// Package testutil provides shared helpers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/geonews/geonews/internal/model"
)

// RequireEnv returns an environment variable or skips the test if missing.
func RequireEnv(t testing.TB, key string) string {
	t.Helper()
	value := os.Getenv(key)
	if value == "" {
		t.Skipf("%s not set", key)
	}
	return value
}

const advisoryLockID int64 = 420421

// AcquireDBLock grabs a global advisory lock to serialize DB tests.
func AcquireDBLock(ctx context.Context, pool *pgxpool.Pool) (func() error, error) {
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	if _, err := conn.Exec(ctx, "SELECT pg_advisory_lock($1)", advisoryLockID); err != nil {
		conn.Release()
		return nil, fmt.Errorf("acquire advisory lock: %w", err)
	}

	unlock := func() error {
		defer conn.Release()
		if _, err := conn.Exec(ctx, "SELECT pg_advisory_unlock($1)", advisoryLockID); err != nil {
			return fmt.Errorf("release advisory lock: %w", err)
		}
		return nil
	}

	return unlock, nil
}

// applyMigration runs the down then up migration with the given base name.
func applyMigration(ctx context.Context, pool *pgxpool.Pool, base string) error {
	root, err := ProjectRoot()
	if err != nil {
		return err
	}

	downSQL, err := os.ReadFile(filepath.Join(root, "migrations", base+".down.sql"))
	if err != nil {
		return fmt.Errorf("read down migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(downSQL)); err != nil {
		return fmt.Errorf("apply down migration: %w", err)
	}

	upSQL, err := os.ReadFile(filepath.Join(root, "migrations", base+".up.sql"))
	if err != nil {
		return fmt.Errorf("read up migration: %w", err)
	}
	if _, err := pool.Exec(ctx, string(upSQL)); err != nil {
		return fmt.Errorf("apply up migration: %w", err)
	}

	return nil
}

// ResetSchema drops and recreates the users and news schemas for tests.
// News goes down first because its source values reference user names.
func ResetSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if err := applyMigration(ctx, pool, "000002_news"); err != nil {
		return err
	}
	return applyMigration(ctx, pool, "000001_users")
}

// FlushRedis clears the current Redis database.
func FlushRedis(ctx context.Context, client *redis.Client) error {
	return client.FlushDB(ctx).Err()
}

// ProjectRoot resolves the repository root from this file's location.
func ProjectRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", fmt.Errorf("failed to resolve testutil path")
	}
	root := filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
	return root, nil
}

// ============================================================================
// Test Data Factories
// ============================================================================

// NewTestUser builds a user fixture. The hash is a placeholder, not a
// real argon2 hash; tests that verify passwords hash their own.
func NewTestUser(t testing.TB, name string) *model.User {
	t.Helper()
	return &model.User{
		Name:           name,
		Email:          name + "@example.com",
		HashedPassword: "$argon2id$v=19$m=65536,t=3,p=4$dGVzdHNhbHQ$dGVzdGhhc2g",
	}
}

// NewTestNewsItem builds a news item fixture owned by source.
func NewTestNewsItem(t testing.TB, source, url string) *model.NewsItem {
	t.Helper()
	coordinates := "POINT (1 2)"
	description := "test description"
	return &model.NewsItem{
		NewsSource:  source,
		Title:       "test title",
		Description: &description,
		Coordinates: &coordinates,
		Type:        model.NewsTypeHazard,
		Date:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		URL:         url,
	}
}
