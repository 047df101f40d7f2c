package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/geonews/geonews/internal/model"
)

const (
	// identityCachePrefix is the Redis key prefix for resolved identities.
	identityCachePrefix = "auth:identity:"
	// identityCacheTTL is the time-to-live for cached identities.
	// Kept well below the token lifetime so a deleted account falls out
	// of the hot path quickly.
	identityCacheTTL = 5 * time.Minute
)

// cachedIdentity is the identity payload stored in Redis.
// The password hash never enters the cache.
type cachedIdentity struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// GetIdentity retrieves a cached identity by cache key.
// Returns nil if not found (cache miss).
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (*model.User, error) {
	key := identityCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &model.User{
		ID:    cached.ID,
		Name:  cached.Name,
		Email: cached.Email,
	}, nil
}

// SetIdentity caches a resolved identity.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey string, user *model.User) error {
	key := identityCachePrefix + cacheKey

	cached := cachedIdentity{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}

	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return c.client.Set(ctx, key, data, identityCacheTTL).Err()
}

// DeleteIdentity removes a cached identity.
func (c *Cache) DeleteIdentity(ctx context.Context, cacheKey string) error {
	key := identityCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
