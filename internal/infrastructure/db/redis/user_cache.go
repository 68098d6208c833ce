package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fittrack/exercise-tracker/internal/core/ports"
)

const (
	userListKey = "users:all"
	userListTTL = 30 * time.Second
)

// UserListCache caches the full user listing as a JSON blob under a single
// key with a short TTL. Creation invalidates the key, so staleness is bounded
// by the TTL only for writers outside this process.
type UserListCache struct {
	client *redis.Client
}

// NewUserListCache wraps the given Redis client.
func NewUserListCache(client *redis.Client) *UserListCache {
	return &UserListCache{client: client}
}

// GetAll returns the cached listing, reporting a miss as (nil, false, nil).
func (c *UserListCache) GetAll(ctx context.Context) ([]ports.UserSummary, bool, error) {
	raw, err := c.client.Get(ctx, userListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("user list cache get: %w", err)
	}

	var users []ports.UserSummary
	if err := json.Unmarshal(raw, &users); err != nil {
		// corrupt entry: drop it and treat as a miss
		_ = c.client.Del(ctx, userListKey).Err()
		return nil, false, nil
	}
	return users, true, nil
}

// SetAll stores the listing with the cache TTL.
func (c *UserListCache) SetAll(ctx context.Context, users []ports.UserSummary) error {
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("user list cache marshal: %w", err)
	}
	return c.client.Set(ctx, userListKey, raw, userListTTL).Err()
}

// Invalidate drops the cached listing.
func (c *UserListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, userListKey).Err()
}
