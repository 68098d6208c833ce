// Package redis holds the Redis connection helper and the user-list cache.
// The cache is optional; the service runs fine without a Redis deployment.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 5 * time.Second

// Config selects the Redis instance backing the user-list cache.
type Config struct {
	Addr    string
	DB      int
	Timeout time.Duration
}

// Connect builds a client and pings it once, so a misconfigured address
// fails at startup rather than on the first cache read. A zero Timeout
// falls back to defaultTimeout.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
