// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package csrf

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/harmonia/internal/platform/constants"
)

// RedisStore implements [Store] using Redis keys with a TTL.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis-backed token store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save records the token until ttl elapses.
func (store *RedisStore) Save(ctx context.Context, token string, ttl time.Duration) error {
	if err := store.client.Set(ctx, constants.RedisPrefixCSRFToken+token, 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis_csrf_token_set_failed: %w", err)
	}
	return nil
}

// Exists reports whether the token has been issued and not yet expired.
func (store *RedisStore) Exists(ctx context.Context, token string) (bool, error) {
	count, err := store.client.Exists(ctx, constants.RedisPrefixCSRFToken+token).Result()
	if err != nil {
		return false, fmt.Errorf("redis_csrf_token_exists_failed: %w", err)
	}
	return count > 0, nil
}
