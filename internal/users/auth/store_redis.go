// Copyright (c) 2026 Harmonia. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/harmonia/internal/platform/constants"
)

// RedisAttemptLimiter implements [AttemptLimiter] with expiring counters.
type RedisAttemptLimiter struct {
	client *redis.Client
}

// NewAttemptLimiter creates a new Redis-backed [AttemptLimiter].
func NewAttemptLimiter(client *redis.Client) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{client: client}
}

func failureKey(email string) string {
	return constants.RedisPrefixLoginFailures + strings.ToLower(email)
}

func (limiter *RedisAttemptLimiter) Failures(context context.Context, email string) (int, error) {
	count, err := limiter.client.Get(context, failureKey(email)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis_login_failures_get_failed: %w", err)
	}
	return count, nil
}

/*
Fail increments the failure counter.

Description: INCR and EXPIRE NX run in one pipeline so the window starts at
the first failure and is not extended by later ones.
*/
func (limiter *RedisAttemptLimiter) Fail(context context.Context, email string, window time.Duration) (int, error) {
	key := failureKey(email)

	pipe := limiter.client.TxPipeline()
	incr := pipe.Incr(context, key)
	pipe.ExpireNX(context, key, window)
	if _, err := pipe.Exec(context); err != nil {
		return 0, fmt.Errorf("redis_login_failures_incr_failed: %w", err)
	}
	return int(incr.Val()), nil
}

func (limiter *RedisAttemptLimiter) Reset(context context.Context, email string) error {
	if err := limiter.client.Del(context, failureKey(email)).Err(); err != nil {
		return fmt.Errorf("redis_login_failures_reset_failed: %w", err)
	}
	return nil
}
