package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "attempts:"

// RedisAttemptLimiter implements domain.AttemptLimiter with a fixed-window
// counter per key. The window starts at the first attempt.
type RedisAttemptLimiter struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
}

// NewAttemptLimiter creates a limiter allowing limit attempts per window.
func NewAttemptLimiter(rdb redis.Cmdable, limit int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{rdb: rdb, limit: int64(limit), window: window}
}

// Allow records an attempt for key.
func (l *RedisAttemptLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := attemptKeyPrefix + key

	var count *redis.IntCmd
	var ttl *redis.DurationCmd
	_, err := l.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		count = p.Incr(ctx, k)
		p.ExpireNX(ctx, k, l.window)
		ttl = p.TTL(ctx, k)
		return nil
	})
	if err != nil {
		return false, 0, err
	}

	if count.Val() > l.limit {
		retryAfter := ttl.Val()
		if retryAfter <= 0 {
			retryAfter = l.window
		}
		return false, retryAfter, nil
	}
	return true, 0, nil
}
