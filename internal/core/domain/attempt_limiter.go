package domain

import (
	"context"
	"time"
)

// AttemptLimiter counts credential attempts per key within a fixed window.
type AttemptLimiter interface {
	// Allow records an attempt for key. When the limit is exceeded it returns
	// false and the time until the window resets.
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}
