// Package ratelimit implements a fixed-window request limiter backed by
// Redis, shared across API instances. Exceeding the window yields 429s
// until the window rolls over.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts requests per key in fixed one-window buckets.
type Limiter struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// New creates a limiter allowing limit requests per window per key.
func New(client *redis.Client, limit int, window time.Duration) *Limiter {
	return &Limiter{client: client, limit: limit, window: window}
}

// Allow reports whether the request identified by key fits in the current
// window. On Redis errors it fails open: an unavailable limiter should not
// take the API down with it.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := time.Now().Unix() / int64(l.window.Seconds())
	redisKey := fmt.Sprintf("ratelimit:%s:%d", key, bucket)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, err
	}
	return incr.Val() <= int64(l.limit), nil
}
