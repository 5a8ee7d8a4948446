package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginKeyPrefix = "reviewly:login:"

// LoginLimiter counts login attempts per key in a fixed window shared by every API instance.
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, max: int64(maxAttempts), window: window}
}

// Allow records one attempt and reports whether it is still within the limit.
// The window starts with the first attempt; later attempts do not extend it.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := loginKeyPrefix + key
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= l.max, nil
}
