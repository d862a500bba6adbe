package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter is a fixed-window counter shared by every replica.
// allowed per window = floor(rps*windowSeconds) + burst.
type RedisLimiter struct {
	client  *redis.Client
	window  int
	allowed int64
	now     func() time.Time
}

func NewRedisLimiter(client *redis.Client, rps float64, burst int, window time.Duration) *RedisLimiter {
	ws := int(window.Seconds())
	if ws <= 0 {
		ws = 1
	}
	return &RedisLimiter{
		client:  client,
		window:  ws,
		allowed: int64(rps*float64(ws)) + int64(burst),
		now:     time.Now,
	}
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().Unix() / int64(r.window)
	redisKey := fmt.Sprintf("rl:%s:%d", key, bucket)
	cnt, err := r.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, err
	}
	if cnt == 1 {
		_ = r.client.Expire(ctx, redisKey, time.Duration(r.window+1)*time.Second).Err()
	}
	return cnt <= r.allowed, nil
}

func (r *RedisLimiter) Name() string              { return "redis" }
func (r *RedisLimiter) RetryAfter() time.Duration { return time.Duration(r.window) * time.Second }
