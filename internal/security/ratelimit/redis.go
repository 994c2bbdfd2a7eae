package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "studyflow:rate_limit"

// RedisLimiter shares counters across instances with a fixed-window INCR.
// The first increment in a window arms the TTL; subsequent increments reuse it.
type RedisLimiter struct {
	client *redis.Client
}

func NewRedisLimiter(client *redis.Client) *RedisLimiter {
	return &RedisLimiter{client: client}
}

func (l *RedisLimiter) Check(ctx context.Context, key string, cfg Config) Decision {
	redisKey := fmt.Sprintf("%s:%s", redisKeyPrefix, key)

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		// Redis being down should not take the API down with it.
		return Decision{Allowed: true, Remaining: cfg.Max, ResetTime: time.Now().Add(cfg.Window)}
	}

	if count == 1 {
		l.client.PExpire(ctx, redisKey, cfg.Window)
	}

	ttl, err := l.client.PTTL(ctx, redisKey).Result()
	if err != nil || ttl < 0 {
		ttl = cfg.Window
	}

	remaining := cfg.Max - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   int(count) <= cfg.Max,
		Remaining: remaining,
		ResetTime: time.Now().Add(ttl),
	}
}
