package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// sweepProbability bounds memory growth without a dedicated timer: each check
// has a small fixed chance of deleting every expired bucket.
const sweepProbability = 0.01

type bucket struct {
	count     int
	resetTime time.Time
}

// MemoryLimiter keeps one bucket per key in process memory. Buckets are keyed
// by the bare client IP, so route classes sharing a window/max share a bucket
// for the same client; this mirrors the documented behavior and is flagged
// rather than fixed.
type MemoryLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

func (l *MemoryLimiter) Check(ctx context.Context, key string, cfg Config) Decision {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()

	b, ok := l.buckets[key]
	if !ok || !now.Before(b.resetTime) {
		b = &bucket{count: 0, resetTime: now.Add(cfg.Window)}
		l.buckets[key] = b
	}

	b.count++

	if rand.Float64() < sweepProbability {
		l.sweep(now)
	}

	remaining := cfg.Max - b.count
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   b.count <= cfg.Max,
		Remaining: remaining,
		ResetTime: b.resetTime,
	}
}

// sweep deletes expired buckets. Caller must hold the lock.
func (l *MemoryLimiter) sweep(now time.Time) {
	for key, b := range l.buckets {
		if !now.Before(b.resetTime) {
			delete(l.buckets, key)
		}
	}
}
