package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiterAllowsUpToMax(t *testing.T) {
	limiter := NewMemoryLimiter()
	cfg := Config{Window: time.Minute, Max: 3}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		decision := limiter.Check(ctx, "1.2.3.4", cfg)
		assert.True(t, decision.Allowed, "request %d should be allowed", i+1)
	}

	decision := limiter.Check(ctx, "1.2.3.4", cfg)
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter()
	cfg := Config{Window: time.Minute, Max: 1}
	ctx := context.Background()

	assert.True(t, limiter.Check(ctx, "1.1.1.1", cfg).Allowed)
	assert.False(t, limiter.Check(ctx, "1.1.1.1", cfg).Allowed)
	assert.True(t, limiter.Check(ctx, "2.2.2.2", cfg).Allowed)
}

func TestMemoryLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryLimiter()
	now := time.Now()
	limiter.now = func() time.Time { return now }

	cfg := Config{Window: time.Minute, Max: 1}
	ctx := context.Background()

	assert.True(t, limiter.Check(ctx, "1.2.3.4", cfg).Allowed)
	assert.False(t, limiter.Check(ctx, "1.2.3.4", cfg).Allowed)

	// Advance past the window; the bucket must start over.
	now = now.Add(time.Minute + time.Second)
	decision := limiter.Check(ctx, "1.2.3.4", cfg)
	assert.True(t, decision.Allowed)
}

func TestMemoryLimiterRemainingCountsDown(t *testing.T) {
	limiter := NewMemoryLimiter()
	cfg := Config{Window: time.Minute, Max: 5}
	ctx := context.Background()

	decision := limiter.Check(ctx, "9.9.9.9", cfg)
	assert.Equal(t, 4, decision.Remaining)
	decision = limiter.Check(ctx, "9.9.9.9", cfg)
	assert.Equal(t, 3, decision.Remaining)
}

func TestConfigForFallsBackToGeneral(t *testing.T) {
	general := ConfigFor(ClassGeneral)
	assert.Equal(t, 100, general.Max)
	assert.Equal(t, 15*time.Minute, general.Window)

	unknown := ConfigFor("nonsense")
	assert.Equal(t, general, unknown)

	ai := ConfigFor(ClassAI)
	assert.Equal(t, 20, ai.Max)

	upload := ConfigFor(ClassUpload)
	assert.Equal(t, 50, upload.Max)
	assert.Equal(t, time.Hour, upload.Window)

	auth := ConfigFor(ClassAuth)
	assert.Equal(t, 10, auth.Max)
}
