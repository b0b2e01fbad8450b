package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiterWindow(t *testing.T) {
	clock := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryConfig{Now: func() time.Time { return clock }})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d, err := limiter.Allow(ctx, "k", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, d.Allowed)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d, err := limiter.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Zero(t, d.Remaining)

	// A fresh window resets the count.
	clock = clock.Add(61 * time.Second)
	d, err = limiter.Allow(ctx, "k", 3, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 2, d.Remaining)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryConfig{})
	ctx := context.Background()

	d, err := limiter.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)

	d, err = limiter.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	d, err = limiter.Allow(ctx, "b", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed, "exhausting one key leaves others untouched")
}

func TestMemoryLimiterZeroLimitAllows(t *testing.T) {
	limiter := NewMemoryLimiter(MemoryConfig{})
	d, err := limiter.Allow(context.Background(), "k", 0, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestMemoryLimiterEvictsExpiredAtCapacity(t *testing.T) {
	clock := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter(MemoryConfig{Now: func() time.Time { return clock }, MaxKeys: 2})
	ctx := context.Background()

	_, err := limiter.Allow(ctx, "a", 1, time.Minute)
	require.NoError(t, err)
	_, err = limiter.Allow(ctx, "b", 1, time.Minute)
	require.NoError(t, err)

	// Full and nothing expired: a third key is refused.
	_, err = limiter.Allow(ctx, "c", 1, time.Minute)
	assert.Error(t, err)

	// Once the old windows lapse, capacity frees up.
	clock = clock.Add(2 * time.Minute)
	d, err := limiter.Allow(ctx, "c", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}
