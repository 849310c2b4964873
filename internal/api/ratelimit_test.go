package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiter(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewIPRateLimiter(2, 1)
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"), "bucket should be empty")

	assert.True(t, limiter.Allow("10.0.0.2"), "buckets are per IP")

	now = now.Add(500 * time.Millisecond)
	assert.False(t, limiter.Allow("10.0.0.1"), "half a token is not enough")

	now = now.Add(500 * time.Millisecond)
	assert.True(t, limiter.Allow("10.0.0.1"))
	assert.False(t, limiter.Allow("10.0.0.1"))
}

func TestRateLimiter_RefillCapsAtCapacity(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	bucket := NewRateLimiter(3, 10, start)

	for i := 0; i < 3; i++ {
		assert.True(t, bucket.allow(start))
	}
	assert.False(t, bucket.allow(start))

	later := start.Add(time.Hour)
	assert.True(t, bucket.allow(later))
	assert.InDelta(t, 2.0, bucket.CurrentTokens, 1e-9)
}

func TestRateLimiter_ClockGoingBackwards(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	bucket := NewRateLimiter(1, 1, start)

	assert.True(t, bucket.allow(start))
	assert.False(t, bucket.allow(start.Add(-time.Minute)))
}
