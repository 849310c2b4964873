package api

import (
	"sync"
	"time"
)

// RateLimiter is a token bucket: Capacity tokens, refilled at FillRate tokens per second.
type RateLimiter struct {
	Capacity      float64
	FillRate      float64
	CurrentTokens float64
	LastUpdate    time.Time
	mutx          sync.Mutex
}

// IPRateLimiter keeps one bucket per client IP.
type IPRateLimiter struct {
	capacity float64
	fillRate float64
	now      func() time.Time
	limiter  map[string]*RateLimiter
	mutx     sync.Mutex
}

func NewRateLimiter(capacity, fillrate float64, now time.Time) *RateLimiter {
	return &RateLimiter{
		Capacity:      capacity,
		FillRate:      fillrate,
		CurrentTokens: capacity,
		LastUpdate:    now,
	}
}

func NewIPRateLimiter(capacity, fillrate float64) *IPRateLimiter {
	return &IPRateLimiter{
		capacity: capacity,
		fillRate: fillrate,
		now:      time.Now,
		limiter:  make(map[string]*RateLimiter),
	}
}

func (r *RateLimiter) refill(now time.Time) {
	elapsed := now.Sub(r.LastUpdate).Seconds()
	if elapsed <= 0 {
		return
	}

	r.CurrentTokens += elapsed * r.FillRate
	if r.CurrentTokens > r.Capacity {
		r.CurrentTokens = r.Capacity
	}
	r.LastUpdate = now
}

func (r *RateLimiter) allow(now time.Time) bool {
	r.mutx.Lock()
	defer r.mutx.Unlock()

	r.refill(now)

	if r.CurrentTokens >= 1 {
		r.CurrentTokens--
		return true
	}
	return false
}

// Allow spends one token from ip's bucket, creating the bucket on first use.
func (i *IPRateLimiter) Allow(ip string) bool {
	now := i.now()

	i.mutx.Lock()
	limiter, exist := i.limiter[ip]
	if !exist {
		limiter = NewRateLimiter(i.capacity, i.fillRate, now)
		i.limiter[ip] = limiter
	}
	i.mutx.Unlock()

	return limiter.allow(now)
}
