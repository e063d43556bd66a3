package api

import (
	"context"
	"sync"
	"time"
)

// RateLimiter is a token bucket: up to burst requests at once, then one more
// every interval.
type RateLimiter struct {
	mu       sync.Mutex
	tokens   int
	burst    int
	interval time.Duration
	last     time.Time
}

func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{tokens: burst, burst: burst, interval: interval, last: time.Now()}
}

// Wait blocks until a token is available or ctx is done.
func (rl *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait := rl.reserve()
		if wait <= 0 {
			return nil
		}
		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// reserve takes a token and returns 0, or returns how long until the next one.
func (rl *RateLimiter) reserve() time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.interval <= 0 {
		return 0
	}
	now := time.Now()
	if n := int(now.Sub(rl.last) / rl.interval); n > 0 {
		rl.tokens = min(rl.burst, rl.tokens+n)
		rl.last = rl.last.Add(time.Duration(n) * rl.interval)
	}
	if rl.tokens > 0 {
		rl.tokens--
		return 0
	}
	return rl.interval - now.Sub(rl.last)
}

// WithRateLimit makes every request wait for the limiter first.
func WithRateLimit(burst int, interval time.Duration) ClientOption {
	return func(c *Client) {
		c.limiter = NewRateLimiter(burst, interval)
	}
}
