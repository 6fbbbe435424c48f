package dataflows

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum wall-clock interval between grants. Acquire
// blocks the caller until the interval since the previous grant has elapsed;
// requests are never dropped or queued beyond FIFO-by-blocking.
type RateLimiter struct {
	mu          sync.Mutex
	minInterval time.Duration
	lastGrant   time.Time
}

func NewRateLimiter(minInterval time.Duration) *RateLimiter {
	return &RateLimiter{minInterval: minInterval}
}

// Acquire returns once at least minInterval has passed since the previous
// grant, recording the new grant time. The lock is held while waiting so
// concurrent callers serialize in blocking order.
func (rl *RateLimiter) Acquire() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.lastGrant.IsZero() {
		if wait := rl.minInterval - time.Since(rl.lastGrant); wait > 0 {
			time.Sleep(wait)
		}
	}
	rl.lastGrant = time.Now()
}
