package dataflows

import (
	"testing"
	"time"
)

func TestRateLimiterEnforcesMinInterval(t *testing.T) {
	interval := 20 * time.Millisecond
	rl := NewRateLimiter(interval)

	var grants []time.Time
	for i := 0; i < 4; i++ {
		rl.Acquire()
		grants = append(grants, time.Now())
	}

	for i := 1; i < len(grants); i++ {
		gap := grants[i].Sub(grants[i-1])
		if gap < interval {
			t.Fatalf("grants %d and %d only %v apart, want >= %v", i-1, i, gap, interval)
		}
	}
}

func TestRateLimiterFirstAcquireDoesNotBlock(t *testing.T) {
	rl := NewRateLimiter(time.Second)

	start := time.Now()
	rl.Acquire()
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first acquire blocked for %v", elapsed)
	}
}
