package ratelimit

import (
	"sync"
	"time"
)

// Limiter answers whether one more attempt from key is allowed right now.
type Limiter interface {
	Allow(key string) bool
}

// SlidingWindow tracks attempt timestamps per key and admits at most
// maxAttempts inside the trailing window. Keys are typically client IPs.
type SlidingWindow struct {
	window      time.Duration
	maxAttempts int
	now         func() time.Time

	mu        sync.Mutex
	attempts  map[string][]time.Time
	lastSweep time.Time
}

func NewSlidingWindow(window time.Duration, maxAttempts int) *SlidingWindow {
	return &SlidingWindow{
		window:      window,
		maxAttempts: maxAttempts,
		now:         time.Now,
		attempts:    make(map[string][]time.Time),
	}
}

// Allow records the attempt when admitted. Refused attempts are not
// recorded, so a locked-out caller does not extend its own lockout.
func (sw *SlidingWindow) Allow(key string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	windowStart := now.Add(-sw.window)

	// at most one full sweep per window keeps idle keys from accumulating
	if now.Sub(sw.lastSweep) >= sw.window {
		for k, times := range sw.attempts {
			if len(times) == 0 || !times[len(times)-1].After(windowStart) {
				delete(sw.attempts, k)
			}
		}
		sw.lastSweep = now
	}

	valid := sw.attempts[key][:0]
	for _, at := range sw.attempts[key] {
		if at.After(windowStart) {
			valid = append(valid, at)
		}
	}

	if len(valid) >= sw.maxAttempts {
		sw.attempts[key] = valid
		return false
	}

	sw.attempts[key] = append(valid, now)
	return true
}

var _ Limiter = (*SlidingWindow)(nil)
