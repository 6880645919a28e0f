package ratelimit

import (
	"testing"
	"time"
)

func TestSlidingWindow_AdmitsUpToLimitPerKey(t *testing.T) {
	sw := NewSlidingWindow(time.Minute, 3)

	for i := 0; i < 3; i++ {
		if !sw.Allow("1.1.1.1") {
			t.Fatalf("attempt %d refused, want admitted", i+1)
		}
	}
	if sw.Allow("1.1.1.1") {
		t.Fatal("fourth attempt admitted, want refused")
	}

	// other keys are independent
	if !sw.Allow("2.2.2.2") {
		t.Fatal("fresh key refused")
	}
}

func TestSlidingWindow_ExpiredAttemptsFreeTheWindow(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sw := NewSlidingWindow(time.Minute, 2)
	sw.now = func() time.Time { return current }

	if !sw.Allow("1.1.1.1") || !sw.Allow("1.1.1.1") {
		t.Fatal("initial attempts refused")
	}
	if sw.Allow("1.1.1.1") {
		t.Fatal("over-limit attempt admitted")
	}

	current = current.Add(61 * time.Second)
	if !sw.Allow("1.1.1.1") {
		t.Fatal("attempt after window expiry refused")
	}
}

func TestSlidingWindow_SweepsIdleKeys(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sw := NewSlidingWindow(time.Minute, 3)
	sw.now = func() time.Time { return current }

	for _, key := range []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"} {
		if !sw.Allow(key) {
			t.Fatalf("attempt for %s refused", key)
		}
	}

	// after the window passes, one fresh attempt reclaims the idle entries
	current = current.Add(2 * time.Minute)
	if !sw.Allow("4.4.4.4") {
		t.Fatal("fresh key refused")
	}

	sw.mu.Lock()
	keys := len(sw.attempts)
	sw.mu.Unlock()
	if keys != 1 {
		t.Fatalf("tracked keys = %d, want only the active one", keys)
	}
}

func TestSlidingWindow_RefusedAttemptsDoNotExtendLockout(t *testing.T) {
	current := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sw := NewSlidingWindow(time.Minute, 1)
	sw.now = func() time.Time { return current }

	if !sw.Allow("1.1.1.1") {
		t.Fatal("first attempt refused")
	}

	// hammering while locked out must not reset the clock
	for i := 0; i < 5; i++ {
		current = current.Add(10 * time.Second)
		if sw.Allow("1.1.1.1") {
			t.Fatal("locked-out attempt admitted")
		}
	}

	current = current.Add(11 * time.Second)
	if !sw.Allow("1.1.1.1") {
		t.Fatal("attempt after original window refused")
	}
}
