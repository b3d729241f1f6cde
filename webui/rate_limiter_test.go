package webui

import (
	"testing"
	"time"
)

// fakeClock lets tests move the limiter's time forward.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func newTestLimiter(limit int) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	limiter := NewRateLimiter(limit, time.Minute)
	limiter.now = clock.Now
	return limiter, clock
}

func TestRateLimiter_BlocksAfterLimit(t *testing.T) {
	limiter, clock := newTestLimiter(3)

	for i := 0; i < 3; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatalf("upload %d should be allowed", i+1)
		}
	}

	clock.now = clock.now.Add(20 * time.Second)
	ok, wait := limiter.Allow("10.0.0.1")
	if ok {
		t.Fatal("fourth upload in the window should be blocked")
	}
	if wait != 40*time.Second {
		t.Errorf("retry after = %v, want 40s", wait)
	}

	if ok, _ := limiter.Allow("10.0.0.2"); !ok {
		t.Error("other clients should not be affected")
	}
}

func TestRateLimiter_WindowReset(t *testing.T) {
	limiter, clock := newTestLimiter(1)

	limiter.Allow("10.0.0.1")
	if ok, _ := limiter.Allow("10.0.0.1"); ok {
		t.Fatal("second upload should be blocked")
	}

	clock.now = clock.now.Add(time.Minute)
	if ok, _ := limiter.Allow("10.0.0.1"); !ok {
		t.Error("upload should be allowed once the window ends")
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	limiter := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if ok, _ := limiter.Allow("10.0.0.1"); !ok {
			t.Fatal("a zero limit should never block")
		}
	}
	if limiter.Count() != 0 {
		t.Errorf("disabled limiter tracked %d clients", limiter.Count())
	}

	var nilLimiter *RateLimiter
	if ok, _ := nilLimiter.Allow("x"); !ok {
		t.Error("nil limiter should allow")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(5)

	limiter.Allow("10.0.0.1")
	clock.now = clock.now.Add(30 * time.Second)
	limiter.Allow("10.0.0.2")

	clock.now = clock.now.Add(45 * time.Second)
	if removed := limiter.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() = %d, want 1", removed)
	}
	if limiter.Count() != 1 {
		t.Errorf("Count() = %d, want 1", limiter.Count())
	}
}
