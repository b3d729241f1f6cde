package webui

import (
	"context"
	"sync"
	"time"
)

// uploadWindow counts uploads from one client in the current window.
type uploadWindow struct {
	count   int
	resetAt time.Time
}

// RateLimiter caps how many PDFs one client may submit per window.
// Summarizing is CPU-bound, so a single client looping on /resumir would
// otherwise starve everyone else.
//
// A limit of 0 disables the limiter.
type RateLimiter struct {
	mu      sync.Mutex
	clients map[string]uploadWindow
	limit   int
	window  time.Duration
	now     func() time.Time
}

// NewRateLimiter allows limit uploads per client in each window.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{
		clients: make(map[string]uploadWindow),
		limit:   limit,
		window:  window,
		now:     time.Now,
	}
}

// Allow records one upload attempt from client. When the client is over the
// limit it returns false and the time until the window resets.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	if r == nil || r.limit <= 0 {
		return true, 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	w, ok := r.clients[client]
	if !ok || !now.Before(w.resetAt) {
		w = uploadWindow{resetAt: now.Add(r.window)}
	}
	if w.count >= r.limit {
		r.clients[client] = w
		return false, w.resetAt.Sub(now)
	}
	w.count++
	r.clients[client] = w
	return true, 0
}

// Cleanup drops clients whose window has ended and returns how many.
func (r *RateLimiter) Cleanup() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	removed := 0
	for client, w := range r.clients {
		if !now.Before(w.resetAt) {
			delete(r.clients, client)
			removed++
		}
	}
	return removed
}

// StartCleanupTicker runs Cleanup every interval until ctx is cancelled.
func (r *RateLimiter) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				r.Cleanup()
			}
		}
	}()
}

// Count returns the number of tracked clients.
func (r *RateLimiter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}
