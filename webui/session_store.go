package webui

import (
	"context"
	"errors"
	"sync"
	"time"

	"resumidor/core"
)

var (
	// ErrSessionNotFound means the cookie names no stored summary.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired means the summary outlived the session TTL.
	ErrSessionExpired = errors.New("session expired")
)

// SessionStore holds one summary per browser between the upload and the
// /resumo page. A new upload replaces the previous summary of the same
// browser. It is safe for concurrent use.
type SessionStore struct {
	mu      sync.Mutex
	byID    map[string]core.Session
	ttl     time.Duration
	now     func() time.Time
	onSweep func(removed, remaining int)
}

// NewSessionStore creates a store whose summaries expire after ttl.
// A non-positive ttl uses core.DefaultSessionTTL.
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = core.DefaultSessionTTL
	}
	return &SessionStore{
		byID: make(map[string]core.Session),
		ttl:  ttl,
		now:  time.Now,
	}
}

// TTL returns the session lifetime, which is also the cookie Max-Age.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Put stores summary under a fresh session ID and drops previousID, the
// session the browser presented with the upload. previousID may be empty.
func (s *SessionStore) Put(previousID, summary string) core.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := core.NewSessionAt(summary, s.ttl, s.now())
	if previousID != "" {
		delete(s.byID, previousID)
	}
	s.byID[session.ID] = session
	return session
}

// Summary returns the summary stored under id. An expired entry is removed
// on the way out.
func (s *SessionStore) Summary(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.byID[id]
	switch {
	case !ok:
		return "", ErrSessionNotFound
	case session.IsExpiredAt(s.now()):
		delete(s.byID, id)
		return "", ErrSessionExpired
	}
	return session.Summary, nil
}

// Forget drops id if present.
func (s *SessionStore) Forget(id string) {
	s.mu.Lock()
	delete(s.byID, id)
	s.mu.Unlock()
}

// Sweep removes every expired summary and reports how many went.
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	now := s.now()
	removed := 0
	for id, session := range s.byID {
		if session.IsExpiredAt(now) {
			delete(s.byID, id)
			removed++
		}
	}
	remaining := len(s.byID)
	onSweep := s.onSweep
	s.mu.Unlock()

	if onSweep != nil && removed > 0 {
		onSweep(removed, remaining)
	}
	return removed
}

// StartCleanupTicker sweeps every interval until ctx is done.
func (s *SessionStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep()
			}
		}
	}()
}

// Count returns the number of stored summaries, expired ones included
// until the next sweep.
func (s *SessionStore) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
