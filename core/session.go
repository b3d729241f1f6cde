package core

import (
	"time"

	"github.com/google/uuid"
)

// Session is a stored summary waiting to be shown on the /resumo page.
// The ID travels in the session cookie; the summary stays server-side.
type Session struct {
	ID        string
	Summary   string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// NewSession creates a Session with a random UUID that expires after ttl.
func NewSession(summary string, ttl time.Duration) Session {
	return NewSessionAt(summary, ttl, time.Now())
}

// NewSessionAt is NewSession with an explicit creation time.
func NewSessionAt(summary string, ttl time.Duration, now time.Time) Session {
	return Session{
		ID:        uuid.NewString(),
		Summary:   summary,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has passed its expiration time.
func (s Session) IsExpired() bool {
	return s.IsExpiredAt(time.Now())
}

// IsExpiredAt reports expiry relative to now, for sweeps that share one clock reading.
func (s Session) IsExpiredAt(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// TimeRemaining returns the duration until the session expires.
// Returns a negative duration if already expired.
func (s Session) TimeRemaining() time.Duration {
	return time.Until(s.ExpiresAt)
}

// ValidSessionID reports whether id looks like an ID produced by NewSession.
// Cookies carrying anything else are ignored without a store lookup.
func ValidSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil && len(id) == 36
}
