package metrics

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the in-memory Collector. It keeps aggregate counters for the
// whole process lifetime and a fixed-size history of recent records.
//
// Usage:
//
//	store := NewStore(DefaultStoreConfig(), time.Now())
//	store.Record(rec)
//	stats := store.Stats()
type Store struct {
	mu sync.RWMutex

	// Circular history of recent records
	history []UploadRecord
	head    int
	size    int

	total      int64
	succeeded  int64
	rejected   int64
	failed     int64
	byFallback map[string]int64
	duration   time.Duration
	pages      int64

	startTime time.Time
	version   string
	now       func() time.Time
}

// StoreConfig configures the Store.
type StoreConfig struct {
	// HistoryCapacity is the max number of records kept for Recent
	HistoryCapacity int
	// Version is reported by Status
	Version string
}

// DefaultStoreConfig returns a default configuration.
func DefaultStoreConfig() StoreConfig {
	return StoreConfig{
		HistoryCapacity: 100,
		Version:         "dev",
	}
}

// NewStore creates a Store. The startTime is used to calculate uptime.
func NewStore(config StoreConfig, startTime time.Time) *Store {
	capacity := config.HistoryCapacity
	if capacity < 1 {
		capacity = DefaultStoreConfig().HistoryCapacity
	}
	return &Store{
		history:    make([]UploadRecord, capacity),
		byFallback: make(map[string]int64),
		startTime:  startTime,
		version:    config.Version,
		now:        time.Now,
	}
}

// Record adds rec, filling in ID and Time when they are empty.
func (s *Store) Record(rec UploadRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Time.IsZero() {
		rec.Time = s.now()
	}

	s.history[s.head] = rec
	s.head = (s.head + 1) % len(s.history)
	if s.size < len(s.history) {
		s.size++
	}

	s.total++
	switch rec.Status {
	case StatusSuccess:
		s.succeeded++
		s.duration += rec.Duration
		s.pages += int64(rec.Pages)
		fallback := rec.Fallback
		if fallback == "" {
			fallback = FallbackNone
		}
		s.byFallback[fallback]++
	case StatusRejected:
		s.rejected++
	default:
		s.failed++
	}
}

// Stats returns the aggregate over all recorded uploads.
func (s *Store) Stats() UploadStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := UploadStats{
		TotalUploads: s.total,
		Succeeded:    s.succeeded,
		Rejected:     s.rejected,
		Failed:       s.failed,
		ByFallback:   make(map[string]int64, len(s.byFallback)),
	}
	for k, v := range s.byFallback {
		stats.ByFallback[k] = v
	}
	if s.succeeded > 0 {
		stats.AvgDuration = s.duration / time.Duration(s.succeeded)
		stats.AvgPages = float64(s.pages) / float64(s.succeeded)
	}
	return stats
}

// Recent returns up to limit of the latest records, oldest first.
func (s *Store) Recent(limit int) []UploadRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || s.size == 0 {
		return []UploadRecord{}
	}
	if limit > s.size {
		limit = s.size
	}

	capacity := len(s.history)
	result := make([]UploadRecord, limit)
	for i := 0; i < limit; i++ {
		result[i] = s.history[(s.head-limit+i+capacity)%capacity]
	}
	return result
}

// Status reports uptime and health.
func (s *Store) Status(stopping bool) SystemStatus {
	health := HealthRunning
	if stopping {
		health = HealthStopping
	}
	now := s.now()
	return SystemStatus{
		Health:    health,
		Version:   s.version,
		Uptime:    now.Sub(s.startTime),
		LastCheck: now,
	}
}

var _ Collector = (*Store)(nil)
