package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestNewStore(t *testing.T) {
	t.Run("default config", func(t *testing.T) {
		store := NewStore(DefaultStoreConfig(), time.Now())
		if len(store.history) != 100 {
			t.Errorf("capacity = %d, want 100", len(store.history))
		}
		if store.version != "dev" {
			t.Errorf("version = %q, want dev", store.version)
		}
	})

	t.Run("zero capacity falls back to default", func(t *testing.T) {
		store := NewStore(StoreConfig{}, time.Now())
		if len(store.history) != 100 {
			t.Errorf("capacity = %d, want 100", len(store.history))
		}
	})
}

func TestStore_Record(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())

	store.Record(UploadRecord{Route: "resumir", Status: StatusSuccess, Pages: 4, Duration: 200 * time.Millisecond})
	store.Record(UploadRecord{Route: "api", Status: StatusSuccess, Pages: 2, Fallback: "truncated", Duration: 100 * time.Millisecond})
	store.Record(UploadRecord{Route: "resumir", Status: StatusRejected, HTTPStatus: 400, Reason: "Formato inválido. Envie um PDF."})
	store.Record(UploadRecord{Route: "resumir", Status: StatusError, HTTPStatus: 500})

	stats := store.Stats()
	if stats.TotalUploads != 4 || stats.Succeeded != 2 || stats.Rejected != 1 || stats.Failed != 1 {
		t.Errorf("counters = %+v", stats)
	}
	if stats.AvgDuration != 150*time.Millisecond {
		t.Errorf("AvgDuration = %v, want 150ms", stats.AvgDuration)
	}
	if stats.AvgPages != 3 {
		t.Errorf("AvgPages = %v, want 3", stats.AvgPages)
	}
	if stats.ByFallback[FallbackNone] != 1 || stats.ByFallback["truncated"] != 1 {
		t.Errorf("ByFallback = %v", stats.ByFallback)
	}

	recent := store.Recent(10)
	if len(recent) != 4 {
		t.Fatalf("Recent() returned %d records, want 4", len(recent))
	}
	for _, rec := range recent {
		if rec.ID == "" || rec.Time.IsZero() {
			t.Errorf("record missing ID or time: %+v", rec)
		}
	}
}

func TestStore_StatsIsACopy(t *testing.T) {
	store := NewStore(DefaultStoreConfig(), time.Now())
	store.Record(UploadRecord{Status: StatusSuccess})

	stats := store.Stats()
	stats.ByFallback[FallbackNone] = 99

	if got := store.Stats().ByFallback[FallbackNone]; got != 1 {
		t.Errorf("store changed through returned map: %d", got)
	}
}

func TestStore_RecentWrapsAround(t *testing.T) {
	store := NewStore(StoreConfig{HistoryCapacity: 3}, time.Now())
	for i := 1; i <= 5; i++ {
		store.Record(UploadRecord{ID: string(rune('0' + i)), Status: StatusSuccess})
	}

	tests := []struct {
		limit int
		want  []string
	}{
		{limit: 0, want: nil},
		{limit: 2, want: []string{"4", "5"}},
		{limit: 3, want: []string{"3", "4", "5"}},
		{limit: 10, want: []string{"3", "4", "5"}},
	}

	for _, tt := range tests {
		got := store.Recent(tt.limit)
		if len(got) != len(tt.want) {
			t.Errorf("Recent(%d) returned %d records, want %d", tt.limit, len(got), len(tt.want))
			continue
		}
		for i, rec := range got {
			if rec.ID != tt.want[i] {
				t.Errorf("Recent(%d)[%d] = %s, want %s", tt.limit, i, rec.ID, tt.want[i])
			}
		}
	}

	if store.Stats().TotalUploads != 5 {
		t.Errorf("aggregates must cover evicted records")
	}
}

func TestStore_Status(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore(StoreConfig{Version: "1.2.3"}, start)
	store.now = func() time.Time { return start.Add(90 * time.Second) }

	status := store.Status(false)
	if status.Health != HealthRunning || status.Version != "1.2.3" || status.Uptime != 90*time.Second {
		t.Errorf("Status(false) = %+v", status)
	}
	if store.Status(true).Health != HealthStopping {
		t.Error("Status(true) should report stopping")
	}
}

func TestStore_ConcurrentRecord(t *testing.T) {
	store := NewStore(StoreConfig{HistoryCapacity: 10}, time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				store.Record(UploadRecord{Status: StatusSuccess, Pages: 1})
				store.Stats()
				store.Recent(5)
			}
		}()
	}
	wg.Wait()

	if got := store.Stats().TotalUploads; got != 1000 {
		t.Errorf("TotalUploads = %d, want 1000", got)
	}
}
