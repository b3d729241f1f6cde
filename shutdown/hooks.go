package shutdown

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"resumidor/core"
)

// Hook priorities used by the serve command. Lower runs first.
const (
	PriorityHTTP     = 10 // stop accepting requests
	PrioritySessions = 20 // stop the session sweeper
	PriorityUploads  = 40 // remove leftover uploads
	PriorityLogger   = 90 // flush logs last
)

type hook struct {
	name     string
	priority int
	seq      int
	fn       core.ShutdownFunc
}

// hookList runs cleanup functions once, ordered by priority and then by
// registration order.
type hookList struct {
	mu    sync.Mutex
	hooks []hook
	ran   bool
}

func (l *hookList) add(name string, priority int, fn core.ShutdownFunc) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.ran {
		return false
	}
	l.hooks = append(l.hooks, hook{name: name, priority: priority, seq: len(l.hooks), fn: fn})
	return true
}

func (l *hookList) ordered() []hook {
	sorted := append([]hook(nil), l.hooks...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].priority != sorted[j].priority {
			return sorted[i].priority < sorted[j].priority
		}
		return sorted[i].seq < sorted[j].seq
	})
	return sorted
}

func (l *hookList) names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	sorted := l.ordered()
	names := make([]string, len(sorted))
	for i, h := range sorted {
		names[i] = h.name
	}
	return names
}

// run calls every hook even when earlier ones fail and joins the failures.
// A second call does nothing.
func (l *hookList) run(ctx context.Context, after func(name string, err error)) error {
	l.mu.Lock()
	if l.ran {
		l.mu.Unlock()
		return nil
	}
	l.ran = true
	sorted := l.ordered()
	l.mu.Unlock()

	var errs []error
	for _, h := range sorted {
		err := h.fn(ctx)
		if after != nil {
			after(h.name, err)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", h.name, err))
		}
	}
	return errors.Join(errs...)
}
