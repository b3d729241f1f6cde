// Package shutdown coordinates graceful termination of the resumidor server:
// it tracks uploads still being summarized, runs cleanup hooks in order and
// turns the received signal into a process exit code.
package shutdown

import (
	"context"
	"errors"
	"sync"
)

// ErrShuttingDown is returned by Track once shutdown has begun. The web layer
// answers it with 503.
var ErrShuttingDown = errors.New("server is shutting down")

// inFlight counts running operations and refuses new ones after close.
type inFlight struct {
	mu     sync.Mutex
	wg     sync.WaitGroup
	active map[string]int
	closed bool
}

func newInFlight() *inFlight {
	return &inFlight{active: make(map[string]int)}
}

func (f *inFlight) start(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return false
	}
	f.wg.Add(1)
	f.active[name]++
	return true
}

func (f *inFlight) done(name string) {
	f.mu.Lock()
	f.active[name]--
	if f.active[name] <= 0 {
		delete(f.active, name)
	}
	f.mu.Unlock()
	f.wg.Done()
}

func (f *inFlight) close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
}

func (f *inFlight) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

func (f *inFlight) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.active {
		n += c
	}
	return n
}

// snapshot returns running operation counts by name.
func (f *inFlight) snapshot() map[string]int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]int, len(f.active))
	for name, c := range f.active {
		out[name] = c
	}
	return out
}

// wait blocks until every operation finished or ctx expires.
func (f *inFlight) wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		f.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
