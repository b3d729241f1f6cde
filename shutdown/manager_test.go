package shutdown

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"syscall"
	"testing"
	"time"

	"resumidor/core"

	"go.uber.org/zap/zaptest"
)

func TestManager_HooksRunInPriorityOrder(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	var mu sync.Mutex
	var order []string
	record := func(name string) core.ShutdownFunc {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}

	m.Register("logger", PriorityLogger, record("logger"))
	m.Register("uploads", PriorityUploads, record("uploads"))
	m.Register("http", PriorityHTTP, record("http"))
	m.Register("http-2", PriorityHTTP, record("http-2"))

	want := []string{"http", "http-2", "uploads", "logger"}
	if got := m.Hooks(); !reflect.DeepEqual(got, want) {
		t.Errorf("Hooks() = %v, want %v", got, want)
	}

	if err := m.Shutdown(); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("execution order = %v, want %v", order, want)
	}
}

func TestManager_ShutdownIsIdempotent(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))

	calls := 0
	m.Register("once", 1, func(ctx context.Context) error {
		calls++
		return nil
	})

	for i := 0; i < 3; i++ {
		if err := m.Shutdown(); err != nil {
			t.Fatalf("Shutdown() #%d error = %v", i, err)
		}
	}
	if calls != 1 {
		t.Errorf("hook ran %d times, want 1", calls)
	}

	select {
	case <-m.Done():
	default:
		t.Error("Context should be cancelled after Shutdown")
	}
}

func TestManager_HookErrorsAreJoined(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	errA := errors.New("a failed")
	errB := errors.New("b failed")

	ran := false
	m.Register("a", 1, func(ctx context.Context) error { return errA })
	m.Register("b", 2, func(ctx context.Context) error { return errB })
	m.Register("c", 3, func(ctx context.Context) error { ran = true; return nil })

	err := m.Shutdown()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Shutdown() error = %v, want both hook errors", err)
	}
	if !ran {
		t.Error("hooks after a failure should still run")
	}
	if code := m.ExitCode(err); code != core.ExitCodeError {
		t.Errorf("ExitCode() = %d, want %d", code, core.ExitCodeError)
	}
}

func TestManager_RegisterAfterShutdownIgnored(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	if err := m.Shutdown(); err != nil {
		t.Fatal(err)
	}
	m.Register("late", 1, func(ctx context.Context) error { return errors.New("should not run") })
	if len(m.Hooks()) != 0 {
		t.Errorf("Hooks() = %v, want none", m.Hooks())
	}
}

func TestManager_TrackWaitsForInFlight(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), WithTimeout(5*time.Second))

	started := make(chan struct{})
	release := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		_ = m.Track(context.Background(), "upload", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
		close(finished)
	}()
	<-started

	if got := m.ActiveOperations(); got != 1 {
		t.Errorf("ActiveOperations() = %d, want 1", got)
	}

	hookRan := make(chan struct{})
	m.Register("after", 1, func(ctx context.Context) error {
		select {
		case <-finished:
		default:
			t.Error("hook ran before the in-flight operation finished")
		}
		close(hookRan)
		return nil
	})

	done := make(chan error)
	go func() { done <- m.Shutdown() }()

	time.Sleep(20 * time.Millisecond)
	if !m.IsShuttingDown() {
		t.Error("IsShuttingDown() should be true once Shutdown started")
	}
	err := m.Track(context.Background(), "upload", func(ctx context.Context) error {
		t.Error("operation should be rejected during shutdown")
		return nil
	})
	if !errors.Is(err, ErrShuttingDown) {
		t.Errorf("Track() during shutdown = %v, want ErrShuttingDown", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	<-hookRan
}

func TestManager_TrackTimeout(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t), WithTimeout(30*time.Millisecond))

	started := make(chan struct{})
	release := make(chan struct{})
	defer close(release)
	go func() {
		_ = m.Track(context.Background(), "stuck", func(ctx context.Context) error {
			close(started)
			<-release
			return nil
		})
	}()
	<-started

	hookRan := false
	m.Register("uploads", PriorityUploads, func(ctx context.Context) error {
		hookRan = true
		return nil
	})

	err := m.Shutdown()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Shutdown() error = %v, want deadline exceeded", err)
	}
	if !hookRan {
		t.Error("hooks should run after a wait timeout")
	}
}

func TestManager_TrackPropagatesResult(t *testing.T) {
	m := NewManager(nil)
	want := errors.New("pdf broken")

	if err := m.Track(context.Background(), "op", func(ctx context.Context) error { return want }); !errors.Is(err, want) {
		t.Errorf("Track() = %v, want %v", err, want)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := m.Track(ctx, "op", func(ctx context.Context) error { called = true; return nil })
	if !errors.Is(err, context.Canceled) || called {
		t.Errorf("Track(cancelled) = %v, called = %v", err, called)
	}
	if m.ActiveOperations() != 0 {
		t.Errorf("ActiveOperations() = %d after completion", m.ActiveOperations())
	}
}

func TestManager_Signals(t *testing.T) {
	exitCode := -1
	m := NewManager(zaptest.NewLogger(t), WithExitFunc(func(code int) { exitCode = code }))

	m.handleSignal(syscall.SIGTERM)
	select {
	case <-m.Done():
	default:
		t.Fatal("first signal should cancel the context")
	}
	if exitCode != -1 {
		t.Fatalf("first signal should not force exit, got %d", exitCode)
	}
	if m.Signal() != syscall.SIGTERM {
		t.Errorf("Signal() = %v, want SIGTERM", m.Signal())
	}

	m.handleSignal(syscall.SIGINT)
	if exitCode != core.ExitCodeSIGINT {
		t.Errorf("forced exit code = %d, want %d", exitCode, core.ExitCodeSIGINT)
	}

	if err := m.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if code := m.ExitCode(nil); code != core.ExitCodeSIGTERM {
		t.Errorf("ExitCode() = %d, want %d", code, core.ExitCodeSIGTERM)
	}
}

func TestManager_TriggerWithoutSignal(t *testing.T) {
	m := NewManager(zaptest.NewLogger(t))
	m.Start()
	m.Start()

	m.Trigger()
	<-m.Done()

	if err := m.Shutdown(); err != nil {
		t.Fatal(err)
	}
	if code := m.ExitCode(nil); code != core.ExitCodeSuccess {
		t.Errorf("ExitCode() = %d, want success", code)
	}
}
