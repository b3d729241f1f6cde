package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"resumidor/core"

	"go.uber.org/zap"
)

// DefaultTimeout bounds the whole shutdown sequence.
const DefaultTimeout = 30 * time.Second

// Manager ties signal handling, in-flight tracking and cleanup hooks together.
//
// Usage:
//
//	manager := shutdown.NewManager(logger, shutdown.WithTimeout(cfg.ShutdownTimeout))
//	manager.Register("http", shutdown.PriorityHTTP, srv.Shutdown)
//	manager.Register("uploads", shutdown.PriorityUploads, shutdown.CleanupUploads(logger, cfg.UploadDir))
//	manager.Start()
//
//	go srv.ListenAndServe()
//	<-manager.Done()
//	err := manager.Shutdown()
//	os.Exit(manager.ExitCode(err))
//
// Handlers wrap each upload in Track so Shutdown waits for summaries that
// are still being computed.
type Manager struct {
	logger  *zap.Logger
	timeout time.Duration
	exit    func(int)

	ctx    context.Context
	cancel context.CancelFunc

	ops   *inFlight
	hooks hookList

	mu       sync.Mutex
	started  bool
	finished bool
	signal   os.Signal
	signals  int
	sigChan  chan os.Signal
}

// Option configures a Manager.
type Option func(*Manager)

// WithTimeout sets the shutdown deadline. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// WithExitFunc replaces os.Exit for the forced exit on a second signal.
func WithExitFunc(exit func(int)) Option {
	return func(m *Manager) {
		m.exit = exit
	}
}

// NewManager creates a Manager. A nil logger disables logging.
func NewManager(logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())

	m := &Manager{
		logger:  logger.Named("shutdown"),
		timeout: DefaultTimeout,
		exit:    os.Exit,
		ctx:     ctx,
		cancel:  cancel,
		ops:     newInFlight(),
		sigChan: make(chan os.Signal, 2),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Register adds a cleanup hook. Hooks registered after Shutdown ran are ignored.
func (m *Manager) Register(name string, priority int, fn core.ShutdownFunc) {
	if !m.hooks.add(name, priority, fn) {
		m.logger.Warn("Ignoring shutdown hook registered too late", zap.String("hook", name))
		return
	}
	m.logger.Debug("Registered shutdown hook",
		zap.String("hook", name),
		zap.Int("priority", priority),
	)
}

// Start listens for SIGINT and SIGTERM. The first signal cancels Context;
// the second exits immediately with the signal's exit code. Calling Start
// more than once has no effect.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	signal.Notify(m.sigChan, os.Interrupt, syscall.SIGTERM)
	go m.watch()
}

func (m *Manager) watch() {
	for sig := range m.sigChan {
		m.handleSignal(sig)
	}
}

func (m *Manager) handleSignal(sig os.Signal) {
	m.mu.Lock()
	m.signals++
	count := m.signals
	if count == 1 {
		m.signal = sig
	}
	m.mu.Unlock()

	if count == 1 {
		m.logger.Info("Received shutdown signal, finishing in-flight summaries",
			zap.String("signal", sig.String()),
			zap.Int("in_flight", m.ops.count()),
		)
		m.cancel()
		return
	}

	m.logger.Warn("Received second signal, forcing exit", zap.String("signal", sig.String()))
	m.exit(core.ExitCodeForSignal(sig))
}

// Trigger starts shutdown without a signal, for example when the HTTP
// server fails to bind.
func (m *Manager) Trigger() {
	m.cancel()
}

// Context is cancelled once shutdown has been requested.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done is shorthand for Context().Done().
func (m *Manager) Done() <-chan struct{} {
	return m.ctx.Done()
}

// Track runs fn as a named in-flight operation. It returns ErrShuttingDown
// without calling fn once Shutdown has started. fn keeps running when a
// signal arrives; Shutdown waits for it up to the timeout.
func (m *Manager) Track(ctx context.Context, name string, fn func(context.Context) error) error {
	if !m.ops.start(name) {
		m.logger.Debug("Rejected operation during shutdown", zap.String("operation", name))
		return ErrShuttingDown
	}
	defer m.ops.done(name)

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Shutdown stops accepting operations, waits for running ones and then runs
// the hooks with whatever time is left. It returns the joined hook errors,
// or context.DeadlineExceeded when operations outlived the timeout and no
// hook failed. Later calls return nil.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	if m.finished {
		m.mu.Unlock()
		return nil
	}
	m.finished = true
	started := m.started
	m.mu.Unlock()

	m.cancel()
	begin := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), m.timeout)
	defer cancel()

	m.ops.close()
	if n := m.ops.count(); n > 0 {
		m.logger.Info("Waiting for in-flight operations",
			zap.Int("count", n),
			zap.Any("operations", m.ops.snapshot()),
		)
	}
	waitErr := m.ops.wait(ctx)
	if waitErr != nil {
		m.logger.Warn("Timed out waiting for in-flight operations",
			zap.Duration("waited", time.Since(begin)),
			zap.Int("remaining", m.ops.count()),
		)
	}

	// Hooks always get at least a second, even after a wait timeout.
	hookCtx := ctx
	if waitErr != nil {
		var hookCancel context.CancelFunc
		hookCtx, hookCancel = context.WithTimeout(context.Background(), time.Second)
		defer hookCancel()
	}

	err := m.hooks.run(hookCtx, func(name string, err error) {
		if err != nil {
			m.logger.Error("Shutdown hook failed", zap.String("hook", name), zap.Error(err))
			return
		}
		m.logger.Debug("Shutdown hook finished", zap.String("hook", name))
	})

	if started {
		signal.Stop(m.sigChan)
	}

	if err == nil && waitErr != nil {
		err = waitErr
	}
	if err != nil {
		m.logger.Error("Shutdown completed with errors",
			zap.Duration("duration", time.Since(begin)),
			zap.Error(err),
		)
		return err
	}
	m.logger.Info("Graceful shutdown completed", zap.Duration("duration", time.Since(begin)))
	return nil
}

// Signal returns the first signal received, or nil.
func (m *Manager) Signal() os.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.signal
}

// ExitCode picks the process exit code after Shutdown returned err.
func (m *Manager) ExitCode(err error) int {
	if err != nil {
		return core.ExitCodeError
	}
	return core.ExitCodeForSignal(m.Signal())
}

// ActiveOperations returns the number of running tracked operations.
func (m *Manager) ActiveOperations() int {
	return m.ops.count()
}

// IsShuttingDown reports whether new operations are being rejected.
func (m *Manager) IsShuttingDown() bool {
	return m.ops.isClosed()
}

// Hooks returns hook names in execution order.
func (m *Manager) Hooks() []string {
	return m.hooks.names()
}
