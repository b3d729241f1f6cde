// Package webui serves the resumidor web interface: the upload page, the
// upload endpoints that summarize a PDF and the page showing the result.
package webui

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"resumidor/core"
	"resumidor/logging"
	"resumidor/metrics"
	"resumidor/pdfprocessor"
	"resumidor/webui/static"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SessionCookieName is the cookie carrying the summary session ID.
const SessionCookieName = "resumo_session"

// DocumentProcessor turns an uploaded PDF into a summary.
// *pdfprocessor.Processor implements it.
type DocumentProcessor interface {
	ProcessUpload(ctx context.Context, filename string, r io.Reader, n int) (*pdfprocessor.ProcessResult, error)
}

// OperationTracker lets graceful shutdown wait for summaries in progress.
// *shutdown.Manager implements it.
type OperationTracker interface {
	Track(ctx context.Context, name string, fn func(context.Context) error) error
	IsShuttingDown() bool
}

// untracked runs operations directly, for servers without a shutdown manager.
type untracked struct{}

func (untracked) Track(ctx context.Context, _ string, fn func(context.Context) error) error {
	return fn(ctx)
}

func (untracked) IsShuttingDown() bool { return false }

// ServerConfig configures the Server.
type ServerConfig struct {
	// Host and Port to listen on (default: localhost:5000)
	Host string
	Port int

	// MaxFileSize is the largest accepted PDF in bytes
	MaxFileSize int64

	// MaxSentences caps num_sentencas (default: 50)
	MaxSentences int

	// SessionTTL is how long a summary stays available on /resumo
	SessionTTL time.Duration

	// UploadsPerMinute limits uploads per client, 0 disables the limit
	UploadsPerMinute int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// CleanupInterval is how often expired sessions and rate windows are dropped
	CleanupInterval time.Duration

	StaticConfig StaticAssetConfig

	// LogSkipPaths are not request-logged
	LogSkipPaths []string

	// Version is reported by /health
	Version string
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:             core.DefaultHost,
		Port:             core.DefaultPort,
		MaxFileSize:      core.DefaultMaxFileSize,
		MaxSentences:     50,
		SessionTTL:       core.DefaultSessionTTL,
		UploadsPerMinute: core.DefaultUploadsPerMinute,
		ReadTimeout:      30 * time.Second,
		WriteTimeout:     2 * time.Minute,
		IdleTimeout:      120 * time.Second,
		CleanupInterval:  5 * time.Minute,
		StaticConfig:     DefaultStaticAssetConfig(),
		LogSkipPaths:     []string{"/health"},
		Version:          core.Version,
	}
}

// ServerConfigFromCore derives the server settings from the application config.
func ServerConfigFromCore(cfg *core.Config) ServerConfig {
	config := DefaultServerConfig()
	config.Host = cfg.Host
	config.Port = cfg.Port
	config.MaxFileSize = cfg.MaxFileSize
	config.SessionTTL = cfg.SessionTTL
	config.UploadsPerMinute = cfg.UploadsPerMinute
	config.StaticConfig.EnableCache = !cfg.DevMode
	return config
}

// Server is the resumidor HTTP server.
//
// Routes:
//   - GET  /               upload page
//   - POST /resumir        summarize an upload, store it in the session
//   - GET  /resumo         show the session summary
//   - POST /api/summarize  summarize an upload, answer with JSON
//   - GET  /health         liveness
//   - GET  /api/stats      upload statistics
//   - GET  /static/...     embedded assets
type Server struct {
	httpServer    *http.Server
	router        *mux.Router
	config        ServerConfig
	logger        *logging.Logger
	processor     DocumentProcessor
	tracker       OperationTracker
	sessions      *SessionStore
	limiter       *RateLimiter
	stats         *metrics.Store
	staticHandler *StaticAssetHandler
	resumoPage    *template.Template
}

// NewServer wires the routes and middleware. The tracker may be nil; the
// logger may be nil.
func NewServer(config ServerConfig, processor DocumentProcessor, tracker OperationTracker, logger *logging.Logger) (*Server, error) {
	if processor == nil {
		return nil, errors.New("webui: nil document processor")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if tracker == nil {
		tracker = untracked{}
	}
	if config.MaxSentences <= 0 {
		config.MaxSentences = DefaultServerConfig().MaxSentences
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = DefaultServerConfig().CleanupInterval
	}

	resumoPage, err := template.ParseFS(static.GetFS(), "resumo.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse summary page: %w", err)
	}

	s := &Server{
		config:        config,
		logger:        logger,
		processor:     processor,
		tracker:       tracker,
		sessions:      NewSessionStore(config.SessionTTL),
		limiter:       NewRateLimiter(config.UploadsPerMinute, time.Minute),
		stats:         metrics.NewStore(metrics.StoreConfig{HistoryCapacity: 100, Version: config.Version}, time.Now()),
		staticHandler: NewStaticAssetHandler(config.StaticConfig),
		resumoPage:    resumoPage,
	}
	s.sessions.onSweep = func(removed, remaining int) {
		logger.Debug("Expired sessions removed", zap.Int("removed", removed), zap.Int("remaining", remaining))
	}
	s.router = s.setupRoutes()

	addr := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	logger.Info("Web server created",
		zap.String("addr", addr),
		zap.String("max_file_size", core.FormatBytes(config.MaxFileSize)),
		zap.Int("uploads_per_minute", config.UploadsPerMinute),
	)
	return s, nil
}

func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(NewLoggingMiddleware(s.logger.Named("http"), s.config.LogSkipPaths...).Handler)

	r.HandleFunc("/", s.staticHandler.ServeFile("index.html")).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/resumir", s.handleResumir).Methods(http.MethodPost)
	r.HandleFunc("/resumo", s.handleResumo).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/summarize", s.handleAPISummarize).Methods(http.MethodPost)
	r.HandleFunc("/api/stats", s.handleStats).Methods(http.MethodGet)
	r.PathPrefix(s.staticHandler.Prefix() + "/").Handler(s.staticHandler)

	return r
}

// Handler returns the root handler, for tests and custom listeners.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// Stats returns the upload statistics.
func (s *Server) Stats() *metrics.Store {
	return s.stats
}

// Start runs the cleanup tickers and serves HTTP until Shutdown is called.
// It blocks; a clean shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.sessions.StartCleanupTicker(ctx, s.config.CleanupInterval)
	s.limiter.StartCleanupTicker(ctx, s.config.CleanupInterval)

	s.logger.Info("Web server listening", zap.String("addr", s.httpServer.Addr))
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for active requests.
// It has the core.ShutdownFunc signature.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Web server shutting down", zap.Int("sessions", s.sessions.Count()))
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
