// Package logging provides structured logging for resumidor.
//
// It wraps go.uber.org/zap with a console core and a rotating JSON file core,
// and keeps document text out of log fields beyond a short preview.
package logging

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger and shortens document text and session
// identifiers before they reach any output.
//
// This organism composes:
//   - FileWriter molecule (log file rotation via lumberjack)
//   - MultiCore molecule (tee output to console + file)
//   - TextFilter atom (previews and redaction)
//
// Example:
//
//	logger, err := NewLogger(true, "app.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	logger.Info("server started", zap.String("port", "5000"))
type Logger struct {
	// zap is the underlying structured logger
	zap *zap.Logger

	// sugar is the sugared logger for printf-style logging
	sugar *zap.SugaredLogger

	// isDevelopment indicates if running in development mode
	isDevelopment bool

	// logFilePath is the path to the log file
	logFilePath string
}

// NewLogger creates a new Logger instance configured for the given environment.
//
// Parameters:
//   - isDevelopment: When true, uses colored console output with debug level.
//     When false, uses JSON output with info level.
//   - logFilePath: Path to the log file. Rotation is configured with
//     DefaultFileWriterConfig (100MB max, 5 backups, 30 days).
//
// Example:
//
//	devLogger, err := NewLogger(true, "app.log")
//	prodLogger, err := NewLogger(false, "/var/log/resumidor/app.log")
func NewLogger(isDevelopment bool, logFilePath string) (*Logger, error) {
	return NewLoggerWithConfig(defaultLevel(isDevelopment), isDevelopment, logFilePath, DefaultFileWriterConfig())
}

// NewLoggerWithConfig creates a Logger with an explicit level and file
// rotation configuration.
//
// Example:
//
//	level := ParseLogLevelString(os.Getenv("LOG_LEVEL"), zapcore.InfoLevel)
//	logger, err := NewLoggerWithConfig(level, false, "app.log", DefaultFileWriterConfig())
func NewLoggerWithConfig(level zapcore.Level, isDevelopment bool, logFilePath string, fileConfig FileWriterConfig) (*Logger, error) {
	if logFilePath == "" {
		return nil, errors.New("failed to create log core: empty log file path")
	}
	core, err := NewMultiCore(level, logFilePath, isDevelopment, fileConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create log core: %w", err)
	}
	return newLogger(core, isDevelopment, logFilePath), nil
}

// NewLoggerWithWriters builds a Logger on arbitrary sinks.
// Tests use it to capture output in memory.
func NewLoggerWithWriters(level zapcore.Level, isDevelopment bool, console, file zapcore.WriteSyncer) *Logger {
	return newLogger(NewMultiCoreWithWriters(level, console, file, isDevelopment), isDevelopment, "")
}

// NewNop returns a Logger that discards everything.
func NewNop() *Logger {
	return newLogger(zapcore.NewNopCore(), false, "")
}

func newLogger(core zapcore.Core, isDevelopment bool, logFilePath string) *Logger {
	zapLogger := zap.New(core,
		zap.AddCaller(),
		zap.AddCallerSkip(1), // Skip this wrapper layer
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	return &Logger{
		zap:           zapLogger,
		sugar:         zapLogger.Sugar(),
		isDevelopment: isDevelopment,
		logFilePath:   logFilePath,
	}
}

func defaultLevel(isDevelopment bool) zapcore.Level {
	if isDevelopment {
		return zapcore.DebugLevel
	}
	return zapcore.InfoLevel
}

// Sync flushes any buffered log entries. Syncing a terminal stdout fails on
// some platforms; that error is ignored.
//
// Example:
//
//	logger, _ := NewLogger(true, "app.log")
//	defer logger.Sync()
func (l *Logger) Sync() error {
	if l == nil || l.zap == nil {
		return nil
	}
	err := l.zap.Sync()
	if err != nil && isStdoutSyncError(err) {
		return nil
	}
	return err
}

func isStdoutSyncError(err error) bool {
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path == os.Stdout.Name()
	}
	return false
}

// Debug logs a message at DebugLevel with optional structured fields.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	l.zap.Debug(msg, filterFields(fields)...)
}

// Info logs a message at InfoLevel with optional structured fields.
//
// Example:
//
//	logger.Info("document summarized",
//	    zap.Int("pages", 12),
//	    zap.Int("sentences", 5))
func (l *Logger) Info(msg string, fields ...zap.Field) {
	l.zap.Info(msg, filterFields(fields)...)
}

// Warn logs a message at WarnLevel with optional structured fields.
func (l *Logger) Warn(msg string, fields ...zap.Field) {
	l.zap.Warn(msg, filterFields(fields)...)
}

// Error logs a message at ErrorLevel with optional structured fields.
//
// Example:
//
//	logger.Error("failed to start server",
//	    zap.Error(err),
//	    zap.String("addr", "localhost:5000"))
func (l *Logger) Error(msg string, fields ...zap.Field) {
	l.zap.Error(msg, filterFields(fields)...)
}

// Fatal logs a message at FatalLevel then calls os.Exit(1).
func (l *Logger) Fatal(msg string, fields ...zap.Field) {
	l.zap.Fatal(msg, filterFields(fields)...)
}

// Infof logs a formatted message at InfoLevel.
func (l *Logger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}

// Infow logs a message at InfoLevel with loosely-typed key-value pairs.
//
// Example:
//
//	logger.Infow("upload received", "filename", "tese.pdf", "bytes", 48213)
func (l *Logger) Infow(msg string, keysAndValues ...interface{}) {
	l.sugar.Infow(msg, filterKeysAndValues(keysAndValues)...)
}

// Errorw logs a message at ErrorLevel with loosely-typed key-value pairs.
func (l *Logger) Errorw(msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, filterKeysAndValues(keysAndValues)...)
}

// With creates a child logger with additional fields that will be included
// in all log entries from the child.
//
// Example:
//
//	requestLogger := logger.With(zap.String("request_id", "abc123"))
//	requestLogger.Info("processing upload")
func (l *Logger) With(fields ...zap.Field) *Logger {
	return l.derive(l.zap.With(filterFields(fields)...))
}

// Named adds a sub-logger name. Logger names appear in log output and
// help identify the source of log entries.
//
// Example:
//
//	httpLogger := logger.Named("http")
//	pdfLogger := logger.Named("pdf")
func (l *Logger) Named(name string) *Logger {
	return l.derive(l.zap.Named(name))
}

func (l *Logger) derive(z *zap.Logger) *Logger {
	return &Logger{
		zap:           z,
		sugar:         z.Sugar(),
		isDevelopment: l.isDevelopment,
		logFilePath:   l.logFilePath,
	}
}

// Zap returns the underlying zap.Logger for components that take a
// *zap.Logger directly. Fields passed through it are not filtered.
func (l *Logger) Zap() *zap.Logger {
	return l.zap.WithOptions(zap.AddCallerSkip(-1))
}

// IsDevelopment returns true if the logger is configured for development mode.
func (l *Logger) IsDevelopment() bool {
	return l.isDevelopment
}

// LogFilePath returns the path to the log file, empty for in-memory loggers.
func (l *Logger) LogFilePath() string {
	return l.logFilePath
}
