package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Keys of a JSON log line. The log file always uses them; the console uses
// them too outside development mode.
const (
	FieldTimestamp  = "timestamp"
	FieldLevel      = "level"
	FieldLogger     = "logger" // sub-logger name: http, pdf, summarizer
	FieldMessage    = "message"
	FieldStacktrace = "stacktrace"
	FieldCaller     = "caller"
)

// NewEncoderConfig is zap's production encoding with ISO8601 timestamps,
// millisecond durations and the Field* keys. Extraction and summary timings
// land in the file as plain integers.
func NewEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = FieldTimestamp
	cfg.LevelKey = FieldLevel
	cfg.NameKey = FieldLogger
	cfg.CallerKey = FieldCaller
	cfg.MessageKey = FieldMessage
	cfg.StacktraceKey = FieldStacktrace
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeDuration = zapcore.MillisDurationEncoder
	return cfg
}

// NewConsoleEncoderConfig is the development terminal variant: colored
// capital levels, wall-clock time only and durations like "1.5s".
func NewConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := NewEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

// NewMultiCore tees stdout and a rotating JSON file at filePath, creating
// the file's directory first.
func NewMultiCore(level zapcore.Level, filePath string, isDev bool, fileConfig FileWriterConfig) (zapcore.Core, error) {
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory %s: %w", dir, err)
	}
	file := NewFileWriterWithConfig(filePath, fileConfig)
	return NewMultiCoreWithWriters(level, zapcore.Lock(os.Stdout), file, isDev), nil
}

// NewMultiCoreWithWriters tees console and file at the same level. The file
// is always JSON; the console is human-readable only when isDev is set.
func NewMultiCoreWithWriters(level zapcore.Level, console, file zapcore.WriteSyncer, isDev bool) zapcore.Core {
	jsonEncoder := zapcore.NewJSONEncoder(NewEncoderConfig())

	consoleEncoder := jsonEncoder.Clone()
	if isDev {
		consoleEncoder = zapcore.NewConsoleEncoder(NewConsoleEncoderConfig())
	}

	return zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, console, level),
		zapcore.NewCore(jsonEncoder, file, level),
	)
}
