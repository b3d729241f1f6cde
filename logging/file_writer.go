package logging

import (
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits used when FileWriterConfig leaves a field at zero.
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	DefaultCompress   = true
)

// FileWriterConfig controls rotation of LOG_FILE. Non-positive size, backup
// and age limits take the package defaults. Compress and LocalTime are used
// as given, so start from DefaultFileWriterConfig to keep gzip on.
type FileWriterConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	LocalTime  bool // backup names in local time instead of UTC
}

// DefaultFileWriterConfig rotates at 100 MB and keeps five gzipped backups
// for up to 30 days.
func DefaultFileWriterConfig() FileWriterConfig {
	return FileWriterConfig{
		MaxSizeMB:  DefaultMaxSizeMB,
		MaxBackups: DefaultMaxBackups,
		MaxAgeDays: DefaultMaxAgeDays,
		Compress:   DefaultCompress,
	}
}

func (c FileWriterConfig) withDefaults() FileWriterConfig {
	c.MaxSizeMB = positiveOr(c.MaxSizeMB, DefaultMaxSizeMB)
	c.MaxBackups = positiveOr(c.MaxBackups, DefaultMaxBackups)
	c.MaxAgeDays = positiveOr(c.MaxAgeDays, DefaultMaxAgeDays)
	return c
}

func positiveOr(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

// NewFileWriter is NewFileWriterWithConfig with DefaultFileWriterConfig.
func NewFileWriter(path string) zapcore.WriteSyncer {
	return NewFileWriterWithConfig(path, DefaultFileWriterConfig())
}

// NewFileWriterWithConfig returns a rotating sink for path. Nothing touches
// the disk until the first write, so a `summarize` run that never logs
// leaves no file behind.
func NewFileWriterWithConfig(path string, config FileWriterConfig) zapcore.WriteSyncer {
	c := config.withDefaults()
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
		Compress:   c.Compress,
		LocalTime:  c.LocalTime,
	})
}
