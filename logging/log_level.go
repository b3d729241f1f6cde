package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"
)

// LevelNames lists the accepted LOG_LEVEL values in increasing severity.
var LevelNames = []string{"debug", "info", "warn", "error", "fatal"}

var levelAliases = map[string]string{"warning": "warn"}

// canonicalLevel lowercases and trims s and resolves aliases. It returns ""
// for anything outside LevelNames.
func canonicalLevel(s string) string {
	name := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := levelAliases[name]; ok {
		name = alias
	}
	for _, known := range LevelNames {
		if name == known {
			return name
		}
	}
	return ""
}

// ValidLevelName reports whether s is a LOG_LEVEL value ParseLogLevelString
// understands. Case and surrounding space are ignored.
func ValidLevelName(s string) bool {
	return canonicalLevel(s) != ""
}

// ParseLogLevelString maps a LOG_LEVEL value to a zap level, falling back to
// defaultLevel for empty or unknown input. zap's own dpanic and panic levels
// are not accepted.
func ParseLogLevelString(s string, defaultLevel zapcore.Level) zapcore.Level {
	name := canonicalLevel(s)
	if name == "" {
		return defaultLevel
	}
	level, err := zapcore.ParseLevel(name)
	if err != nil {
		return defaultLevel
	}
	return level
}
