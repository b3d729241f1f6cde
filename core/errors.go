package core

import (
	"errors"
	"fmt"
)

// ConfigError represents a configuration-related error with actionable instructions.
type ConfigError struct {
	Code    string // Error code for programmatic handling
	Message string // Human-readable error message
	Action  string // Actionable instruction for resolution
}

func (e *ConfigError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s. %s", e.Message, e.Action)
	}
	return e.Message
}

// Error codes for configuration errors
const (
	ErrCodeInvalidValue      = "INVALID_VALUE"
	ErrCodeInvalidPort       = "INVALID_PORT"
	ErrCodeMissingConfig     = "MISSING_CONFIG"
	ErrCodeUnknownMode       = "UNKNOWN_MODE"
	ErrCodeProfilesFile      = "PROFILES_FILE"
	ErrCodeInvalidSummarizer = "INVALID_SUMMARIZER"
)

// ErrInvalidValue returns an error for a variable that is set but unusable
func ErrInvalidValue(varName, value, reason string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("Invalid %s '%s': %s", varName, value, reason),
		Action:  fmt.Sprintf("Fix %s in your .env file or environment", varName),
	}
}

// ErrInvalidPort returns an error for a port outside 1-65535
func ErrInvalidPort(port int) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidPort,
		Message: fmt.Sprintf("Invalid PORT %d", port),
		Action:  "Set PORT to a number between 1 and 65535 (default: 5000)",
	}
}

// ErrMissingConfig returns an error for missing required configuration
func ErrMissingConfig(varName string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeMissingConfig,
		Message: fmt.Sprintf("Missing required configuration: %s", varName),
		Action:  fmt.Sprintf("Set %s in your .env file", varName),
	}
}

// ErrUnknownMode returns an error for a SUMMARY_MODE that names neither a
// built-in mode nor a loaded profile
func ErrUnknownMode(mode string, known []string) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeUnknownMode,
		Message: fmt.Sprintf("Unknown SUMMARY_MODE '%s'", mode),
		Action:  fmt.Sprintf("Use one of %v or define it in SUMMARY_PROFILES_FILE", known),
	}
}

// ErrProfilesFile returns an error for an unreadable or malformed profiles file
func ErrProfilesFile(path string, err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeProfilesFile,
		Message: fmt.Sprintf("Cannot load summary profiles from %s: %v", path, err),
		Action:  "Check SUMMARY_PROFILES_FILE points to a valid YAML file",
	}
}

// ErrInvalidSummarizer returns an error for summarizer settings that fail validation
func ErrInvalidSummarizer(err error) *ConfigError {
	return &ConfigError{
		Code:    ErrCodeInvalidSummarizer,
		Message: fmt.Sprintf("Invalid summarizer configuration: %v", err),
		Action:  "Check NUM_SENTENCAS, SIMILARITY_THRESHOLD, MIN_SENTENCE_WORDS and OUTPUT_FORMAT",
	}
}

// IsConfigError checks if an error is or wraps a ConfigError and returns it if so
func IsConfigError(err error) (*ConfigError, bool) {
	var configErr *ConfigError
	if errors.As(err, &configErr) {
		return configErr, true
	}
	return nil, false
}

// GetErrorCode extracts the error code from an error if it's a ConfigError
func GetErrorCode(err error) string {
	if configErr, ok := IsConfigError(err); ok {
		return configErr.Code
	}
	return ""
}
