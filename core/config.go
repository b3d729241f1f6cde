package core

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"resumidor/logging"
	"resumidor/summarizer"
)

// Defaults for the server and summarizer settings.
const (
	DefaultHost        = "localhost"
	DefaultPort        = 5000
	DefaultUploadDir   = "uploads"
	DefaultMaxFileSize = 20 * BytesPerMB
	DefaultSessionTTL  = time.Hour
	DefaultLogFile     = "app.log"
	DefaultLogLevel    = "info"

	DefaultUploadsPerMinute = 30
	DefaultShutdownTimeout  = 30 * time.Second
)

// Config holds all configuration values
type Config struct {
	// Server Configuration
	Host        string
	Port        int
	UploadDir   string        // Uploaded PDFs live here while processed
	MaxFileSize int64         // Upload size limit in bytes
	SessionTTL  time.Duration // Lifetime of a stored summary

	UploadsPerMinute int           // Per-client upload limit, 0 disables it
	ShutdownTimeout  time.Duration // Grace period for in-flight summaries

	// Logging
	LogFile  string
	LogLevel string
	DevMode  bool

	// Summarization
	SummaryMode  string // Built-in mode or profile name
	ProfilesFile string // Optional YAML file with named profiles
	Profiles     summarizer.Profiles
	Summarizer   summarizer.Config // Resolved mode plus env overrides
}

// LoadConfig builds the configuration from environment variables. Callers
// load .env files beforehand.
//
// Summarizer settings resolve in three steps: SUMMARY_MODE selects a
// built-in mode or a profile from SUMMARY_PROFILES_FILE, then individual
// variables (NUM_SENTENCAS, SIMILARITY_THRESHOLD, MIN_SENTENCE_WORDS,
// DOMAIN_KEYWORDS, OUTPUT_FORMAT, SUMMARY_LANGUAGE) override single fields.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Host:             GetEnvOrDefault("HOST", DefaultHost),
		Port:             ParseIntEnv("PORT", DefaultPort),
		UploadDir:        GetEnvOrDefault("UPLOAD_DIR", DefaultUploadDir),
		MaxFileSize:      ParseInt64Env("MAX_FILE_SIZE", DefaultMaxFileSize),
		SessionTTL:       ParseDurationEnv("SESSION_TTL_SECONDS", int(DefaultSessionTTL/time.Second)),
		UploadsPerMinute: ParseIntEnv("UPLOADS_PER_MINUTE", DefaultUploadsPerMinute),
		ShutdownTimeout:  ParseDurationEnv("SHUTDOWN_TIMEOUT_SECONDS", int(DefaultShutdownTimeout/time.Second)),
		LogFile:          GetEnvOrDefault("LOG_FILE", DefaultLogFile),
		LogLevel:         strings.ToLower(GetEnvOrDefault("LOG_LEVEL", DefaultLogLevel)),
		DevMode:          ParseBoolEnv("DEV_MODE", false),
		SummaryMode:      strings.ToLower(GetEnvOrDefault("SUMMARY_MODE", summarizer.ModeBalanced)),
		ProfilesFile:     GetEnvOrDefault("SUMMARY_PROFILES_FILE", ""),
	}

	if err := cfg.loadSummarizer(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadSummarizer() error {
	if c.ProfilesFile != "" {
		profiles, err := summarizer.LoadProfiles(c.ProfilesFile)
		if err != nil {
			return ErrProfilesFile(c.ProfilesFile, err)
		}
		c.Profiles = profiles
	}

	base, err := c.Profiles.Resolve(c.SummaryMode)
	if err != nil {
		if errors.Is(err, summarizer.ErrUnknownMode) {
			return ErrUnknownMode(c.SummaryMode, c.ModeNames())
		}
		return ErrInvalidSummarizer(err)
	}

	if IsEnvSet("NUM_SENTENCAS") {
		n, err := parseIntVar("NUM_SENTENCAS")
		if err != nil {
			return err
		}
		base.NumSentences = n
	}
	if IsEnvSet("SIMILARITY_THRESHOLD") {
		raw := GetEnvOrDefault("SIMILARITY_THRESHOLD", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return ErrInvalidValue("SIMILARITY_THRESHOLD", raw, "not a number")
		}
		base.SimilarityThreshold = v
	}
	if IsEnvSet("MIN_SENTENCE_WORDS") {
		n, err := parseIntVar("MIN_SENTENCE_WORDS")
		if err != nil {
			return err
		}
		base.MinSentenceWords = n
	}
	if keywords := ParseListEnv("DOMAIN_KEYWORDS"); keywords != nil {
		base.DomainKeywords = keywords
	}
	if IsEnvSet("OUTPUT_FORMAT") {
		base.OutputFormat = summarizer.OutputFormat(strings.ToLower(GetEnvOrDefault("OUTPUT_FORMAT", "")))
	}
	if IsEnvSet("SUMMARY_LANGUAGE") {
		base.Language = strings.ToLower(GetEnvOrDefault("SUMMARY_LANGUAGE", ""))
	}

	c.Summarizer = base
	return nil
}

func parseIntVar(key string) (int, error) {
	raw := GetEnvOrDefault(key, "")
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, ErrInvalidValue(key, raw, "not an integer")
	}
	return n, nil
}

// Validate checks every field and returns the first problem as a *ConfigError.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort(c.Port)
	}
	if strings.TrimSpace(c.Host) == "" {
		return ErrMissingConfig("HOST")
	}
	if strings.TrimSpace(c.UploadDir) == "" {
		return ErrMissingConfig("UPLOAD_DIR")
	}
	if c.MaxFileSize <= 0 {
		return ErrInvalidValue("MAX_FILE_SIZE", strconv.FormatInt(c.MaxFileSize, 10), "must be a positive number of bytes")
	}
	if c.SessionTTL <= 0 {
		return ErrInvalidValue("SESSION_TTL_SECONDS", c.SessionTTL.String(), "must be positive")
	}
	if c.UploadsPerMinute < 0 {
		return ErrInvalidValue("UPLOADS_PER_MINUTE", strconv.Itoa(c.UploadsPerMinute), "must be 0 (unlimited) or positive")
	}
	if c.ShutdownTimeout <= 0 {
		return ErrInvalidValue("SHUTDOWN_TIMEOUT_SECONDS", c.ShutdownTimeout.String(), "must be positive")
	}
	if !logging.ValidLevelName(c.LogLevel) {
		return ErrInvalidValue("LOG_LEVEL", c.LogLevel, fmt.Sprintf("expected one of %v", logging.LevelNames))
	}
	if err := c.Summarizer.Validate(); err != nil {
		return ErrInvalidSummarizer(err)
	}
	return nil
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ModeNames lists the built-in modes followed by the loaded profile names.
func (c *Config) ModeNames() []string {
	names := summarizer.Modes()
	for _, name := range c.Profiles.Names() {
		if !contains(names, name) {
			names = append(names, name)
		}
	}
	return names
}

// SummarizerFor resolves a mode or profile name requested at run time, such
// as the CLI --mode flag. An empty name returns the configured summarizer.
func (c *Config) SummarizerFor(mode string) (summarizer.Config, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	if mode == "" || mode == c.SummaryMode {
		return c.Summarizer, nil
	}
	cfg, err := c.Profiles.Resolve(mode)
	if err != nil {
		return summarizer.Config{}, ErrUnknownMode(mode, c.ModeNames())
	}
	return cfg, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
