// Package summarizer builds extractive summaries from cleaned document text.
//
// config.go holds the tunables of the pipeline. The thresholds that used to be
// scattered constants are grouped into one Config with three named modes:
//   - classic: the first web release (3 sentences, loose dedup, no keyword boost)
//   - balanced: the default (keyword boost, moderate dedup)
//   - strict: aggressive filtering, bulleted output and length-aware counts
package summarizer

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat selects how selected sentences are rendered.
type OutputFormat string

const (
	// FormatPlain joins sentences with single spaces.
	FormatPlain OutputFormat = "plain"

	// FormatBullets renders one sentence per line prefixed by BulletMarker.
	FormatBullets OutputFormat = "bullets"
)

// Mode names accepted by ModeConfig.
const (
	ModeClassic  = "classic"
	ModeBalanced = "balanced"
	ModeStrict   = "strict"
)

// DefaultBlacklist lists authorship and front-matter keywords. A sentence
// containing any of them (case-insensitive) is not informative.
var DefaultBlacklist = []string{
	"autor",
	"orientador",
	"secretaria",
	"universidade",
	"catalogação",
	"editorial",
}

// DefaultDomainKeywords are boosted in the frequency table when present.
var DefaultDomainKeywords = []string{
	"scrum",
	"sprint",
	"product",
	"owner",
	"backlog",
	"ágil",
	"agile",
	"metodologia",
	"artefato",
	"cerimônia",
}

// Config holds the summarization tunables.
type Config struct {
	// Language selects stop-words, stemmer and sentence model ("pt" or "en").
	Language string `yaml:"language"`

	// NumSentences is the target sentence count used when callers pass n <= 0.
	NumSentences int `yaml:"num_sentencas"`

	// SimilarityThreshold rejects a candidate whose token overlap with an
	// accepted sentence reaches this ratio.
	SimilarityThreshold float64 `yaml:"similarity_threshold"`

	// MinSentenceWords is the informative-sentence word floor.
	MinSentenceWords int `yaml:"min_sentence_words"`

	// KeywordMinWords lowers the floor for sentences that mention a domain
	// keyword. Zero applies MinSentenceWords to every sentence.
	KeywordMinWords int `yaml:"keyword_min_words"`

	// Blacklist holds case-insensitive substrings that disqualify a sentence.
	Blacklist []string `yaml:"blacklist"`

	// DomainKeywords receive KeywordBonus in the frequency table.
	DomainKeywords []string `yaml:"domain_keywords"`

	// KeywordBonus is added to the count of each domain keyword present.
	KeywordBonus int `yaml:"keyword_bonus"`

	// SplitLongSentences keeps only the first clause of long selections.
	SplitLongSentences bool `yaml:"split_long_sentences"`

	// LongSentenceWords is the word count above which a sentence is long.
	LongSentenceWords int `yaml:"long_sentence_words"`

	// DynamicCount raises n to sentence_count/10, clamped to
	// [MinSentences, MaxSentences].
	DynamicCount bool `yaml:"dynamic_count"`
	MinSentences int  `yaml:"min_sentences"`
	MaxSentences int  `yaml:"max_sentences"`

	// FallbackChars is the rune length of the truncation fallback.
	FallbackChars int `yaml:"fallback_chars"`

	OutputFormat OutputFormat `yaml:"output_format"`
	BulletMarker string       `yaml:"bullet_marker"`
}

// DefaultConfig returns the balanced mode.
func DefaultConfig() Config {
	cfg, _ := ModeConfig(ModeBalanced)
	return cfg
}

// ModeConfig returns the built-in configuration for a mode name.
func ModeConfig(mode string) (Config, error) {
	base := Config{
		Language:          "pt",
		Blacklist:         append([]string(nil), DefaultBlacklist...),
		KeywordBonus:      3,
		LongSentenceWords: 25,
		MinSentences:      3,
		MaxSentences:      10,
		FallbackChars:     1000,
		OutputFormat:      FormatPlain,
		BulletMarker:      "• ",
	}

	switch strings.ToLower(strings.TrimSpace(mode)) {
	case ModeClassic:
		base.NumSentences = 3
		base.SimilarityThreshold = 0.85
		base.MinSentenceWords = 5
	case ModeBalanced, "":
		base.NumSentences = 5
		base.SimilarityThreshold = 0.6
		base.MinSentenceWords = 5
		base.DomainKeywords = append([]string(nil), DefaultDomainKeywords...)
	case ModeStrict:
		base.NumSentences = 5
		base.SimilarityThreshold = 0.5
		base.MinSentenceWords = 8
		base.KeywordMinWords = 5
		base.DomainKeywords = append([]string(nil), DefaultDomainKeywords...)
		base.SplitLongSentences = true
		base.DynamicCount = true
		base.OutputFormat = FormatBullets
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return base, nil
}

// Modes lists the built-in mode names.
func Modes() []string {
	return []string{ModeClassic, ModeBalanced, ModeStrict}
}

// Validate checks the configuration for values the pipeline cannot honor.
func (c Config) Validate() error {
	if _, ok := stopWordLists[c.Language]; !ok {
		return fmt.Errorf("%w: language %q", ErrInvalidConfig, c.Language)
	}
	if c.NumSentences < 1 {
		return fmt.Errorf("%w: num_sentencas must be at least 1, got %d", ErrInvalidConfig, c.NumSentences)
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("%w: similarity_threshold must be in (0, 1], got %v", ErrInvalidConfig, c.SimilarityThreshold)
	}
	if c.MinSentenceWords < 1 {
		return fmt.Errorf("%w: min_sentence_words must be at least 1, got %d", ErrInvalidConfig, c.MinSentenceWords)
	}
	if c.KeywordMinWords < 0 {
		return fmt.Errorf("%w: keyword_min_words must not be negative", ErrInvalidConfig)
	}
	if c.KeywordBonus < 0 {
		return fmt.Errorf("%w: keyword_bonus must not be negative", ErrInvalidConfig)
	}
	if c.SplitLongSentences && c.LongSentenceWords < 1 {
		return fmt.Errorf("%w: long_sentence_words must be at least 1", ErrInvalidConfig)
	}
	if c.DynamicCount && (c.MinSentences < 1 || c.MaxSentences < c.MinSentences) {
		return fmt.Errorf("%w: sentence range [%d, %d] is empty", ErrInvalidConfig, c.MinSentences, c.MaxSentences)
	}
	if c.FallbackChars < 1 {
		return fmt.Errorf("%w: fallback_chars must be at least 1", ErrInvalidConfig)
	}
	switch c.OutputFormat {
	case FormatPlain, FormatBullets:
	default:
		return fmt.Errorf("%w: output_format %q", ErrInvalidConfig, c.OutputFormat)
	}
	return nil
}

// profileFile is the on-disk layout of a profiles file:
//
//	profiles:
//	  agil:
//	    base: strict
//	    num_sentencas: 4
//	    domain_keywords: [scrum, kanban]
type profileFile struct {
	Profiles map[string]yaml.Node `yaml:"profiles"`
}

// Profiles maps profile names to configurations.
type Profiles map[string]Config

// LoadProfiles reads named configurations from a YAML file. Each profile
// starts from its "base" mode (balanced when omitted) and overrides only the
// keys it sets.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles file: %w", err)
	}
	return ParseProfiles(data)
}

// ParseProfiles decodes profiles from YAML bytes. See LoadProfiles.
func ParseProfiles(data []byte) (Profiles, error) {
	var file profileFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse profiles: %w", err)
	}

	profiles := make(Profiles, len(file.Profiles))
	for key, node := range file.Profiles {
		name := profileName(key)
		if name == "" {
			return nil, fmt.Errorf("%w: empty profile name", ErrInvalidConfig)
		}
		if _, dup := profiles[name]; dup {
			return nil, fmt.Errorf("%w: profile %q defined twice", ErrInvalidConfig, name)
		}
		var header struct {
			Base string `yaml:"base"`
		}
		if err := node.Decode(&header); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}

		cfg, err := ModeConfig(header.Base)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := node.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[name] = cfg
	}
	return profiles, nil
}

// profileName is the lookup key of a profile or mode: names match
// case-insensitively and ignore surrounding space.
func profileName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Resolve returns the configuration for name, looking at profiles first and
// at the built-in modes second.
func (p Profiles) Resolve(name string) (Config, error) {
	if cfg, ok := p[profileName(name)]; ok {
		return cfg, nil
	}
	return ModeConfig(name)
}

// Names returns the profile names in sorted order.
func (p Profiles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
