package summarizer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestModeConfig(t *testing.T) {
	tests := []struct {
		mode          string
		wantSentences int
		wantThreshold float64
		wantMinWords  int
		wantKwWords   int
		wantFormat    OutputFormat
		wantKeywords  bool
	}{
		{ModeClassic, 3, 0.85, 5, 0, FormatPlain, false},
		{ModeBalanced, 5, 0.6, 5, 0, FormatPlain, true},
		{ModeStrict, 5, 0.5, 8, 5, FormatBullets, true},
		{"", 5, 0.6, 5, 0, FormatPlain, true},
		{" Strict ", 5, 0.5, 8, 5, FormatBullets, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg, err := ModeConfig(tt.mode)
			if err != nil {
				t.Fatalf("ModeConfig(%q) failed: %v", tt.mode, err)
			}
			if cfg.NumSentences != tt.wantSentences {
				t.Errorf("NumSentences = %d, want %d", cfg.NumSentences, tt.wantSentences)
			}
			if cfg.SimilarityThreshold != tt.wantThreshold {
				t.Errorf("SimilarityThreshold = %v, want %v", cfg.SimilarityThreshold, tt.wantThreshold)
			}
			if cfg.MinSentenceWords != tt.wantMinWords {
				t.Errorf("MinSentenceWords = %d, want %d", cfg.MinSentenceWords, tt.wantMinWords)
			}
			if cfg.KeywordMinWords != tt.wantKwWords {
				t.Errorf("KeywordMinWords = %d, want %d", cfg.KeywordMinWords, tt.wantKwWords)
			}
			if cfg.OutputFormat != tt.wantFormat {
				t.Errorf("OutputFormat = %q, want %q", cfg.OutputFormat, tt.wantFormat)
			}
			if (len(cfg.DomainKeywords) > 0) != tt.wantKeywords {
				t.Errorf("DomainKeywords = %v, want keywords=%v", cfg.DomainKeywords, tt.wantKeywords)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("built-in mode does not validate: %v", err)
			}
		})
	}
}

func TestModeConfig_Unknown(t *testing.T) {
	if _, err := ModeConfig("verbose"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ModeConfig(verbose) error = %v, want ErrUnknownMode", err)
	}
}

func TestModeConfig_ReturnsIndependentSlices(t *testing.T) {
	a := DefaultConfig()
	a.Blacklist[0] = "changed"
	a.DomainKeywords[0] = "changed"

	b := DefaultConfig()
	if b.Blacklist[0] != DefaultBlacklist[0] {
		t.Errorf("Blacklist shared between configs: %q", b.Blacklist[0])
	}
	if b.DomainKeywords[0] != DefaultDomainKeywords[0] {
		t.Errorf("DomainKeywords shared between configs: %q", b.DomainKeywords[0])
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"unsupported language", func(c *Config) { c.Language = "xx" }},
		{"zero sentences", func(c *Config) { c.NumSentences = 0 }},
		{"zero threshold", func(c *Config) { c.SimilarityThreshold = 0 }},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }},
		{"zero min words", func(c *Config) { c.MinSentenceWords = 0 }},
		{"negative bonus", func(c *Config) { c.KeywordBonus = -1 }},
		{"negative keyword floor", func(c *Config) { c.KeywordMinWords = -1 }},
		{"split without length", func(c *Config) { c.SplitLongSentences = true; c.LongSentenceWords = 0 }},
		{"empty dynamic range", func(c *Config) { c.DynamicCount = true; c.MinSentences = 5; c.MaxSentences = 2 }},
		{"zero fallback", func(c *Config) { c.FallbackChars = 0 }},
		{"unknown format", func(c *Config) { c.OutputFormat = "html" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

const profilesYAML = `
profiles:
  agil:
    base: strict
    num_sentencas: 4
    domain_keywords: [scrum, kanban]
  curto:
    num_sentencas: 2
    output_format: bullets
`

func TestParseProfiles(t *testing.T) {
	profiles, err := ParseProfiles([]byte(profilesYAML))
	if err != nil {
		t.Fatalf("ParseProfiles failed: %v", err)
	}

	agil, ok := profiles["agil"]
	if !ok {
		t.Fatal("profile agil missing")
	}
	if agil.NumSentences != 4 {
		t.Errorf("agil NumSentences = %d, want 4", agil.NumSentences)
	}
	if agil.MinSentenceWords != 8 {
		t.Errorf("agil MinSentenceWords = %d, want 8 from strict base", agil.MinSentenceWords)
	}
	if len(agil.DomainKeywords) != 2 || agil.DomainKeywords[1] != "kanban" {
		t.Errorf("agil DomainKeywords = %v", agil.DomainKeywords)
	}

	curto := profiles["curto"]
	if curto.SimilarityThreshold != 0.6 {
		t.Errorf("curto SimilarityThreshold = %v, want balanced 0.6", curto.SimilarityThreshold)
	}
	if curto.OutputFormat != FormatBullets {
		t.Errorf("curto OutputFormat = %q, want bullets", curto.OutputFormat)
	}

	if names := profiles.Names(); len(names) != 2 || names[0] != "agil" {
		t.Errorf("Names() = %v", names)
	}
}

func TestParseProfiles_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "profiles: [a"},
		{"unknown base", "profiles:\n  x:\n    base: nope\n"},
		{"invalid values", "profiles:\n  x:\n    similarity_threshold: 2\n"},
		{"names equal ignoring case", "profiles:\n  agil:\n    num_sentencas: 2\n  Agil:\n    num_sentencas: 3\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseProfiles([]byte(tt.yaml)); err == nil {
				t.Error("ParseProfiles should fail")
			}
		})
	}
}

func TestLoadProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	if err := os.WriteFile(path, []byte(profilesYAML), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	profiles, err := LoadProfiles(path)
	if err != nil {
		t.Fatalf("LoadProfiles failed: %v", err)
	}

	cfg, err := profiles.Resolve("curto")
	if err != nil {
		t.Fatalf("Resolve(curto) failed: %v", err)
	}
	if cfg.NumSentences != 2 {
		t.Errorf("NumSentences = %d, want 2", cfg.NumSentences)
	}

	cfg, err = profiles.Resolve(ModeClassic)
	if err != nil {
		t.Fatalf("Resolve(classic) failed: %v", err)
	}
	if cfg.NumSentences != 3 {
		t.Errorf("classic NumSentences = %d, want 3", cfg.NumSentences)
	}

	if _, err := LoadProfiles(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadProfiles should fail for a missing file")
	}
}

func TestProfiles_ResolveNil(t *testing.T) {
	var profiles Profiles
	if _, err := profiles.Resolve(ModeStrict); err != nil {
		t.Errorf("nil Profiles should resolve built-in modes: %v", err)
	}
}

func TestParseProfiles_NamesIgnoreCase(t *testing.T) {
	profiles, err := ParseProfiles([]byte("profiles:\n  Agil:\n    base: strict\n    num_sentencas: 4\n"))
	if err != nil {
		t.Fatalf("ParseProfiles failed: %v", err)
	}

	if names := profiles.Names(); len(names) != 1 || names[0] != "agil" {
		t.Errorf("Names() = %v, want [agil]", names)
	}
	for _, name := range []string{"agil", "Agil", " AGIL "} {
		cfg, err := profiles.Resolve(name)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", name, err)
			continue
		}
		if cfg.NumSentences != 4 {
			t.Errorf("Resolve(%q).NumSentences = %d, want 4", name, cfg.NumSentences)
		}
	}
}
