package summarizer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Fallback names the degraded path a summary took, if any.
type Fallback string

const (
	// FallbackNone means the summary is a ranked selection of sentences.
	FallbackNone Fallback = ""

	// FallbackLead means the document had no content words and the first
	// sentences were returned as they are.
	FallbackLead Fallback = "lead"

	// FallbackTruncated means no sentence was informative and the summary is a
	// prefix of the text.
	FallbackTruncated Fallback = "truncated"
)

// Result is a summary with the details of how it was produced.
type Result struct {
	// Text is the rendered summary.
	Text string

	// Sentences are the selected sentences in document order. Empty for the
	// truncation fallback.
	Sentences []Sentence

	// Requested is the count asked by the caller; Effective is the count used
	// after defaults and the dynamic policy.
	Requested int
	Effective int

	// CandidateCount is the number of segmented sentences and
	// InformativeCount how many passed the filter.
	CandidateCount   int
	InformativeCount int

	Fallback Fallback

	// Table is the document frequency table.
	Table FrequencyTable
}

// Summarizer produces extractive summaries.
//
// Thread-Safety:
//   - Summarizer is safe for concurrent use; all per-document state is local
//     to each call.
type Summarizer struct {
	config   Config
	pipeline *Pipeline
	logger   *zap.Logger
}

// NewSummarizer validates cfg and binds it to the shared pipeline of its
// language. A nil logger discards log output.
func NewSummarizer(cfg Config, logger *zap.Logger) (*Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p, err := DefaultPipeline(cfg.Language)
	if err != nil {
		return nil, err
	}
	return NewSummarizerWithPipeline(cfg, p, logger)
}

// NewSummarizerWithPipeline is NewSummarizer with an explicit pipeline.
func NewSummarizerWithPipeline(cfg Config, p *Pipeline, logger *zap.Logger) (*Summarizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: nil pipeline", ErrInvalidConfig)
	}
	if p.Language() != cfg.Language {
		return nil, fmt.Errorf("%w: pipeline language %q does not match %q", ErrInvalidConfig, p.Language(), cfg.Language)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if p.Fallback() {
		logger.Warn("sentence model unavailable, using rule-based sentencizer",
			zap.String("language", p.Language()),
			zap.Error(p.LoadError()))
	}
	return &Summarizer{config: cfg, pipeline: p, logger: logger}, nil
}

// Config returns the summarizer configuration.
func (s *Summarizer) Config() Config {
	return s.config
}

// Summarize returns the summary text of at most n sentences (the configured
// default when n <= 0). Blank text yields "" and ErrEmptyInput.
func (s *Summarizer) Summarize(text string, n int) (string, error) {
	res, err := s.SummarizeDetailed(text, n)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// SummarizeDetailed runs the whole pipeline:
//
//  1. segment the text and tokenize every sentence
//  2. build the document frequency table with the keyword bonus
//  3. drop non-informative sentences and weight the rest
//  4. cut long sentences to their first clause when configured
//  5. select by weight without near-duplicates, restore document order
//  6. render
//
// Documents without content words return their first sentences; documents
// without informative sentences return a prefix of the text.
func (s *Summarizer) SummarizeDetailed(text string, n int) (*Result, error) {
	text = collapseSpaces(text)
	if text == "" {
		return &Result{Requested: n}, ErrEmptyInput
	}

	a := newAnalyzer(s.pipeline)
	sents := segment(s.pipeline, a, text)

	res := &Result{
		Requested:      n,
		CandidateCount: len(sents),
	}
	res.Effective = effectiveCount(n, len(sents), s.config)
	res.Table = buildFrequencyTable(sents, s.config.DomainKeywords, s.config.KeywordBonus, a)

	if len(sents) == 0 {
		return s.truncate(res, text), nil
	}

	if len(res.Table) == 0 {
		lead := sents
		if len(lead) > res.Effective {
			lead = lead[:res.Effective]
		}
		res.Sentences = lead
		res.Text = render(lead, s.config.OutputFormat, s.config.BulletMarker)
		res.Fallback = FallbackLead
		s.logger.Debug("no content words, returning lead sentences",
			zap.Int("sentences", len(lead)))
		return res, nil
	}

	keywords := keywordLemmas(s.config.DomainKeywords, a)
	candidates := make([]Sentence, 0, len(sents))
	for _, sent := range sents {
		if !informative(sent, s.config, keywords, a) {
			continue
		}
		sent.Informative = true
		sent.Weight = res.Table.weight(sent)
		candidates = append(candidates, sent)
	}
	res.InformativeCount = len(candidates)

	if len(candidates) == 0 {
		return s.truncate(res, text), nil
	}

	if s.config.SplitLongSentences {
		candidates = shortenLong(candidates, s.config.LongSentenceWords, s.config.MinSentenceWords, res.Table, a)
	}
	selected := selectSentences(candidates, res.Effective, s.config.SimilarityThreshold)

	res.Sentences = selected
	res.Text = render(selected, s.config.OutputFormat, s.config.BulletMarker)

	s.logger.Debug("summary built",
		zap.Int("candidates", res.CandidateCount),
		zap.Int("informative", res.InformativeCount),
		zap.Int("selected", len(selected)),
		zap.Int("effective_count", res.Effective),
		zap.Int("vocabulary", len(res.Table)))
	return res, nil
}

func (s *Summarizer) truncate(res *Result, text string) *Result {
	res.Text = strings.TrimSpace(truncateRunes(text, s.config.FallbackChars))
	res.Fallback = FallbackTruncated
	s.logger.Debug("falling back to truncated text",
		zap.Error(ErrNoSentences),
		zap.Int("candidates", res.CandidateCount),
		zap.Int("chars", s.config.FallbackChars))
	return res
}

var (
	defaultOnce sync.Once
	defaultSum  *Summarizer
	defaultErr  error
)

// Summarize summarizes text with the default configuration. Any failure,
// including blank input, yields "".
func Summarize(text string, n int) string {
	defaultOnce.Do(func() {
		defaultSum, defaultErr = NewSummarizer(DefaultConfig(), nil)
	})
	if defaultErr != nil {
		return ""
	}
	out, err := defaultSum.Summarize(text, n)
	if err != nil && !errors.Is(err, ErrEmptyInput) {
		return ""
	}
	return out
}
