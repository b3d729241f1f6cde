package summarizer

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/data"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Segmenter splits text into sentence strings in document order. Every
// returned string is a trimmed, verbatim span of the input.
type Segmenter interface {
	Split(text string) []string
}

// languageSpec wires a language code to its model, stemmer and casing rules.
type languageSpec struct {
	model string
	tag   language.Tag
	stem  func(env *snowballstem.Env) bool
}

var languages = map[string]languageSpec{
	"pt": {model: "portuguese", tag: language.BrazilianPortuguese, stem: portuguese.Stem},
	"en": {model: "english", tag: language.English, stem: english.Stem},
}

// loadTraining returns the Punkt training data for a model name.
// Replaced in tests to exercise the sentencizer fallback.
var loadTraining = func(model string) ([]byte, error) {
	return data.Asset("data/" + model + ".json")
}

// Pipeline bundles the language resources used for one language: sentence
// segmentation, lemmatization and stop-words. It is read-only after
// construction and shared between summarizers.
type Pipeline struct {
	lang      string
	tag       language.Tag
	segmenter Segmenter
	stem      func(env *snowballstem.Env) bool
	stopWords map[string]struct{}
	fallback  bool
	loadErr   error
}

// NewPipeline builds a pipeline for lang. It tries the trained Punkt model
// first and falls back to the rule-based sentencizer when the model cannot be
// loaded; the failure is kept in LoadError. Only an unsupported language is an
// error.
func NewPipeline(lang string) (*Pipeline, error) {
	spec, ok := languages[lang]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, lang)
	}

	p := &Pipeline{
		lang:      lang,
		tag:       spec.tag,
		stem:      spec.stem,
		stopWords: stopWordSet(lang),
	}

	seg, err := newPunktSegmenter(spec.model)
	if err != nil {
		p.segmenter = Sentencizer{}
		p.fallback = true
		p.loadErr = err
	} else {
		p.segmenter = seg
	}
	return p, nil
}

// NewPipelineWithSegmenter builds a pipeline with an explicit segmenter.
func NewPipelineWithSegmenter(lang string, seg Segmenter) (*Pipeline, error) {
	p, err := NewPipeline(lang)
	if err != nil {
		return nil, err
	}
	p.segmenter = seg
	_, p.fallback = seg.(Sentencizer)
	return p, nil
}

type lazyPipeline struct {
	once sync.Once
	p    *Pipeline
	err  error
}

var (
	pipelinesMu sync.Mutex
	pipelines   = map[string]*lazyPipeline{}
)

// DefaultPipeline returns the process-wide pipeline for lang, loading it on
// first use.
func DefaultPipeline(lang string) (*Pipeline, error) {
	pipelinesMu.Lock()
	lp, ok := pipelines[lang]
	if !ok {
		lp = &lazyPipeline{}
		pipelines[lang] = lp
	}
	pipelinesMu.Unlock()

	lp.once.Do(func() {
		lp.p, lp.err = NewPipeline(lang)
	})
	return lp.p, lp.err
}

// Language returns the language code.
func (p *Pipeline) Language() string { return p.lang }

// Fallback reports whether the rule-based sentencizer is in use.
func (p *Pipeline) Fallback() bool { return p.fallback }

// LoadError returns why the sentence model could not be loaded, if it wasn't.
func (p *Pipeline) LoadError() error { return p.loadErr }

// Split segments text into sentences.
func (p *Pipeline) Split(text string) []string {
	return p.segmenter.Split(text)
}

// IsStopWord reports whether a lowercase word is a stop-word.
func (p *Pipeline) IsStopWord(word string) bool {
	_, ok := p.stopWords[word]
	return ok
}

// Lemma returns the normalized base form of a lowercase alphabetic word. The
// result is always lowercase and alphabetic; when the stemmer produces
// anything else the word itself is used.
func (p *Pipeline) Lemma(word string) string {
	env := snowballstem.NewEnv(word)
	p.stem(env)
	stem := env.Current()
	if stem == "" || !isAlpha(stem) {
		return word
	}
	return stem
}

// newLower returns a lowercase caser for the pipeline language. Casers are
// stateful, so each analysis gets its own.
func (p *Pipeline) newLower() cases.Caser {
	return cases.Lower(p.tag)
}

// punktSegmenter wraps the trained Punkt tokenizer.
type punktSegmenter struct {
	mu        sync.Mutex
	tokenizer *sentences.DefaultSentenceTokenizer
}

func newPunktSegmenter(model string) (*punktSegmenter, error) {
	raw, err := loadTraining(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s sentence model: %w", model, err)
	}
	training, err := sentences.LoadTraining(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s sentence model: %w", model, err)
	}
	return &punktSegmenter{tokenizer: sentences.NewSentenceTokenizer(training)}, nil
}

// Split implements Segmenter.
func (s *punktSegmenter) Split(text string) []string {
	// The tokenizer is not documented as safe for concurrent use.
	s.mu.Lock()
	sents := s.tokenizer.Tokenize(text)
	s.mu.Unlock()

	out := make([]string, 0, len(sents))
	for _, sent := range sents {
		if t := strings.TrimSpace(sent.Text); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Sentencizer is the rule-based segmenter used when no trained model is
// available. It ends a sentence after a run of terminal punctuation (and any
// closing quotes or brackets) that is followed by whitespace or end of text.
type Sentencizer struct{}

// Split implements Segmenter.
func (Sentencizer) Split(text string) []string {
	runes := []rune(text)
	var out []string
	start := 0

	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		end := i + 1
		for end < len(runes) && (isTerminal(runes[end]) || isCloser(runes[end])) {
			end++
		}
		if end < len(runes) && !unicode.IsSpace(runes[end]) {
			i = end - 1
			continue
		}
		if s := strings.TrimSpace(string(runes[start:end])); s != "" {
			out = append(out, s)
		}
		start = end
		i = end - 1
	}

	if start < len(runes) {
		if s := strings.TrimSpace(string(runes[start:])); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func isTerminal(r rune) bool {
	switch r {
	case '.', '!', '?', '…':
		return true
	}
	return false
}

func isCloser(r rune) bool {
	switch r {
	case '"', '\'', ')', ']', '”', '’', '»':
		return true
	}
	return false
}
