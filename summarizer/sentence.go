package summarizer

import "strings"

// Sentence is a span of the cleaned document ending at a sentence boundary.
type Sentence struct {
	// Text is the verbatim sentence text.
	Text string

	// Position is the 0-based ordinal of the sentence in the document.
	Position int

	// Words is the whitespace-separated word count.
	Words int

	// Informative is false for headings, short fragments and front-matter.
	Informative bool

	// Weight is the sum of frequency-table counts of the sentence lemmas.
	Weight int

	tokens   []token
	lemmaSet map[string]struct{}
}

// segment splits text into sentences and tokenizes each one. Positions are
// assigned before filtering so they stay unique and increasing.
func segment(p *Pipeline, a *analyzer, text string) []Sentence {
	parts := p.Split(text)
	out := make([]Sentence, 0, len(parts))
	for i, part := range parts {
		s := Sentence{
			Text:     part,
			Position: i,
			Words:    wordCount(part),
			tokens:   a.tokens(part),
		}
		s.lemmaSet = contentLemmas(s.tokens)
		out = append(out, s)
	}
	return out
}

// contentLemmas returns the set of lemmas of alphabetic non-stop tokens.
func contentLemmas(tokens []token) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if t.lemma == "" || t.stop {
			continue
		}
		set[t.lemma] = struct{}{}
	}
	return set
}

// informative applies the filtering policy: a sentence is dropped when it is
// too short, entirely upper-case, or mentions a blacklisted keyword.
// keywords holds the domain keyword lemmas that unlock cfg.KeywordMinWords.
func informative(s Sentence, cfg Config, keywords map[string]struct{}, a *analyzer) bool {
	if s.Words < minWords(s, cfg, keywords) {
		return false
	}
	if isUpperCase(s.Text) {
		return false
	}
	lower := a.lower.String(s.Text)
	for _, kw := range cfg.Blacklist {
		kw = a.lower.String(strings.TrimSpace(kw))
		if kw != "" && strings.Contains(lower, kw) {
			return false
		}
	}
	return true
}

// minWords is the word floor for s: KeywordMinWords when it is lower than
// MinSentenceWords and s mentions a domain keyword.
func minWords(s Sentence, cfg Config, keywords map[string]struct{}) int {
	floor := cfg.MinSentenceWords
	if cfg.KeywordMinWords <= 0 || cfg.KeywordMinWords >= floor {
		return floor
	}
	for lemma := range s.lemmaSet {
		if _, ok := keywords[lemma]; ok {
			return cfg.KeywordMinWords
		}
	}
	return floor
}
