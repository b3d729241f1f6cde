package summarizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// token is one word of a sentence after lowercasing.
type token struct {
	lower string
	lemma string // empty for non-alphabetic tokens
	stop  bool
}

// analyzer tokenizes and lemmatizes text for one document. It owns a caser
// and is therefore confined to a single call.
type analyzer struct {
	p     *Pipeline
	lower cases.Caser
	memo  map[string]string
}

func newAnalyzer(p *Pipeline) *analyzer {
	return &analyzer{
		p:     p,
		lower: p.newLower(),
		memo:  make(map[string]string),
	}
}

// tokens splits text into word tokens. Word boundaries are any rune that is
// not a letter, digit or combining mark.
func (a *analyzer) tokens(text string) []token {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r))
	})

	out := make([]token, 0, len(words))
	for _, w := range words {
		lw := a.lower.String(w)
		t := token{lower: lw, stop: a.p.IsStopWord(lw)}
		if isAlpha(lw) {
			t.lemma = a.lemma(lw)
		}
		out = append(out, t)
	}
	return out
}

func (a *analyzer) lemma(word string) string {
	if l, ok := a.memo[word]; ok {
		return l
	}
	l := a.p.Lemma(word)
	a.memo[word] = l
	return l
}

// keywordLemma normalizes a configured keyword the same way document words are.
func (a *analyzer) keywordLemma(keyword string) string {
	lw := a.lower.String(strings.TrimSpace(keyword))
	if !isAlpha(lw) {
		return ""
	}
	return a.lemma(lw)
}

// isAlpha reports whether s is non-empty and made of letters (and combining
// marks) only.
func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

// wordCount counts whitespace-separated words.
func wordCount(s string) int {
	return len(strings.Fields(s))
}

// isUpperCase reports whether s has letters and none of them is lowercase.
func isUpperCase(s string) bool {
	hasUpper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasUpper = true
		}
	}
	return hasUpper
}
