package summarizer

import (
	"sort"
	"strings"
	"unicode"
)

// effectiveCount resolves the number of sentences to select for a document
// with total segmented sentences. A positive n is an upper bound and is used
// as is; the dynamic policy only scales the configured default.
func effectiveCount(n, total int, cfg Config) int {
	if n > 0 {
		return n
	}
	n = cfg.NumSentences
	if !cfg.DynamicCount {
		return n
	}
	if scaled := total / 10; scaled > n {
		n = scaled
	}
	if n > cfg.MaxSentences {
		n = cfg.MaxSentences
	}
	if n < cfg.MinSentences {
		n = cfg.MinSentences
	}
	return n
}

// overlap is |c ∩ a| / |c| over content-lemma sets. An empty candidate set
// overlaps nothing.
func overlap(candidate, accepted map[string]struct{}) float64 {
	if len(candidate) == 0 {
		return 0
	}
	shared := 0
	for lemma := range candidate {
		if _, ok := accepted[lemma]; ok {
			shared++
		}
	}
	return float64(shared) / float64(len(candidate))
}

// selectSentences picks at most n candidates by descending weight, skipping
// near-duplicates, and returns them in document order.
func selectSentences(candidates []Sentence, n int, threshold float64) []Sentence {
	ranked := make([]Sentence, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})

	selected := make([]Sentence, 0, n)
	for _, c := range ranked {
		if len(selected) >= n {
			break
		}
		redundant := false
		for _, s := range selected {
			if overlap(c.lemmaSet, s.lemmaSet) >= threshold {
				redundant = true
				break
			}
		}
		if !redundant {
			selected = append(selected, c)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		return selected[i].Position < selected[j].Position
	})
	return selected
}

// shortenLong replaces candidates longer than maxWords with their first
// clause when that clause still has at least minWords words. The clause is a
// prefix of the sentence, so the text stays verbatim. Tokens, lemma set and
// weight are recomputed from the clause, so selection and dedup judge the text
// that will be shown. The input slice is not modified.
func shortenLong(sents []Sentence, maxWords, minWords int, table FrequencyTable, a *analyzer) []Sentence {
	out := make([]Sentence, len(sents))
	copy(out, sents)

	seen := make(map[string]bool, len(out))
	for _, s := range out {
		seen[s.Text] = true
	}

	for i, s := range out {
		if s.Words <= maxWords {
			continue
		}
		clause := firstClause(s.Text)
		words := wordCount(clause)
		if clause == s.Text || words < minWords || seen[clause] {
			continue
		}
		seen[clause] = true

		s.Text = clause
		s.Words = words
		s.tokens = a.tokens(clause)
		s.lemmaSet = contentLemmas(s.tokens)
		s.Weight = table.weight(s)
		out[i] = s
	}
	return out
}

// firstClause cuts s at the first clause break followed by a space: a
// terminal mark (kept) or a semicolon or colon (dropped, so the clause ends
// on its last word).
func firstClause(s string) string {
	runes := []rune(s)
	for i := 0; i < len(runes)-1; i++ {
		if !unicode.IsSpace(runes[i+1]) {
			continue
		}
		switch runes[i] {
		case '.', '!', '?':
			return strings.TrimSpace(string(runes[:i+1]))
		case ';', ':':
			return strings.TrimSpace(string(runes[:i]))
		}
	}
	return s
}
