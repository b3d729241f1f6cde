package summarizer

// FrequencyTable maps lemmas to their occurrence count in a document. Keys
// are lowercase alphabetic lemmas of non-stop words.
type FrequencyTable map[string]int

// buildFrequencyTable counts content lemmas across every sentence of the
// document, then adds bonus to each keyword lemma already present.
func buildFrequencyTable(sents []Sentence, keywords []string, bonus int, a *analyzer) FrequencyTable {
	table := make(FrequencyTable)
	for _, s := range sents {
		for _, t := range s.tokens {
			if t.lemma == "" || t.stop {
				continue
			}
			table[t.lemma]++
		}
	}

	if bonus == 0 {
		return table
	}
	for lemma := range keywordLemmas(keywords, a) {
		if _, ok := table[lemma]; ok {
			table[lemma] += bonus
		}
	}
	return table
}

// keywordLemmas normalizes configured keywords into a lemma set. Keywords
// that are not a single alphabetic word are dropped.
func keywordLemmas(keywords []string, a *analyzer) map[string]struct{} {
	set := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		if lemma := a.keywordLemma(kw); lemma != "" {
			set[lemma] = struct{}{}
		}
	}
	return set
}

// weight sums the table counts of the alphabetic tokens of a sentence.
// Lemmas missing from the table contribute nothing.
func (t FrequencyTable) weight(s Sentence) int {
	total := 0
	for _, tok := range s.tokens {
		if tok.lemma == "" {
			continue
		}
		total += t[tok.lemma]
	}
	return total
}
