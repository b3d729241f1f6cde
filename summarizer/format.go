package summarizer

import "strings"

// render formats selected sentences for presentation.
func render(sents []Sentence, format OutputFormat, marker string) string {
	if len(sents) == 0 {
		return ""
	}

	switch format {
	case FormatBullets:
		lines := make([]string, len(sents))
		for i, s := range sents {
			lines[i] = marker + collapseSpaces(s.Text)
		}
		return strings.Join(lines, "\n")
	default:
		texts := make([]string, len(sents))
		for i, s := range sents {
			texts[i] = s.Text
		}
		return collapseSpaces(strings.Join(texts, " "))
	}
}

// collapseSpaces replaces whitespace runs with one space and trims the ends.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateRunes returns at most max runes of s.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
