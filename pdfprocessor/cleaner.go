package pdfprocessor

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// Bullet glyphs and dashes used as list markers.
	bulletPattern = regexp.MustCompile(`[•◦●▪◆►–—]`)

	bracketPattern = regexp.MustCompile(`[\[\]{}()<>]`)

	// Horizontal rules drawn with underscores or equals signs.
	separatorPattern = regexp.MustCompile(`[_=]{2,}`)

	// Page numbers, ISBN groups and similar numbering: 12, 1.234, 978-85-7522.
	numericTokenPattern = regexp.MustCompile(`^[0-9]+(?:[.,/-][0-9]+)*$`)

	// Front and back matter markers. Everything from the first marker on is
	// publishing boilerplate. Markers must stand as whole words.
	boilerplatePattern = regexp.MustCompile(
		`(?i)(?:^|[^\p{L}\p{N}])(isbn|cip|catalogação|orientadora?|conselho\s+editorial)(?:$|[^\p{L}\p{N}])`)
)

// CleanText normalizes extracted PDF text for summarization.
//
// Steps, in order:
//  1. Unicode NFC normalization
//  2. bullet, bracket and separator characters become spaces
//  3. whitespace runs collapse to one space and standalone numeric tokens are dropped
//  4. the text is cut at the first boilerplate marker
//
// CleanText is idempotent and returns "" for blank input.
//
// Example:
//
//	CleanText("• Introdução\n\n12\nO método [ágil]") // "Introdução O método ágil"
func CleanText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = bulletPattern.ReplaceAllString(text, " ")
	text = bracketPattern.ReplaceAllString(text, " ")
	text = separatorPattern.ReplaceAllString(text, " ")
	text = dropNumericTokens(text)

	if loc := boilerplatePattern.FindStringSubmatchIndex(text); loc != nil {
		// The cut may split the last word; a numeric remainder is dropped too.
		text = dropNumericTokens(text[:loc[2]])
	}
	return text
}

// dropNumericTokens collapses whitespace and removes numeric-only words.
func dropNumericTokens(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, f := range fields {
		if numericTokenPattern.MatchString(f) {
			continue
		}
		kept = append(kept, f)
	}
	return strings.Join(kept, " ")
}
