package pdfprocessor

import "strings"

// CountWords returns the number of whitespace-separated words in text.
//
// Example:
//
//	CountWords("O Scrum é ágil.") // 4
//	CountWords("")                // 0
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SafeFilename reduces an uploaded file name to its base name without path
// separators, so it can be embedded in a server-side file name.
//
// Example:
//
//	SafeFilename("../../etc/relatório.pdf") // "relatório.pdf"
//	SafeFilename("")                         // "upload.pdf"
func SafeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "upload.pdf"
	}
	return name
}

// HasPDFExtension reports whether name ends in ".pdf", ignoring case.
func HasPDFExtension(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
