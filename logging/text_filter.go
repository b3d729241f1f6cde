package logging

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// RedactedPlaceholder is the string used to replace session identifiers
const RedactedPlaceholder = "[REDACTED]"

// DefaultPreviewRunes is how much of a document text field is kept in logs.
const DefaultPreviewRunes = 80

// documentFieldKeys name fields that carry document or summary text.
var documentFieldKeys = []string{
	"text",
	"texto",
	"content",
	"summary",
	"resumo",
}

// secretFieldKeys name fields whose values must never be logged.
var secretFieldKeys = []string{
	"SESSION",
	"COOKIE",
	"SECRET",
}

// sessionCookiePattern matches the summary session cookie in header dumps.
var sessionCookiePattern = regexp.MustCompile(`(resumo_session=)[^;\s]+`)

// TextPreview collapses whitespace and keeps at most max runes of text,
// marking a cut with "…".
//
// Example:
//
//	TextPreview("O Scrum   é um framework ágil.", 8) // "O Scrum…"
func TextPreview(text string, max int) string {
	text = strings.Join(strings.Fields(text), " ")
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// IsDocumentField reports whether a field name carries document text.
//
// Example:
//
//	IsDocumentField("summary_text") // true
//	IsDocumentField("pages")        // false
func IsDocumentField(fieldName string) bool {
	lower := strings.ToLower(fieldName)
	for _, key := range documentFieldKeys {
		if strings.Contains(lower, key) {
			return true
		}
	}
	return false
}

// IsSecretField reports whether a field name carries a session identifier or
// another secret.
func IsSecretField(fieldName string) bool {
	upper := strings.ToUpper(fieldName)
	for _, key := range secretFieldKeys {
		if strings.Contains(upper, key) {
			return true
		}
	}
	return false
}

// RedactSessionCookies replaces session cookie values inside a string.
func RedactSessionCookies(value string) string {
	return sessionCookiePattern.ReplaceAllString(value, "${1}"+RedactedPlaceholder)
}

// filterField shortens document text and hides secrets in a single field.
func filterField(field zap.Field) zap.Field {
	if IsSecretField(field.Key) {
		return zap.String(field.Key, RedactedPlaceholder)
	}
	if field.Type != zapcore.StringType {
		return field
	}
	value := field.String
	if IsDocumentField(field.Key) {
		value = TextPreview(value, DefaultPreviewRunes)
	}
	value = RedactSessionCookies(value)
	if value != field.String {
		return zap.String(field.Key, value)
	}
	return field
}

func filterFields(fields []zap.Field) []zap.Field {
	if len(fields) == 0 {
		return fields
	}
	result := make([]zap.Field, len(fields))
	for i, field := range fields {
		result[i] = filterField(field)
	}
	return result
}

// filterKeysAndValues applies the same rules to sugared key-value pairs.
func filterKeysAndValues(keysAndValues []interface{}) []interface{} {
	if len(keysAndValues) == 0 {
		return keysAndValues
	}

	result := make([]interface{}, len(keysAndValues))
	copy(result, keysAndValues)

	// Even indices are keys, odd indices are values
	for i := 0; i < len(result)-1; i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if IsSecretField(key) {
			result[i+1] = RedactedPlaceholder
			continue
		}
		value, ok := result[i+1].(string)
		if !ok {
			continue
		}
		if IsDocumentField(key) {
			value = TextPreview(value, DefaultPreviewRunes)
		}
		result[i+1] = RedactSessionCookies(value)
	}
	return result
}
