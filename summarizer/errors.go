package summarizer

import "errors"

// ErrEmptyInput is returned when the text to summarize is blank.
// The accompanying summary is always empty.
var ErrEmptyInput = errors.New("empty input text")

// ErrNoSentences marks documents where no sentence passed the informative
// filter. It is never returned to callers; Result.Fallback records it instead.
var ErrNoSentences = errors.New("no informative sentences")

// ErrUnsupportedLanguage is returned when a pipeline is requested for a
// language without stop-words and a stemmer.
var ErrUnsupportedLanguage = errors.New("unsupported summarizer language")

// ErrInvalidConfig is wrapped by Config.Validate failures.
var ErrInvalidConfig = errors.New("invalid summarizer configuration")

// ErrUnknownMode is returned when a mode or profile name does not exist.
var ErrUnknownMode = errors.New("unknown summarizer mode")
