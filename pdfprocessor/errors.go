package pdfprocessor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPDFContent is returned when a PDF contains no extractable text.
	ErrNoPDFContent = errors.New("no text content found in PDF")

	// ErrEmptyPath is returned when an empty file path is provided.
	ErrEmptyPath = errors.New("empty PDF path provided")

	// ErrEmptyInputData is returned when the PDF content is zero bytes.
	ErrEmptyInputData = errors.New("empty PDF data provided")

	// ErrParserPanic is returned when the PDF parser panics on malformed input.
	ErrParserPanic = errors.New("PDF parser failed on malformed input")

	// ErrProcessorNotConfigured is returned when the processor is missing required configuration.
	ErrProcessorNotConfigured = errors.New("processor not properly configured")
)

// ExtractionError describes why text could not be extracted from a PDF.
// Callers treat it as a soft failure: the extracted text is empty and the
// request is rejected, the process keeps running.
type ExtractionError struct {
	// Op is the failing step: "open", "read", "page" or "extract".
	Op string

	// Path is the source file, empty for in-memory content.
	Path string

	Err error
}

func (e *ExtractionError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("pdf %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("pdf %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsExtractionError reports whether err is or wraps an *ExtractionError.
func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}
