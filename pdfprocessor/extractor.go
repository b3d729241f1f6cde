// Package pdfprocessor turns uploaded PDF documents into clean plain text and
// hands it to the extractive summarizer.
//
// extractor.go implements the Extractor that reads the PDF text layer.
// It uses the ledongthuc/pdf library for PDF parsing and composes:
//   - cleaner.go: CleanText for removing layout noise and boilerplate
//   - atoms.go: CountWords for extraction statistics
package pdfprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// PageResult represents extracted text from a single PDF page.
type PageResult struct {
	// PageNumber is the 1-indexed page number
	PageNumber int

	// Text is the raw extracted text content
	Text string

	// Words is the number of whitespace-separated words on the page
	Words int

	// Error is non-nil if extraction failed for this page
	Error error
}

// ExtractionResult contains the complete result of PDF text extraction.
type ExtractionResult struct {
	// RawText is the page texts joined by the page separator, before cleaning
	RawText string

	// Text is the cleaned text handed to the summarizer. Equal to RawText
	// when cleaning is disabled.
	Text string

	// TotalPages is the number of pages in the PDF
	TotalPages int

	// ExtractedPages is the number of pages that yielded text
	ExtractedPages int

	// SkippedPages is the number of pages that were skipped (empty or error)
	SkippedPages int

	// Words is the word count of Text
	Words int

	// Pages contains per-page extraction results
	Pages []PageResult

	// Errors contains any errors encountered during extraction
	Errors []error
}

// ExtractorConfig holds configuration for PDF text extraction.
type ExtractorConfig struct {
	// SkipEmptyPages when true excludes pages with no text from results
	SkipEmptyPages bool

	// PageSeparator is the string inserted between page texts
	// Defaults to "\n\n" if empty
	PageSeparator string

	// ContinueOnError when true continues extraction even if some pages fail
	ContinueOnError bool

	// MaxPages limits extraction to first N pages (0 for all pages)
	MaxPages int

	// Clean applies CleanText to the joined page text
	Clean bool
}

// DefaultExtractorConfig returns sensible default configuration.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		SkipEmptyPages:  true,
		PageSeparator:   "\n\n",
		ContinueOnError: true,
		MaxPages:        0,
		Clean:           true,
	}
}

// Extractor extracts text from PDF files.
//
// Thread-Safety:
//   - Extractor holds no per-document state and is safe for concurrent use.
type Extractor struct {
	config ExtractorConfig
	logger *zap.Logger
}

// NewExtractor creates a new Extractor with the given configuration.
// A nil logger discards log output.
func NewExtractor(config ExtractorConfig, logger *zap.Logger) *Extractor {
	if config.PageSeparator == "" {
		config.PageSeparator = "\n\n"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{config: config, logger: logger}
}

// NewDefaultExtractor creates an Extractor with default configuration.
func NewDefaultExtractor() *Extractor {
	return NewExtractor(DefaultExtractorConfig(), nil)
}

// Extract extracts text from a PDF file at the given path.
// Every failure is an *ExtractionError.
//
// Example:
//
//	extractor := NewDefaultExtractor()
//	result, err := extractor.Extract("/path/to/document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Text)
func (e *Extractor) Extract(pdfPath string) (result *ExtractionResult, err error) {
	if pdfPath == "" {
		return nil, &ExtractionError{Op: "open", Err: ErrEmptyPath}
	}
	defer e.recoverParser("open", pdfPath, &result, &err)

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, &ExtractionError{Op: "open", Path: pdfPath, Err: err}
	}
	defer f.Close()

	result, err = e.extractFromReader(r)
	if ee, ok := err.(*ExtractionError); ok {
		ee.Path = pdfPath
	}
	return result, err
}

// ExtractBytes extracts text from PDF content held in memory.
//
// Example:
//
//	data, _ := os.ReadFile("document.pdf")
//	result, err := NewDefaultExtractor().ExtractBytes(data)
func (e *Extractor) ExtractBytes(data []byte) (result *ExtractionResult, err error) {
	if len(data) == 0 {
		return nil, &ExtractionError{Op: "read", Err: ErrEmptyInputData}
	}
	defer e.recoverParser("read", "", &result, &err)

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ExtractionError{Op: "read", Err: err}
	}
	return e.extractFromReader(r)
}

// ExtractFromReader extracts text from a PDF reader.
// This is useful when the PDF is already loaded or comes from a non-file source.
func (e *Extractor) ExtractFromReader(r *pdf.Reader) (result *ExtractionResult, err error) {
	if r == nil {
		return nil, &ExtractionError{Op: "read", Err: errors.New("nil PDF reader provided")}
	}
	defer e.recoverParser("extract", "", &result, &err)
	return e.extractFromReader(r)
}

// recoverParser turns a panic inside the PDF library into an
// *ExtractionError wrapping ErrParserPanic.
func (e *Extractor) recoverParser(op, path string, result **ExtractionResult, err *error) {
	if r := recover(); r != nil {
		e.logger.Warn("PDF parser panic recovered",
			zap.String("op", op),
			zap.String("path", path),
			zap.Any("panic", r))
		*result = nil
		*err = &ExtractionError{Op: op, Path: path, Err: fmt.Errorf("%w: %v", ErrParserPanic, r)}
	}
}

// extractFromReader performs the actual extraction from a pdf.Reader.
func (e *Extractor) extractFromReader(r *pdf.Reader) (*ExtractionResult, error) {
	totalPages := r.NumPage()

	result := &ExtractionResult{
		TotalPages: totalPages,
		Pages:      make([]PageResult, 0, totalPages),
		Errors:     make([]error, 0),
	}

	var textBuilder strings.Builder

	pagesToProcess := totalPages
	if e.config.MaxPages > 0 && e.config.MaxPages < totalPages {
		pagesToProcess = e.config.MaxPages
	}

	// Pages are 1-indexed in ledongthuc/pdf
	for pageIndex := 1; pageIndex <= pagesToProcess; pageIndex++ {
		pageResult := e.extractPage(r, pageIndex)

		if pageResult.Error != nil {
			result.Pages = append(result.Pages, pageResult)
			result.Errors = append(result.Errors, fmt.Errorf("page %d: %w", pageIndex, pageResult.Error))
			result.SkippedPages++
			e.logger.Debug("page extraction failed",
				zap.Int("page", pageIndex),
				zap.Error(pageResult.Error))

			if !e.config.ContinueOnError {
				return result, &ExtractionError{Op: "page", Err: fmt.Errorf("page %d: %w", pageIndex, pageResult.Error)}
			}
			continue
		}

		if pageResult.Text == "" {
			result.SkippedPages++
			if !e.config.SkipEmptyPages {
				result.Pages = append(result.Pages, pageResult)
			}
			continue
		}

		result.Pages = append(result.Pages, pageResult)
		result.ExtractedPages++

		if textBuilder.Len() > 0 {
			textBuilder.WriteString(e.config.PageSeparator)
		}
		textBuilder.WriteString(pageResult.Text)
	}

	result.RawText = textBuilder.String()
	result.Text = result.RawText
	if e.config.Clean {
		result.Text = CleanText(result.RawText)
	}
	result.Words = CountWords(result.Text)

	if strings.TrimSpace(result.Text) == "" {
		result.Text = ""
		return result, &ExtractionError{Op: "extract", Err: ErrNoPDFContent}
	}

	e.logger.Debug("PDF text extracted",
		zap.Int("pages", result.TotalPages),
		zap.Int("extracted_pages", result.ExtractedPages),
		zap.Int("skipped_pages", result.SkippedPages),
		zap.Int("words", result.Words))
	return result, nil
}

// extractPage extracts text from a single page.
func (e *Extractor) extractPage(r *pdf.Reader, pageIndex int) PageResult {
	result := PageResult{
		PageNumber: pageIndex,
	}

	p := r.Page(pageIndex)
	if p.V.IsNull() {
		// Empty page - not an error, just no content
		return result
	}

	text, err := p.GetPlainText(nil)
	if err != nil {
		result.Error = fmt.Errorf("failed to extract text: %w", err)
		return result
	}

	result.Text = strings.TrimSpace(text)
	result.Words = CountWords(result.Text)

	return result
}

// ExtractText extracts and cleans the text of in-memory PDF content with the
// default configuration. On failure the text is "" and the error is an
// *ExtractionError; callers decide whether that rejects the request.
//
// Example:
//
//	text, err := ExtractText(data)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(text)
func ExtractText(data []byte) (string, error) {
	result, err := NewDefaultExtractor().ExtractBytes(data)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// ExtractFile is ExtractText for a file on disk.
func ExtractFile(pdfPath string) (string, error) {
	result, err := NewDefaultExtractor().Extract(pdfPath)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}
