// processor.go implements the Processor that orchestrates one document.
// It composes:
//   - extractor.go: Extractor for PDF text extraction and cleaning
//   - the summarizer package for extractive summarization
package pdfprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resumidor/logging"
	"resumidor/summarizer"
)

// ProcessorConfig holds configuration for the PDF processor.
type ProcessorConfig struct {
	// Extractor configuration
	ExtractorConfig ExtractorConfig

	// UploadDir receives uploaded files while they are processed
	UploadDir string

	// MaxFileSize caps the bytes written for one upload (0 for no limit)
	MaxFileSize int64

	// Mode names the summarizer mode or profile in logs
	Mode string
}

// DefaultProcessorConfig returns sensible default configuration.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		ExtractorConfig: DefaultExtractorConfig(),
		UploadDir:       "uploads",
		MaxFileSize:     20 << 20,
	}
}

// ErrFileTooLarge is returned when an upload exceeds MaxFileSize.
var ErrFileTooLarge = errors.New("uploaded file exceeds the size limit")

// ProcessResult contains the complete result of PDF processing.
type ProcessResult struct {
	// Summary is the rendered extractive summary
	Summary string

	// ExtractionResult contains details about text extraction
	ExtractionResult *ExtractionResult

	// SummaryResult contains details about sentence selection
	SummaryResult *summarizer.Result

	// ProcessingTime is the total time taken to process the PDF
	ProcessingTime time.Duration

	// Stages contains timing for each processing stage
	Stages ProcessingStages
}

// ProcessingStages contains timing information for each stage.
type ProcessingStages struct {
	ExtractionTime  time.Duration
	SummarizingTime time.Duration
}

// ProgressCallback is called to report processing progress.
// stage is the current stage name, progress is 0.0-1.0, message is a human-readable status.
type ProgressCallback func(stage string, progress float64, message string)

// Processor orchestrates PDF text extraction and summarization.
type Processor struct {
	config     ProcessorConfig
	extractor  *Extractor
	summarizer *summarizer.Summarizer
	progress   ProgressCallback
	logger     *zap.Logger
}

// NewProcessor creates a new Processor around a configured summarizer.
// A nil logger discards log output.
//
// Example:
//
//	sum, _ := summarizer.NewSummarizer(summarizer.DefaultConfig(), logger)
//	processor := NewProcessor(DefaultProcessorConfig(), sum, logger)
//	result, err := processor.Process(ctx, "/path/to/document.pdf", 5)
func NewProcessor(config ProcessorConfig, sum *summarizer.Summarizer, logger *zap.Logger) *Processor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.UploadDir == "" {
		config.UploadDir = "uploads"
	}
	return &Processor{
		config:     config,
		extractor:  NewExtractor(config.ExtractorConfig, logger.Named("extractor")),
		summarizer: sum,
		logger:     logger,
	}
}

// NewProcessorWithProgress creates a Processor with a progress callback.
func NewProcessorWithProgress(config ProcessorConfig, sum *summarizer.Summarizer, logger *zap.Logger, progress ProgressCallback) *Processor {
	p := NewProcessor(config, sum, logger)
	p.progress = progress
	return p
}

// SetProgressCallback sets or updates the progress callback.
func (p *Processor) SetProgressCallback(progress ProgressCallback) {
	p.progress = progress
}

// Process extracts text from a PDF file and summarizes it in at most n
// sentences (the summarizer default when n <= 0).
//
// Example:
//
//	result, err := processor.Process(ctx, "/path/to/document.pdf", 3)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Summary)
func (p *Processor) Process(ctx context.Context, pdfPath string, n int) (*ProcessResult, error) {
	return p.run(ctx, n, func() (*ExtractionResult, error) {
		return p.extractor.Extract(pdfPath)
	})
}

// ProcessBytes is Process for PDF content held in memory.
func (p *Processor) ProcessBytes(ctx context.Context, data []byte, n int) (*ProcessResult, error) {
	return p.run(ctx, n, func() (*ExtractionResult, error) {
		return p.extractor.ExtractBytes(data)
	})
}

// ProcessUpload stores an uploaded file under UploadDir with a unique
// "<uuid>_<name>" file name, processes it and removes it again on every
// path out of the call.
func (p *Processor) ProcessUpload(ctx context.Context, filename string, r io.Reader, n int) (*ProcessResult, error) {
	if err := os.MkdirAll(p.config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(p.config.UploadDir, uuid.NewString()+"_"+SafeFilename(filename))
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			p.logger.Warn("failed to remove uploaded file", zap.String("path", path), zap.Error(err))
		}
	}()

	if err := p.store(path, r); err != nil {
		return nil, err
	}
	return p.Process(ctx, path, n)
}

func (p *Processor) store(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	defer f.Close()

	src := r
	if p.config.MaxFileSize > 0 {
		src = io.LimitReader(r, p.config.MaxFileSize+1)
	}
	written, err := io.Copy(f, src)
	if err != nil {
		return fmt.Errorf("failed to store upload: %w", err)
	}
	if p.config.MaxFileSize > 0 && written > p.config.MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

func (p *Processor) run(ctx context.Context, n int, extract func() (*ExtractionResult, error)) (*ProcessResult, error) {
	if p.extractor == nil || p.summarizer == nil {
		return nil, ErrProcessorNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result := &ProcessResult{}

	// Stage 1: Extract text from PDF
	p.reportProgress("extraction", 0.0, "Starting PDF text extraction...")
	extractStart := time.Now()

	extractionResult, err := extract()
	if err != nil {
		p.logger.Info("text extraction failed", zap.Error(err))
		return nil, err
	}
	result.ExtractionResult = extractionResult
	result.Stages.ExtractionTime = time.Since(extractStart)

	p.reportProgress("extraction", 1.0, fmt.Sprintf("Extracted %d of %d pages, %d words",
		extractionResult.ExtractedPages, extractionResult.TotalPages, extractionResult.Words))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 2: Select sentences
	p.reportProgress("summarizing", 0.0, "Ranking sentences...")
	summaryStart := time.Now()

	summaryResult, err := p.summarizer.SummarizeDetailed(extractionResult.Text, n)
	if err != nil {
		return nil, fmt.Errorf("summarization failed: %w", err)
	}
	result.SummaryResult = summaryResult
	result.Summary = summaryResult.Text
	result.Stages.SummarizingTime = time.Since(summaryStart)

	p.reportProgress("summarizing", 1.0, fmt.Sprintf("Selected %d sentences", len(summaryResult.Sentences)))

	result.ProcessingTime = time.Since(start)
	p.logger.Info("document summarized", logging.SummaryFields(logging.SummaryMetrics{
		Mode:            p.config.Mode,
		Pages:           extractionResult.TotalPages,
		Words:           extractionResult.Words,
		Candidates:      summaryResult.CandidateCount,
		Informative:     summaryResult.InformativeCount,
		Selected:        len(summaryResult.Sentences),
		Fallback:        string(summaryResult.Fallback),
		ExtractionTime:  result.Stages.ExtractionTime,
		SummarizingTime: result.Stages.SummarizingTime,
	}))
	return result, nil
}

// reportProgress calls the progress callback if set.
func (p *Processor) reportProgress(stage string, progress float64, message string) {
	if p.progress != nil {
		p.progress(stage, progress, message)
	}
}

// ExtractOnly extracts text from a PDF without summarizing.
func (p *Processor) ExtractOnly(pdfPath string) (*ExtractionResult, error) {
	if p.extractor == nil {
		return nil, ErrProcessorNotConfigured
	}
	return p.extractor.Extract(pdfPath)
}
