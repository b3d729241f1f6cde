package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"resumidor/core"
	"resumidor/logging"
	"resumidor/pdfprocessor"
	"resumidor/summarizer"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// app carries what every command needs.
type app struct {
	cfg    *core.Config
	logger *logging.Logger
}

// loadApp reads .env and the environment and opens the logger. With quiet
// set, logs only go to the log file so command output stays readable.
func loadApp(quiet bool) (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		return nil, err
	}

	level := logging.ParseLogLevelString(cfg.LogLevel, zapcore.InfoLevel)
	var logger *logging.Logger
	if quiet {
		file := logging.NewFileWriterWithConfig(cfg.LogFile, logging.DefaultFileWriterConfig())
		logger = logging.NewLoggerWithWriters(level, cfg.DevMode, zapcore.AddSync(io.Discard), file)
	} else {
		logger, err = logging.NewLoggerWithConfig(level, cfg.DevMode, cfg.LogFile, logging.DefaultFileWriterConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
	}

	logger.Info("Configuration loaded",
		zap.String("addr", cfg.Addr()),
		zap.String("upload_dir", cfg.UploadDir),
		zap.String("max_file_size", core.FormatBytes(cfg.MaxFileSize)),
		zap.String("mode", cfg.SummaryMode),
		zap.Int("num_sentencas", cfg.Summarizer.NumSentences),
		zap.String("output_format", string(cfg.Summarizer.OutputFormat)),
		zap.Bool("dev_mode", cfg.DevMode),
	)
	return &app{cfg: cfg, logger: logger}, nil
}

// summaryOptions are per-run adjustments on top of the configured mode.
type summaryOptions struct {
	mode    string
	bullets bool
}

// newProcessor builds the summarizer for the requested mode and the PDF
// processor around it.
func (a *app) newProcessor(opts summaryOptions, progress pdfprocessor.ProgressCallback) (*pdfprocessor.Processor, error) {
	sumCfg, err := a.cfg.SummarizerFor(opts.mode)
	if err != nil {
		return nil, err
	}
	if opts.bullets {
		sumCfg.OutputFormat = summarizer.FormatBullets
	}

	mode := opts.mode
	if mode == "" {
		mode = a.cfg.SummaryMode
	}

	sum, err := summarizer.NewSummarizer(sumCfg, a.logger.Zap().Named("summarizer"))
	if err != nil {
		return nil, core.ErrInvalidSummarizer(err)
	}

	procCfg := pdfprocessor.DefaultProcessorConfig()
	procCfg.UploadDir = a.cfg.UploadDir
	procCfg.MaxFileSize = a.cfg.MaxFileSize
	procCfg.Mode = mode
	return pdfprocessor.NewProcessorWithProgress(procCfg, sum, a.logger.Zap().Named("pdf"), progress), nil
}
