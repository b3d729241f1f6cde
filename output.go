package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"resumidor/core"
	"resumidor/pdfprocessor"

	"github.com/fatih/color"
)

// printer writes the human-facing command output. Colors are dropped
// automatically when the output is not a terminal or NO_COLOR is set.
type printer struct {
	out io.Writer
}

func newPrinter(out io.Writer) *printer {
	return &printer{out: out}
}

func (p *printer) header(title string) {
	fmt.Fprintln(p.out)
	color.New(color.FgCyan, color.Bold).Fprintf(p.out, "━━━ %s ━━━\n", title)
	fmt.Fprintln(p.out)
}

// item prints one "label: value" line of a startup or result listing.
func (p *printer) item(label, value string) {
	color.New(color.FgGreen).Fprintf(p.out, "  ✓ %s", label)
	color.New(color.FgHiBlack).Fprintf(p.out, " - %s\n", value)
}

// progress is a pdfprocessor.ProgressCallback that prints finished stages.
func (p *printer) progress(stage string, progress float64, message string) {
	if progress < 1 {
		color.New(color.FgHiBlack).Fprintf(p.out, "  ◌ %s\n", message)
		return
	}
	p.item(stage, message)
}

// result prints the summary followed by a dimmed statistics line.
func (p *printer) result(res *pdfprocessor.ProcessResult) {
	p.header("Resumo")
	fmt.Fprintln(p.out, res.Summary)
	fmt.Fprintln(p.out)

	pages, sentences, fallback := 0, 0, ""
	if res.ExtractionResult != nil {
		pages = res.ExtractionResult.TotalPages
	}
	if res.SummaryResult != nil {
		sentences = len(res.SummaryResult.Sentences)
		fallback = string(res.SummaryResult.Fallback)
	}

	stats := fmt.Sprintf("(%d pages, %d sentences in %v)", pages, sentences, res.ProcessingTime.Round(time.Millisecond))
	if fallback != "" {
		stats += " fallback: " + fallback
	}
	color.New(color.FgHiBlack).Fprintln(p.out, stats)
}

// failure prints err in red. Configuration errors get their action on a
// second line.
func (p *printer) failure(err error) {
	var cfgErr *core.ConfigError
	if errors.As(err, &cfgErr) {
		color.New(color.FgRed, color.Bold).Fprintf(p.out, "✗ %s\n", cfgErr.Message)
		if cfgErr.Action != "" {
			color.New(color.FgRed).Fprintf(p.out, "    └─ %s\n", cfgErr.Action)
		}
		return
	}
	color.New(color.FgRed, color.Bold).Fprintf(p.out, "✗ %v\n", err)
}
