package logging

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// SummaryMetrics describes one summarization run.
// Implements zapcore.ObjectMarshaler for structured logging.
//
// Example:
//
//	metrics := SummaryMetrics{
//		Mode:            "balanced",
//		Pages:           12,
//		Words:           5400,
//		Candidates:      310,
//		Informative:     204,
//		Selected:        5,
//		ExtractionTime:  180 * time.Millisecond,
//		SummarizingTime: 40 * time.Millisecond,
//	}
//	logger.Info("document summarized", SummaryFields(metrics))
type SummaryMetrics struct {
	// Mode is the summarizer mode or profile name
	Mode string `json:"mode"`

	// Pages is the page count of the source PDF
	Pages int `json:"pages"`

	// Words is the word count of the cleaned text
	Words int `json:"words"`

	// Candidates and Informative count the segmented sentences and those that
	// passed the informativeness filter
	Candidates  int `json:"candidates"`
	Informative int `json:"informative"`

	// Selected is the number of sentences in the summary
	Selected int `json:"selected"`

	// Fallback names the degraded path, empty for a ranked summary
	Fallback string `json:"fallback,omitempty"`

	ExtractionTime  time.Duration `json:"extraction_time"`
	SummarizingTime time.Duration `json:"summarizing_time"`
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
// Durations are encoded in milliseconds.
func (m SummaryMetrics) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	if m.Mode != "" {
		enc.AddString("mode", m.Mode)
	}
	enc.AddInt("pages", m.Pages)
	enc.AddInt("words", m.Words)
	enc.AddInt("candidates", m.Candidates)
	enc.AddInt("informative", m.Informative)
	enc.AddInt("selected", m.Selected)
	if m.Fallback != "" {
		enc.AddString("fallback", m.Fallback)
	}
	enc.AddInt64("extraction_ms", m.ExtractionTime.Milliseconds())
	enc.AddInt64("summarizing_ms", m.SummarizingTime.Milliseconds())
	return nil
}

// SummaryFields wraps metrics in a single "summary" object field.
func SummaryFields(metrics SummaryMetrics) zap.Field {
	return zap.Object("summary", metrics)
}

// TimingFields creates fields for a stage that ran from start to end.
//
// Example:
//
//	start := time.Now()
//	// ... extract text ...
//	logger.Debug("stage finished", TimingFields("extraction", start, time.Now())...)
func TimingFields(stage string, start, end time.Time) []zap.Field {
	return []zap.Field{
		zap.String("stage", stage),
		zap.Time("start_time", start),
		zap.Duration("duration", end.Sub(start)),
	}
}
