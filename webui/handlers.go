package webui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"resumidor/core"
	"resumidor/metrics"
	"resumidor/pdfprocessor"
	"resumidor/shutdown"

	"go.uber.org/zap"
)

// Messages returned in the "erro" field. The upload page shows them as is.
const (
	msgNoFile          = "Nenhum arquivo enviado"
	msgNoFileSelected  = "Nenhum arquivo selecionado"
	msgInvalidFormat   = "Formato inválido. Envie um PDF."
	msgNoText          = "Não foi possível extrair texto do PDF"
	msgInvalidCount    = "Número de sentenças inválido"
	msgTooManyRequests = "Muitos envios seguidos. Tente novamente em instantes."
	msgUnavailable     = "Servidor reiniciando. Tente novamente em instantes."
	msgInternal        = "Erro ao processar o PDF"
)

const (
	uploadField        = "arquivo"
	sentenceCountField = "num_sentencas"

	// multipartMemory is how much of a form is buffered before spilling to disk.
	multipartMemory = 8 << 20

	// multipartOverhead covers boundaries and form fields beyond the file.
	multipartOverhead = 1 << 20
)

// uploadError is a rejected upload: the status and message sent to the
// client plus the underlying cause for the log.
type uploadError struct {
	status     int
	message    string
	retryAfter time.Duration
	cause      error
}

func (e *uploadError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func badRequest(message string, cause error) *uploadError {
	return &uploadError{status: http.StatusBadRequest, message: message, cause: cause}
}

func (s *Server) tooLarge(cause error) *uploadError {
	return &uploadError{
		status:  http.StatusRequestEntityTooLarge,
		message: fmt.Sprintf("Arquivo muito grande. Limite de %s.", core.FormatBytes(s.config.MaxFileSize)),
		cause:   cause,
	}
}

// handleResumir summarizes the upload, stores the summary in a fresh session
// and tells the page where to go next.
func (s *Server) handleResumir(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result, uerr := s.summarizeUpload(w, r)
	s.recordUpload("resumir", start, result, uerr)
	if uerr != nil {
		s.writeUploadError(w, r, uerr)
		return
	}

	var previousID string
	if old, err := r.Cookie(SessionCookieName); err == nil {
		previousID = old.Value
	}
	session := s.sessions.Put(previousID, result.Summary)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		MaxAge:   int(s.sessions.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]string{"redirect": "/resumo"})
}

// handleResumo renders the summary stored in the caller's session, or an
// empty page when there is none.
func (s *Server) handleResumo(w http.ResponseWriter, r *http.Request) {
	var summary string
	if cookie, err := r.Cookie(SessionCookieName); err == nil && core.ValidSessionID(cookie.Value) {
		summary, _ = s.sessions.Summary(cookie.Value)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.resumoPage.Execute(w, struct{ Resumo string }{summary}); err != nil {
		s.logger.Error("Failed to render summary page", zap.Error(err))
	}
}

// summaryResponse is the /api/summarize body.
type summaryResponse struct {
	Resumo    string   `json:"resumo"`
	Sentencas []string `json:"sentencas"`
	Fallback  string   `json:"fallback"`
	Paginas   int      `json:"paginas"`
}

// handleAPISummarize is /resumir without a session: the summary comes back
// in the response.
func (s *Server) handleAPISummarize(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	result, uerr := s.summarizeUpload(w, r)
	s.recordUpload("api", start, result, uerr)
	if uerr != nil {
		s.writeUploadError(w, r, uerr)
		return
	}

	resp := summaryResponse{
		Resumo:    result.Summary,
		Sentencas: []string{},
	}
	if result.SummaryResult != nil {
		for _, sent := range result.SummaryResult.Sentences {
			resp.Sentencas = append(resp.Sentencas, sent.Text)
		}
		resp.Fallback = string(result.SummaryResult.Fallback)
	}
	if result.ExtractionResult != nil {
		resp.Paginas = result.ExtractionResult.TotalPages
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.tracker.IsShuttingDown() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "shutting_down"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.config.Version})
}

// statsResponse is the /api/stats body.
type statsResponse struct {
	Status metrics.SystemStatus   `json:"status"`
	Totals metrics.UploadStats    `json:"totals"`
	Recent []metrics.UploadRecord `json:"recent"`
}

// recentUploads is how many records /api/stats returns.
const recentUploads = 20

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, statsResponse{
		Status: s.stats.Status(s.tracker.IsShuttingDown()),
		Totals: s.stats.Stats(),
		Recent: s.stats.Recent(recentUploads),
	})
}

// recordUpload adds the outcome of one upload to the statistics.
func (s *Server) recordUpload(route string, start time.Time, result *pdfprocessor.ProcessResult, uerr *uploadError) {
	rec := metrics.UploadRecord{
		Route:      route,
		Status:     metrics.StatusSuccess,
		HTTPStatus: http.StatusOK,
		Time:       start,
		Duration:   time.Since(start),
	}
	switch {
	case uerr != nil && uerr.status >= http.StatusInternalServerError:
		rec.Status, rec.HTTPStatus, rec.Reason = metrics.StatusError, uerr.status, uerr.message
	case uerr != nil:
		rec.Status, rec.HTTPStatus, rec.Reason = metrics.StatusRejected, uerr.status, uerr.message
	case result != nil:
		if result.ExtractionResult != nil {
			rec.Pages = result.ExtractionResult.TotalPages
			rec.Words = result.ExtractionResult.Words
		}
		if result.SummaryResult != nil {
			rec.Sentences = len(result.SummaryResult.Sentences)
			rec.Fallback = string(result.SummaryResult.Fallback)
		}
	}
	s.stats.Record(rec)
}

// summarizeUpload validates the multipart upload and runs it through the
// processor as a tracked operation.
func (s *Server) summarizeUpload(w http.ResponseWriter, r *http.Request) (*pdfprocessor.ProcessResult, *uploadError) {
	if ok, wait := s.limiter.Allow(getClientIP(r)); !ok {
		return nil, &uploadError{status: http.StatusTooManyRequests, message: msgTooManyRequests, retryAfter: wait}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxFileSize+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, s.tooLarge(err)
		}
		return nil, badRequest(msgNoFile, err)
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadField)
	if errors.Is(err, http.ErrMissingFile) {
		// Browsers send an empty file input as a plain field.
		if _, ok := r.MultipartForm.Value[uploadField]; ok {
			return nil, badRequest(msgNoFileSelected, nil)
		}
		return nil, badRequest(msgNoFile, nil)
	}
	if err != nil {
		return nil, badRequest(msgNoFile, err)
	}
	defer file.Close()

	filename := strings.TrimSpace(header.Filename)
	if filename == "" {
		return nil, badRequest(msgNoFileSelected, nil)
	}
	if !pdfprocessor.HasPDFExtension(filename) {
		return nil, badRequest(msgInvalidFormat, nil)
	}
	if header.Size > s.config.MaxFileSize {
		return nil, s.tooLarge(nil)
	}

	n, err := parseSentenceCount(r.FormValue(sentenceCountField), s.config.MaxSentences)
	if err != nil {
		return nil, badRequest(msgInvalidCount, err)
	}

	var result *pdfprocessor.ProcessResult
	err = s.tracker.Track(r.Context(), "summarize", func(ctx context.Context) error {
		var procErr error
		result, procErr = s.processor.ProcessUpload(ctx, filename, file, n)
		return procErr
	})
	if err != nil {
		return nil, s.classifyProcessError(err)
	}

	s.logger.Info("Upload summarized",
		zap.String("filename", filename),
		zap.Int64("size", header.Size),
		zap.Int("requested", n),
		zap.Duration("processing_time", result.ProcessingTime),
	)
	return result, nil
}

func (s *Server) classifyProcessError(err error) *uploadError {
	switch {
	case errors.Is(err, shutdown.ErrShuttingDown), errors.Is(err, context.Canceled):
		return &uploadError{status: http.StatusServiceUnavailable, message: msgUnavailable, cause: err}
	case errors.Is(err, pdfprocessor.ErrFileTooLarge):
		return s.tooLarge(err)
	case pdfprocessor.IsExtractionError(err):
		return badRequest(msgNoText, err)
	default:
		return &uploadError{status: http.StatusInternalServerError, message: msgInternal, cause: err}
	}
}

// parseSentenceCount reads num_sentencas. Empty means the configured default
// (0); values above max are clamped.
func parseSentenceCount(raw string, max int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("sentence count %d is below 1", n)
	}
	if max > 0 && n > max {
		return max, nil
	}
	return n, nil
}

func (s *Server) writeUploadError(w http.ResponseWriter, r *http.Request, uerr *uploadError) {
	fields := []zap.Field{
		zap.String("path", r.URL.Path),
		zap.Int("status", uerr.status),
		zap.String("reason", uerr.message),
	}
	if uerr.cause != nil {
		fields = append(fields, zap.Error(uerr.cause))
	}
	if uerr.status >= http.StatusInternalServerError && uerr.status != http.StatusServiceUnavailable {
		s.logger.Error("Upload failed", fields...)
	} else {
		s.logger.Warn("Upload rejected", fields...)
	}

	if uerr.retryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(uerr.retryAfter.Seconds()))))
	}
	writeJSON(w, uerr.status, map[string]string{"erro": uerr.message})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
