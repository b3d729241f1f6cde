package webui

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"resumidor/logging"

	"go.uber.org/zap/zapcore"
)

// captureLogger returns a logger whose JSON file output lands in buf.
func captureLogger(buf *bytes.Buffer) *logging.Logger {
	return logging.NewLoggerWithWriters(zapcore.DebugLevel, false, zapcore.AddSync(io.Discard), zapcore.AddSync(buf))
}

func decodeEntries(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggingMiddleware_LogsRequest(t *testing.T) {
	var buf bytes.Buffer
	mw := NewLoggingMiddleware(captureLogger(&buf))

	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/resumir", strings.NewReader("abc"))
	req.RemoteAddr = "192.168.1.10:5555"
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := decodeEntries(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	checks := map[string]interface{}{
		"message":       "HTTP request",
		"method":        "POST",
		"path":          "/resumir",
		"status":        float64(201),
		"remote_addr":   "192.168.1.10",
		"bytes":         float64(5),
		"request_bytes": float64(3),
		"level":         "info",
	}
	for key, want := range checks {
		if e[key] != want {
			t.Errorf("%s = %v, want %v", key, e[key], want)
		}
	}
	if _, ok := e["duration"]; !ok {
		t.Error("duration field missing")
	}
}

func TestLoggingMiddleware_LevelByStatus(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "info"},
		{http.StatusFound, "info"},
		{http.StatusBadRequest, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewLoggingMiddleware(captureLogger(&buf)).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			entries := decodeEntries(t, &buf)
			if len(entries) != 1 || entries[0]["level"] != tt.level {
				t.Errorf("entries = %v, want one %s entry", entries, tt.level)
			}
		})
	}
}

func TestLoggingMiddleware_SkipPaths(t *testing.T) {
	var buf bytes.Buffer
	called := false
	handler := NewLoggingMiddleware(captureLogger(&buf), "/health").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if !called {
		t.Error("skipped path should still reach the handler")
	}
	if buf.Len() != 0 {
		t.Errorf("skipped path was logged: %s", buf.String())
	}
}

func TestLoggingMiddleware_NilLogger(t *testing.T) {
	handler := NewLoggingMiddleware(nil).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": " 203.0.113.8 "}, "10.0.0.2:80", "203.0.113.8"},
		{"remote addr", nil, "198.51.100.3:4242", "198.51.100.3"},
		{"remote without port", nil, "198.51.100.4", "198.51.100.4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponseWriterWrapper_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriterWrapper{ResponseWriter: rec, statusCode: http.StatusOK}

	w.WriteHeader(http.StatusNotFound)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("ab"))
	w.Write([]byte("cde"))

	if w.statusCode != http.StatusNotFound {
		t.Errorf("statusCode = %d, want 404", w.statusCode)
	}
	if w.bytesWritten != 5 {
		t.Errorf("bytesWritten = %d, want 5", w.bytesWritten)
	}
}
