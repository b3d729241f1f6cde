package webui

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func TestStaticAssetHandler_ServeHTTP(t *testing.T) {
	testFS := fstest.MapFS{
		"index.html":   {Data: []byte("<html>Resumidor</html>")},
		"style.css":    {Data: []byte("body { color: black; }")},
		"js/script.js": {Data: []byte("console.log('upload');")},
	}
	handler := NewStaticAssetHandlerWithFS(testFS, DefaultStaticAssetConfig())

	tests := []struct {
		name             string
		path             string
		wantStatus       int
		wantBodyContains string
		wantContentType  string
		wantCache        string
	}{
		{"html", "/static/index.html", http.StatusOK, "Resumidor", "text/html", "no-cache"},
		{"css", "/static/style.css", http.StatusOK, "color: black", "text/css", "max-age=3600"},
		{"js", "/static/js/script.js", http.StatusOK, "console.log", "javascript", "max-age=3600"},
		{"missing", "/static/nope.js", http.StatusNotFound, "", "", ""},
		{"directory", "/static/js/", http.StatusNotFound, "", "", ""},
		{"root", "/static/", http.StatusNotFound, "", "", ""},
		{"traversal", "/static/../../etc/passwd", http.StatusNotFound, "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus != http.StatusOK {
				return
			}
			body, _ := io.ReadAll(rec.Body)
			if !strings.Contains(string(body), tt.wantBodyContains) {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBodyContains)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, tt.wantContentType) {
				t.Errorf("Content-Type = %q, want %q", ct, tt.wantContentType)
			}
			if cc := rec.Header().Get("Cache-Control"); !strings.Contains(cc, tt.wantCache) {
				t.Errorf("Cache-Control = %q, want %q", cc, tt.wantCache)
			}
		})
	}
}

func TestStaticAssetHandler_MethodNotAllowed(t *testing.T) {
	handler := NewStaticAssetHandlerWithFS(fstest.MapFS{"a.css": {Data: []byte("x")}}, DefaultStaticAssetConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/static/a.css", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestStaticAssetHandler_Head(t *testing.T) {
	handler := NewStaticAssetHandlerWithFS(fstest.MapFS{"a.css": {Data: []byte("body{}")}}, DefaultStaticAssetConfig())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodHead, "/static/a.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("HEAD wrote %d body bytes", rec.Body.Len())
	}
	if rec.Header().Get("Content-Length") != "6" {
		t.Errorf("Content-Length = %q, want 6", rec.Header().Get("Content-Length"))
	}
}

func TestStaticAssetHandler_NoCache(t *testing.T) {
	config := DefaultStaticAssetConfig()
	config.EnableCache = false
	handler := NewStaticAssetHandlerWithFS(fstest.MapFS{"a.css": {Data: []byte("x")}}, config)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/a.css", nil))
	if cc := rec.Header().Get("Cache-Control"); cc != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", cc)
	}
}

func TestStaticAssetHandler_EmbeddedAssets(t *testing.T) {
	handler := NewStaticAssetHandler(DefaultStaticAssetConfig())

	for _, name := range []string{"index.html", "resumo.html", "style.css", "js/script.js", "js/script_resumo.js"} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.ServeFile(name)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
				t.Errorf("embedded %s: status %d, %d bytes", name, rec.Code, rec.Body.Len())
			}
		})
	}
}

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"index.html", "text/html; charset=utf-8"},
		{"style.CSS", "text/css; charset=utf-8"},
		{"js/script.js", "application/javascript; charset=utf-8"},
		{"logo.svg", "image/svg+xml"},
		{"favicon.ico", "image/x-icon"},
		{"blob", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := detectContentType(tt.name); got != tt.want {
				t.Errorf("detectContentType(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
