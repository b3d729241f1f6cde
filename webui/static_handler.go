package webui

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"resumidor/webui/static"
)

// StaticAssetHandler serves the embedded upload page and its assets with
// explicit MIME types and cache headers.
type StaticAssetHandler struct {
	fs          fs.FS
	prefix      string
	enableCache bool
	cacheMaxAge int
}

// StaticAssetConfig configures the StaticAssetHandler.
type StaticAssetConfig struct {
	// Prefix is the URL prefix for assets (default: "/static")
	Prefix string

	// EnableCache sends Cache-Control max-age instead of no-store
	EnableCache bool

	// CacheMaxAge is the max-age in seconds (default: 3600)
	CacheMaxAge int
}

// DefaultStaticAssetConfig returns a default configuration.
func DefaultStaticAssetConfig() StaticAssetConfig {
	return StaticAssetConfig{
		Prefix:      "/static",
		EnableCache: true,
		CacheMaxAge: 3600,
	}
}

// NewStaticAssetHandler creates a handler over the embedded filesystem.
func NewStaticAssetHandler(config StaticAssetConfig) *StaticAssetHandler {
	return NewStaticAssetHandlerWithFS(static.GetFS(), config)
}

// NewStaticAssetHandlerWithFS creates a handler over any filesystem. Tests
// use it with fstest.MapFS.
func NewStaticAssetHandlerWithFS(fsys fs.FS, config StaticAssetConfig) *StaticAssetHandler {
	if config.Prefix == "" {
		config.Prefix = "/static"
	}
	if config.CacheMaxAge <= 0 {
		config.CacheMaxAge = 3600
	}
	return &StaticAssetHandler{
		fs:          fsys,
		prefix:      strings.TrimSuffix(config.Prefix, "/"),
		enableCache: config.EnableCache,
		cacheMaxAge: config.CacheMaxAge,
	}
}

// Prefix returns the URL prefix the handler is mounted under.
func (h *StaticAssetHandler) Prefix() string {
	return h.prefix
}

// ServeHTTP serves one asset. Paths are cleaned so requests cannot leave
// the filesystem root, and directories are never listed.
func (h *StaticAssetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, h.prefix)
	name = strings.TrimPrefix(path.Clean("/"+name), "/")
	if name == "" || name == "." {
		http.NotFound(w, r)
		return
	}
	h.serveFile(w, r, name)
}

// ServeFile returns a handler that always serves one named asset, such as
// index.html for "/".
func (h *StaticAssetHandler) ServeFile(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.serveFile(w, r, name)
	}
}

func (h *StaticAssetHandler) serveFile(w http.ResponseWriter, r *http.Request, name string) {
	data, err := fs.ReadFile(h.fs, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", detectContentType(name))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	if h.enableCache && !strings.HasSuffix(name, ".html") {
		w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(h.cacheMaxAge))
	} else {
		w.Header().Set("Cache-Control", "no-cache")
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(data)
	}
}

// detectContentType determines the MIME type based on file extension.
func detectContentType(name string) string {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".html", ".htm":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript; charset=utf-8"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		if ct := mime.TypeByExtension(ext); ct != "" {
			return ct
		}
		return "application/octet-stream"
	}
}
