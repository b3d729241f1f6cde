// Package static embeds the upload page, the summary page template and
// their scripts into the binary.
package static

import (
	"embed"
	"io/fs"
)

// StaticFS holds:
//   - index.html (upload page)
//   - resumo.html (summary page, an html/template)
//   - style.css
//   - js/script.js (drag and drop upload)
//   - js/script_resumo.js (copy and save the summary)
//
//go:embed index.html resumo.html style.css js
var StaticFS embed.FS

// GetFS returns the embedded filesystem.
func GetFS() fs.FS {
	return StaticFS
}

// ReadFile reads a file from the embedded filesystem.
func ReadFile(name string) ([]byte, error) {
	return StaticFS.ReadFile(name)
}
