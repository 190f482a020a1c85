package frontend

import (
	"embed"
	"io/fs"
	"net/http"
)

// FS embeds the dashboard page templates and static assets
//
//go:embed templates static
var FS embed.FS

// TemplateFS returns the embedded template directory
func TemplateFS() (fs.FS, error) {
	return fs.Sub(FS, "templates")
}

// GetHTTPFS returns the embedded static assets for HTTP serving
func GetHTTPFS() (http.FileSystem, error) {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		return nil, err
	}

	// style.css is required by every rendered page
	if _, err := fs.Stat(sub, "style.css"); err != nil {
		return nil, err
	}

	return http.FS(sub), nil
}
