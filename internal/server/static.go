package server

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed web
var webFS embed.FS

const appIndex = "index.html"

func embeddedApp() (fs.FS, error) {
	return fs.Sub(webFS, "web")
}

// appHandler serves static assets and falls back to index.html for client-side routes.
func (s *Server) appHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			s.errorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = appIndex
		}

		info, err := fs.Stat(s.static, name)
		if err != nil || info.IsDir() {
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				http.Error(w, "failed to read asset", http.StatusInternalServerError)
				return
			}
			name = appIndex
		}
		http.ServeFileFS(w, r, s.static, name)
	})
}
