package http

import (
	"errors"
	"io/fs"
	"net/http"
	"strings"
)

// StaticHandler serves the admin UI from an embedded filesystem. Existing
// files are served directly; the root and unknown paths fall back to
// index.html.
type StaticHandler struct {
	FS fs.FS
}

func (h StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	if path == "" {
		h.serveIndex(w)
		return
	}

	f, err := h.FS.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			h.serveIndex(w)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	if stat, err := f.Stat(); err == nil && stat.IsDir() {
		h.serveIndex(w)
		return
	}

	http.FileServer(http.FS(h.FS)).ServeHTTP(w, r)
}

func (h StaticHandler) serveIndex(w http.ResponseWriter) {
	content, err := fs.ReadFile(h.FS, "index.html")
	if err != nil {
		http.Error(w, "index.html not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}
