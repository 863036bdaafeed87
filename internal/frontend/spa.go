// Package frontend serves the read-only JSON API over the demo fixtures and
// the embedded static web build.
package frontend

import (
	"bytes"
	"io/fs"
	"net/http"
	"strings"
	"time"
)

// SPAHandler serves a single-page application from a filesystem. Requests
// for files that do not exist get index.html so client-side routes work,
// except under /api/ where a miss is a 404.
type SPAHandler struct {
	fsys       fs.FS
	fileServer http.Handler
	index      []byte
}

// NewSPAHandler creates an SPA-aware file server. fsys must have any
// "dist/" prefix stripped with fs.Sub.
func NewSPAHandler(fsys fs.FS) *SPAHandler {
	index, _ := fs.ReadFile(fsys, "index.html")
	return &SPAHandler{
		fsys:       fsys,
		fileServer: http.FileServer(http.FS(fsys)),
		index:      index,
	}
}

// ServeHTTP implements http.Handler.
func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		http.NotFound(w, r)
		return
	}

	name := strings.TrimPrefix(r.URL.Path, "/")
	if name == "" || name == "index.html" || !h.exists(name) {
		h.serveIndex(w, r)
		return
	}

	if strings.HasPrefix(name, "assets/") {
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	}
	h.fileServer.ServeHTTP(w, r)
}

func (h *SPAHandler) exists(name string) bool {
	info, err := fs.Stat(h.fsys, name)
	return err == nil && !info.IsDir()
}

// serveIndex writes index.html directly; http.FileServer would redirect
// /index.html to /.
func (h *SPAHandler) serveIndex(w http.ResponseWriter, r *http.Request) {
	if h.index == nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, "index.html", time.Time{}, bytes.NewReader(h.index))
}
