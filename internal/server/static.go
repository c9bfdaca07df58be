// static.go - Front-end and uploaded-blob serving.
package server

import (
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// handleBlob streams a stored attachment. With the disk store this reads
// from the uploads directory; with MinIO it streams from the bucket. Either
// way the URL space is /uploads/<kind>/<name>.
func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	rc, err := s.cfg.Blobs.Open(r.Context(), r.URL.Path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = rc.Close() }()

	if ct := mime.TypeByExtension(path.Ext(r.URL.Path)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	if r.Method == http.MethodHead {
		return
	}
	_, _ = io.Copy(w, rc)
}

// handleStatic serves the front-end from the public directory. "/" maps to
// index.html and bare paths such as /home fall back to the matching .html
// file, mirroring how the dashboard links its pages.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	p := path.Clean(r.URL.Path)
	if p == "/" {
		p = "/index.html"
	}
	full := filepath.Join(s.cfg.PublicDir, filepath.FromSlash(p))

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		if path.Ext(p) == "" {
			alt := full + ".html"
			if fi, err := os.Stat(alt); err == nil && !fi.IsDir() {
				http.ServeFile(w, r, alt)
				return
			}
		}
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, full)
}
