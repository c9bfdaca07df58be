package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"showcase-drop/internal/store"
)

// BuildInfo identifies the running binary in health output and startup logs.
type BuildInfo struct {
	Version string
	Commit  string
}

// Config carries everything the HTTP layer needs. Unit tests construct it
// directly with a temp-dir store and blob backend.
type Config struct {
	Addr  string // e.g. ":8080"
	Build BuildInfo

	Store *store.Store
	Blobs BlobStore

	// PublicDir holds the static front-end (index.html, dashboard.html, ...).
	PublicDir string

	// MaxUploadBytes caps the /upload request body. Zero means no limit.
	MaxUploadBytes int64
}

type Server struct {
	httpServer *http.Server
	cfg        Config
	started    time.Time
}

func New(cfg Config) *Server {
	s := &Server{cfg: cfg, started: time.Now()}

	mux := http.NewServeMux()
	mux.HandleFunc("/signup", s.handleSignup)
	mux.HandleFunc("/login", s.handleLogin)
	mux.HandleFunc("/upload", s.handleUpload)
	mux.HandleFunc("/items", s.handleListItems)
	mux.HandleFunc("/items/", s.handleDeleteItem)
	mux.HandleFunc("/uploads/", s.handleBlob)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/ready", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/", s.handleStatic)

	// Wrap middleware: requestID -> logging -> security headers -> mux
	var handler http.Handler = mux
	handler = securityHeadersMiddleware(handler)
	handler = loggingMiddleware(handler)
	handler = requestIDMiddleware(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler exposes the full middleware-wrapped handler for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}
	return s.httpServer.Serve(ln)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError emits the {"error": "..."} body the front-end expects.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
