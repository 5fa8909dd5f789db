package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/jmgilman/vfs"
)

// Server exposes a vfs.FileSystem over HTTP.
type Server struct {
	fs     vfs.FileSystem
	auth   Authorization
	logger *slog.Logger
}

// NewServer constructs a Server over fs, gated by auth. A nil logger
// falls back to slog.Default().
func NewServer(fs vfs.FileSystem, auth Authorization, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{fs: fs, auth: auth, logger: logger}
}

// Routes builds the ServeMux exposing the five HTTP operations this
// package implements: list, download, upload, delete, and a metadata
// probe. Patterns use Go 1.22's method+wildcard ServeMux syntax.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /entries/{path...}", s.handleList)
	mux.HandleFunc("GET /files/{path...}", s.handleDownload)
	mux.HandleFunc("HEAD /files/{path...}", s.handleStat)
	mux.HandleFunc("PUT /files/{path...}", s.handleUpload)
	mux.HandleFunc("DELETE /files/{path...}", s.handleDelete)
	return mux
}

// pathFromRequest parses the {path...} wildcard into a vfs.Path, always
// treating it as rooted even though the wildcard itself carries no
// leading slash.
func pathFromRequest(r *http.Request) (vfs.Path, error) {
	raw := "/" + r.PathValue("path")
	return vfs.NewPath(raw)
}
