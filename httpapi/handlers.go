package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/mimetype"
	"github.com/jmgilman/vfs/vfserrors"
)

// entryResponse is one row of a listing response.
type entryResponse struct {
	Path  string `json:"path"`
	IsDir bool   `json:"isDir"`
}

type listResponse struct {
	Entries []entryResponse `json:"entries"`
}

// handleList serves GET /entries/{path...}?recursive=&filter=
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	p, err := pathFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	recursive := r.URL.Query().Get("recursive") == "true"
	filter := r.URL.Query().Get("filter")

	perm := Permission{Kind: PermListShallow}
	if recursive {
		perm = Permission{Kind: PermListDeep}
	}
	if err := s.auth.Authorize(r.Context(), r, p, &perm); err != nil {
		s.writeError(w, r, err)
		return
	}

	mode := vfs.Shallow(filter)
	if recursive {
		mode = vfs.Recurse(filter)
	}
	entries, err := s.fs.Entries(r.Context(), p, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := listResponse{Entries: make([]entryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, entryResponse{Path: e.Path().String(), IsDir: e.IsDir()})
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleDownload serves GET /files/{path...}
func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	p, err := pathFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.Authorize(r.Context(), r, p, &Permission{Kind: PermRead}); err != nil {
		s.writeError(w, r, err)
		return
	}

	entry, ok, err := s.fs.OpenFileRead(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !ok {
		s.writeError(w, r, vfserrors.Newf(vfserrors.CodeNotFound, "file not found: %q", p))
		return
	}
	defer entry.Close()

	stream := entry.Stream()
	buf := make([]byte, 3072)
	n, readErr := stream.Read(r.Context(), buf)
	sample := buf[:n]

	w.Header().Set("Content-Type", mimetype.Detect(p, sample))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", p.Name()))
	w.WriteHeader(http.StatusOK)

	if n > 0 {
		if _, err := w.Write(sample); err != nil {
			return
		}
	}
	if readErr != nil {
		return
	}
	_, _ = stream.CopyTo(r.Context(), &responseStream{w: w})
}

// responseStream adapts an http.ResponseWriter into a write-only
// vfs.Stream so Stream.CopyTo can drain the remainder of a download
// directly onto the wire.
type responseStream struct {
	w http.ResponseWriter
}

func (r *responseStream) Readable() bool  { return false }
func (r *responseStream) Writable() bool  { return true }
func (r *responseStream) Owned() bool     { return false }
func (r *responseStream) Length() int64   { return 0 }
func (r *responseStream) Position() int64 { return 0 }

func (r *responseStream) Read(context.Context, []byte) (int, error) {
	return 0, vfserrors.New(vfserrors.CodeNotSupported, "response stream is write-only")
}

func (r *responseStream) Write(_ context.Context, buf []byte) (int, error) {
	return r.w.Write(buf)
}

func (r *responseStream) CopyTo(context.Context, vfs.Stream) (int64, error) {
	return 0, vfserrors.New(vfserrors.CodeNotSupported, "response stream is write-only")
}

func (r *responseStream) Flush(context.Context) error { return nil }

func (r *responseStream) SetLength(context.Context, int64) error {
	return vfserrors.New(vfserrors.CodeNotSupported, "response stream cannot be truncated")
}

func (r *responseStream) Close() error { return nil }

// handleStat serves HEAD /files/{path...}
func (s *Server) handleStat(w http.ResponseWriter, r *http.Request) {
	p, err := pathFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.Authorize(r.Context(), r, p, &Permission{Kind: PermRead}); err != nil {
		s.writeError(w, r, err)
		return
	}

	status, err := s.fs.FileStat(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if status != vfs.StatusExists {
		s.writeError(w, r, vfserrors.Newf(vfserrors.CodeNotFound, "file not found: %q", p))
		return
	}

	w.Header().Set("Content-Type", mimetype.ForPath(p))
	w.WriteHeader(http.StatusOK)
}

// handleUpload serves PUT /files/{path...}
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	p, err := pathFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.Authorize(r.Context(), r, p, &Permission{Kind: PermWrite}); err != nil {
		s.writeError(w, r, err)
		return
	}

	var maxSize int64
	if r.ContentLength > 0 {
		perm := Permission{Kind: PermMaxSize, MaxSizeBytes: r.ContentLength}
		if err := s.auth.Authorize(r.Context(), r, p, &perm); err != nil {
			s.writeError(w, r, err)
			return
		}
		maxSize = perm.MaxSizeBytes
	}

	entry, err := s.fs.CreateFile(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	defer entry.Close()

	dest := entry.Stream()
	if maxSize > 0 {
		dest = vfs.WriteLimited(dest, maxSize)
	}
	if _, err := copyRequestBody(r, dest); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := entry.Stream().Flush(r.Context()); err != nil {
		s.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"path": p.String()})
}

func copyRequestBody(r *http.Request, dest vfs.Stream) (int64, error) {
	defer r.Body.Close()
	buf := make([]byte, 32*1024)
	var total int64
	for {
		n, rerr := r.Body.Read(buf)
		if n > 0 {
			written, werr := dest.Write(r.Context(), buf[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}

// handleDelete serves DELETE /files/{path...}
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	p, err := pathFromRequest(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.auth.Authorize(r.Context(), r, p, &Permission{Kind: PermDelete}); err != nil {
		s.writeError(w, r, err)
		return
	}

	removed, err := s.fs.DeleteFile(r.Context(), p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if !removed {
		s.writeError(w, r, vfserrors.Newf(vfserrors.CodeNotFound, "file not found: %q", p))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
