package httpapi

import (
	"context"
	"net/http"

	"github.com/jmgilman/vfs"
)

// PermKind names the capability a handler is about to exercise, so an
// Authorization implementation can make a single decision per request
// without inspecting handler internals.
type PermKind int

const (
	// PermRead permits downloading a file's contents.
	PermRead PermKind = iota
	// PermWrite permits creating or overwriting a file.
	PermWrite
	// PermDelete permits removing a file.
	PermDelete
	// PermMaxSize is checked alongside PermWrite; Permission.MaxSizeBytes
	// carries the request's declared Content-Length for the check.
	PermMaxSize
	// PermListShallow permits listing a directory's direct children.
	PermListShallow
	// PermListDeep permits a recursive directory listing.
	PermListDeep
	// PermListAll permits listing every entry regardless of depth,
	// granted independently of PermListShallow/PermListDeep so a caller
	// can allow broad read-only browsing without granting write/delete.
	PermListAll
)

// Permission describes the single capability check a handler requests
// before performing an operation against Path.
type Permission struct {
	Kind PermKind
	// MaxSizeBytes carries the request's declared upload size for a
	// PermMaxSize check; zero for every other Kind. Authorize may lower
	// this value to report the granted cap; the handler then wraps the
	// upload stream in vfs.WriteLimited(n) so the cap holds regardless
	// of what Content-Length claimed.
	MaxSizeBytes int64
}

// Authorization gates every filesystem operation the server exposes.
// Implementations typically inspect r's headers (a bearer token, an
// API key) and decide per Path and perm; a nil error permits the
// operation. For a PermMaxSize check, Authorize may overwrite
// perm.MaxSizeBytes with the grant's actual cap before returning.
type Authorization interface {
	Authorize(ctx context.Context, r *http.Request, path vfs.Path, perm *Permission) error
}

// AllowAll is an Authorization that permits every request with no
// upload cap, useful for local development or an already-trusted
// internal network.
type AllowAll struct{}

func (AllowAll) Authorize(context.Context, *http.Request, vfs.Path, *Permission) error { return nil }
