// Package httpapi exposes a vfs.FileSystem over HTTP: directory
// listing, file download/upload/delete, and a HEAD metadata probe,
// each gated by a caller-supplied Authorization check. Routing follows
// Go 1.22's http.ServeMux method+pattern syntax; failures map to HTTP
// status via vfserrors.ErrorCode and serialize as a small JSON
// envelope.
package httpapi
