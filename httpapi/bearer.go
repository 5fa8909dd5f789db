package httpapi

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

// BearerToken is an Authorization that grants full access to requests
// carrying a matching "Authorization: Bearer <token>" header and denies
// everything else, including any upload-size cap a handler requests.
// Comparison is constant-time to avoid leaking the token through
// response-timing side channels.
type BearerToken struct {
	Token string
}

func (b BearerToken) Authorize(_ context.Context, r *http.Request, _ vfs.Path, _ *Permission) error {
	const prefix = "Bearer "
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, prefix) {
		return vfserrors.New(vfserrors.CodeForbidden, "missing bearer token")
	}
	got := strings.TrimPrefix(h, prefix)
	if subtle.ConstantTimeCompare([]byte(got), []byte(b.Token)) != 1 {
		return vfserrors.New(vfserrors.CodeForbidden, "invalid bearer token")
	}
	return nil
}
