// Package objerrs translates object-store client errors for
// objectstorefs: missing-object responses collapse to ErrNotFound,
// everything else wraps into a vfserrors.PlatformError.
package objerrs

import (
	"errors"

	"github.com/minio/minio-go/v7"

	"github.com/jmgilman/vfs/vfserrors"
)

// ErrNotFound is returned by Client methods when the requested object or
// bucket does not exist. Callers check for it with errors.Is.
var ErrNotFound = errors.New("objectstorefs: object not found")

// Translate maps a minio-go error to ErrNotFound for missing-object
// responses, or wraps it as a vfserrors.CodeNetwork/CodeForbidden error
// otherwise. Returns nil for a nil err.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	resp := minio.ToErrorResponse(err)
	switch resp.Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrNotFound
	case "AccessDenied":
		return vfserrors.Wrap(err, vfserrors.CodeForbidden, "object store denied access")
	}
	return vfserrors.Wrap(err, vfserrors.CodeNetwork, "object store request failed")
}

// IsNotFound reports whether err (after Translate) denotes a missing
// object or bucket.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
