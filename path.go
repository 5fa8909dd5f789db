package vfs

import (
	"strings"

	"github.com/jmgilman/vfs/vfserrors"
)

// invalidPathChars are characters disallowed anywhere in a path segment,
// independent of platform. The set matches what Windows and most object
// stores reject in a single key segment.
const invalidPathChars = `<>:"|?*`

// Path is a validated absolute path value. The zero Path is not valid;
// always construct one with NewPath.
type Path struct {
	normalized string
}

// NewPath validates and normalizes raw into a Path.
//
// Validation: raw must be non-empty, must be absolute (after normalizing
// backslashes to forward slashes it must start with "/"), must contain no
// "." or ".." segments, and must contain none of invalidPathChars.
func NewPath(raw string) (Path, error) {
	if raw == "" {
		return Path{}, vfserrors.New(vfserrors.CodePathEmpty, "path is empty")
	}

	normalized := strings.ReplaceAll(raw, `\`, "/")
	if !strings.HasPrefix(normalized, "/") {
		return Path{}, vfserrors.Newf(vfserrors.CodePathInvalid, "path is not absolute: %q", raw)
	}

	if strings.ContainsAny(normalized, invalidPathChars) {
		return Path{}, vfserrors.Newf(vfserrors.CodePathInvalidChars, "path contains invalid characters: %q", raw)
	}

	segments := splitSegments(normalized)
	for _, seg := range segments {
		if seg == "." || seg == ".." {
			return Path{}, vfserrors.Newf(vfserrors.CodePathDottedSegments, "path contains a dotted segment: %q", raw)
		}
	}

	return Path{normalized: joinSegments(segments)}, nil
}

// MustPath is NewPath for callers that have validated the string by
// construction (tests, literals). It panics on an invalid path.
func MustPath(raw string) Path {
	p, err := NewPath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// rootPath is the canonical root, "/".
var rootPath = Path{normalized: "/"}

// RootPath returns the canonical root path "/".
func RootPath() Path {
	return rootPath
}

func splitSegments(normalized string) []string {
	trimmed := strings.Trim(normalized, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func joinSegments(segments []string) string {
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// String returns the normalized absolute form.
func (p Path) String() string {
	if p.normalized == "" {
		return "/"
	}
	return p.normalized
}

// IsRoot reports whether p is the root path "/".
func (p Path) IsRoot() bool {
	return p.String() == "/"
}

// Segments returns the path's non-empty segments in order. The root path
// returns an empty slice.
func (p Path) Segments() []string {
	return splitSegments(p.String())
}

// Name returns the final segment of the path (the file or directory
// name). The root path returns "".
func (p Path) Name() string {
	segs := p.Segments()
	if len(segs) == 0 {
		return ""
	}
	return segs[len(segs)-1]
}

// Ext returns the filename extension including the leading dot, or "" if
// Name has none.
func (p Path) Ext() string {
	name := p.Name()
	if idx := strings.LastIndex(name, "."); idx > 0 {
		return name[idx:]
	}
	return ""
}

// NameWithoutExt returns Name with its extension, if any, stripped.
func (p Path) NameWithoutExt() string {
	name := p.Name()
	if ext := p.Ext(); ext != "" {
		return strings.TrimSuffix(name, ext)
	}
	return name
}

// Parent returns the directory containing p. The root path is its own
// parent.
func (p Path) Parent() Path {
	segs := p.Segments()
	if len(segs) == 0 {
		return rootPath
	}
	return Path{normalized: joinSegments(segs[:len(segs)-1])}
}

// Equal reports whether two paths have the same normalized form.
func (p Path) Equal(other Path) bool {
	return p.String() == other.String()
}

// Append joins segment onto p. segment must not itself contain a path
// separator or invalid characters; use Append repeatedly to build up a
// multi-segment path.
func (p Path) Append(segment string) (Path, error) {
	if segment == "" {
		return Path{}, vfserrors.New(vfserrors.CodePathEmpty, "appended segment is empty")
	}
	if strings.ContainsAny(segment, "/\\") {
		return Path{}, vfserrors.Newf(vfserrors.CodePathInvalidChars, "segment contains a path separator: %q", segment)
	}
	if strings.ContainsAny(segment, invalidPathChars) {
		return Path{}, vfserrors.Newf(vfserrors.CodePathInvalidChars, "segment contains invalid characters: %q", segment)
	}
	if segment == "." || segment == ".." {
		return Path{}, vfserrors.Newf(vfserrors.CodePathDottedSegments, "segment is dotted: %q", segment)
	}

	segs := append(append([]string{}, p.Segments()...), segment)
	return Path{normalized: joinSegments(segs)}, nil
}

// InDirectory reports whether d is a proper ancestor of p: walking up
// from p's parent eventually reaches d. The root directory is an
// ancestor of every non-root path.
func (p Path) InDirectory(d Path) bool {
	if p.Equal(d) {
		return false
	}
	if d.IsRoot() {
		return !p.IsRoot()
	}

	pSegs := p.Segments()
	dSegs := d.Segments()
	if len(dSegs) >= len(pSegs) {
		return false
	}
	for i, seg := range dSegs {
		if pSegs[i] != seg {
			return false
		}
	}
	return true
}

// Rebase replaces the oldPrefix leading p with newPrefix. Fails if p is
// not oldPrefix itself or under it.
func (p Path) Rebase(oldPrefix, newPrefix Path) (Path, error) {
	if !p.Equal(oldPrefix) && !p.InDirectory(oldPrefix) {
		return Path{}, vfserrors.Newf(vfserrors.CodePathInvalid, "path %q is not under prefix %q", p, oldPrefix)
	}

	pSegs := p.Segments()
	oldSegs := oldPrefix.Segments()
	rel := pSegs[len(oldSegs):]

	newSegs := append(append([]string{}, newPrefix.Segments()...), rel...)
	return Path{normalized: joinSegments(newSegs)}, nil
}

// FullPath joins p under root, producing a string suitable for passing to
// a host filesystem or object-store client rooted at root. The result
// always uses forward slashes and has no leading separator duplication.
func (p Path) FullPath(root string) string {
	root = strings.TrimSuffix(strings.ReplaceAll(root, `\`, "/"), "/")
	if root == "" {
		return p.String()
	}
	if p.IsRoot() {
		return root
	}
	return root + p.String()
}
