package overlayfs

import (
	"context"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

// OverlayFS composes a lower (assumed read-only) and upper FileSystem.
// ReadOnly reflects upper's flag; all mutations delegate to upper.
type OverlayFS struct {
	lower vfs.FileSystem
	upper vfs.FileSystem
}

// New composes lower and upper into an OverlayFS.
func New(lower, upper vfs.FileSystem) *OverlayFS {
	return &OverlayFS{lower: lower, upper: upper}
}

var _ vfs.FileSystem = (*OverlayFS)(nil)

func (o *OverlayFS) ReadOnly() bool { return o.upper.ReadOnly() }

func (o *OverlayFS) FileExists(ctx context.Context, p vfs.Path) (bool, error) {
	st, err := o.FileStat(ctx, p)
	if err != nil {
		return false, err
	}
	return st == vfs.StatusExists, nil
}

func (o *OverlayFS) DirExists(ctx context.Context, p vfs.Path) (bool, error) {
	ok, err := o.upper.DirExists(ctx, p)
	if err != nil || ok {
		return ok, err
	}
	return o.lower.DirExists(ctx, p)
}

// FileStat consults upper first; any non-NotFound result (Exists or
// Deleted) shadows lower.
func (o *OverlayFS) FileStat(ctx context.Context, p vfs.Path) (vfs.FileStatus, error) {
	st, err := o.upper.FileStat(ctx, p)
	if err != nil {
		return vfs.StatusNotFound, err
	}
	if st != vfs.StatusNotFound {
		return st, nil
	}
	return o.lower.FileStat(ctx, p)
}

func (o *OverlayFS) CreateFile(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	return o.upper.CreateFile(ctx, p)
}

func (o *OverlayFS) CreateDirectory(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	return o.upper.CreateDirectory(ctx, p)
}

// OpenFileRead prefers upper; an upper tombstone hides a lower file of
// the same name rather than falling through to it.
func (o *OverlayFS) OpenFileRead(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	ust, err := o.upper.FileStat(ctx, p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	if ust == vfs.StatusDeleted {
		return vfs.FileEntry{}, false, nil
	}
	if entry, ok, err := o.upper.OpenFileRead(ctx, p); ok || err != nil {
		return entry, ok, err
	}
	return o.lower.OpenFileRead(ctx, p)
}

// copyUp opens p for reading (upper if present, else copying lower's
// contents into a fresh upper file) and returns an upper RW handle. If p
// is absent in both layers, an empty file is created in upper.
func (o *OverlayFS) copyUp(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	ust, err := o.upper.FileStat(ctx, p)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	if ust == vfs.StatusExists {
		entry, ok, err := o.upper.OpenFileReadWrite(ctx, p)
		if err != nil {
			return vfs.FileEntry{}, err
		}
		if ok {
			return entry, nil
		}
	}
	if ust == vfs.StatusNotFound {
		lst, err := o.lower.FileStat(ctx, p)
		if err != nil {
			return vfs.FileEntry{}, err
		}
		if lst == vfs.StatusExists {
			lowerEntry, ok, err := o.lower.OpenFileRead(ctx, p)
			if err != nil {
				return vfs.FileEntry{}, err
			}
			if ok {
				defer func() { _ = lowerEntry.Close() }()
				return o.upper.Integrate(ctx, p, lowerEntry.Stream())
			}
		}
	}
	return o.upper.CreateFile(ctx, p)
}

// OpenFileReadWrite always succeeds (barring a read-only upper or a
// backend error): present in upper opens there, present only in lower
// triggers copy-up, absent in both creates empty in upper.
func (o *OverlayFS) OpenFileReadWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if o.upper.ReadOnly() {
		return vfs.FileEntry{}, false, vfserrors.New(vfserrors.CodeReadOnly, "overlay's upper filesystem is read-only")
	}
	entry, err := o.copyUp(ctx, p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return entry, true, nil
}

// OpenFileWrite applies the same copy-up strategy as OpenFileReadWrite
// and narrows the result to write-only.
func (o *OverlayFS) OpenFileWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	entry, ok, err := o.OpenFileReadWrite(ctx, p)
	if err != nil || !ok {
		return vfs.FileEntry{}, ok, err
	}
	return vfs.NewFileWOEntry(p, o, vfs.WriteOnly(entry.Stream())), true, nil
}

func (o *OverlayFS) DeleteFile(ctx context.Context, p vfs.Path) (bool, error) {
	return o.upper.DeleteFile(ctx, p)
}

func (o *OverlayFS) DeleteDirectory(ctx context.Context, p vfs.Path, recursive bool) (bool, error) {
	return o.upper.DeleteDirectory(ctx, p, recursive)
}

func (o *OverlayFS) Integrate(ctx context.Context, dest vfs.Path, source vfs.Stream) (vfs.FileEntry, error) {
	return o.upper.Integrate(ctx, dest, source)
}

// Entries yields every upper entry first, then every lower entry whose
// path wasn't already yielded from upper and whose upper status isn't
// Deleted.
func (o *OverlayFS) Entries(ctx context.Context, p vfs.Path, mode vfs.ListMode) ([]vfs.FileEntry, error) {
	upperEntries, upperErr := o.upper.Entries(ctx, p, mode)
	if upperErr != nil && vfserrors.GetCode(upperErr) != vfserrors.CodeNotFound {
		return nil, upperErr
	}

	seen := make(map[string]struct{}, len(upperEntries))
	result := make([]vfs.FileEntry, 0, len(upperEntries))
	for _, e := range upperEntries {
		seen[e.Path().String()] = struct{}{}
		result = append(result, rewrap(e, o))
	}

	lowerEntries, lowerErr := o.lower.Entries(ctx, p, mode)
	if lowerErr != nil {
		if vfserrors.GetCode(lowerErr) == vfserrors.CodeNotFound {
			if upperErr != nil {
				return nil, upperErr
			}
			return result, nil
		}
		return nil, lowerErr
	}

	for _, e := range lowerEntries {
		key := e.Path().String()
		if _, dup := seen[key]; dup {
			continue
		}
		st, err := o.upper.FileStat(ctx, e.Path())
		if err != nil {
			return nil, err
		}
		if st == vfs.StatusDeleted {
			continue
		}
		result = append(result, rewrap(e, o))
	}
	return result, nil
}

// At composes recursively: Overlay(lower.At(p, false), upper.At(p, writable)).
// lower is always addressed read-only, matching the "assumed read-only
// source" invariant. A directory present in only one layer yields that
// layer's sub-filesystem alone; the missing layer contributes nothing
// under p, so there is nothing left to compose.
func (o *OverlayFS) At(ctx context.Context, p vfs.Path, writable bool) (vfs.FileSystem, error) {
	lowerSub, lowerErr := o.lower.At(ctx, p, false)
	if lowerErr != nil && vfserrors.GetCode(lowerErr) != vfserrors.CodeNotFound {
		return nil, lowerErr
	}
	upperSub, upperErr := o.upper.At(ctx, p, writable)
	if upperErr != nil {
		if vfserrors.GetCode(upperErr) != vfserrors.CodeNotFound || lowerErr != nil {
			return nil, upperErr
		}
		return lowerSub, nil
	}
	if lowerErr != nil {
		return upperSub, nil
	}
	return New(lowerSub, upperSub), nil
}

// rewrap reassigns an unopened entry's owning FileSystem to fs, so
// entries returned from Entries() report the overlay itself rather than
// whichever layer produced them.
func rewrap(e vfs.FileEntry, fs vfs.FileSystem) vfs.FileEntry {
	if e.Kind() == vfs.KindDirectory {
		return vfs.NewDirectoryEntry(e.Path(), fs)
	}
	return vfs.NewFileRefEntry(e.Path(), fs)
}
