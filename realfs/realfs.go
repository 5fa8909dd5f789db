package realfs

import (
	"context"
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// RealFS implements vfs.FileSystem over a billy.Filesystem rooted at a
// host directory. Unlike MemoryBackend, RealFS never synthesizes a
// tombstone: a deleted path simply stops existing on disk, and FileStat
// reports StatusNotFound for it rather than StatusDeleted.
type RealFS struct {
	bfs      billy.Filesystem
	readOnly bool
}

// New roots a RealFS at root on the host filesystem, creating it if
// necessary. Every operation is confined to root: billy's bound-OS
// filesystem rejects paths that would resolve outside it, and
// vfs.Path's own prohibition on dotted segments means no caller can
// construct a Path that tries.
func New(root string, readOnly bool) (*RealFS, error) {
	if err := os.MkdirAll(root, dirPerm); err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodeInternal, "create root %q", root)
	}
	return &RealFS{bfs: osfs.New(root), readOnly: readOnly}, nil
}

var _ vfs.FileSystem = (*RealFS)(nil)

func (r *RealFS) ReadOnly() bool { return r.readOnly }

func (r *RealFS) FileExists(_ context.Context, p vfs.Path) (bool, error) {
	info, err := r.bfs.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, translateErr(err)
	}
	return !info.IsDir(), nil
}

func (r *RealFS) DirExists(_ context.Context, p vfs.Path) (bool, error) {
	if p.IsRoot() {
		return true, nil
	}
	info, err := r.bfs.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, translateErr(err)
	}
	return info.IsDir(), nil
}

func (r *RealFS) FileStat(_ context.Context, p vfs.Path) (vfs.FileStatus, error) {
	info, err := r.bfs.Stat(p.String())
	if err != nil {
		if os.IsNotExist(err) {
			return vfs.StatusNotFound, nil
		}
		return vfs.StatusNotFound, translateErr(err)
	}
	if info.IsDir() {
		return vfs.StatusNotFound, nil
	}
	return vfs.StatusExists, nil
}

func (r *RealFS) CreateFile(_ context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if r.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	if err := r.bfs.MkdirAll(p.Parent().String(), dirPerm); err != nil {
		return vfs.FileEntry{}, translateErr(err)
	}
	f, err := r.bfs.Create(p.String())
	if err != nil {
		return vfs.FileEntry{}, translateErr(err)
	}
	return vfs.NewFileRWEntry(p, r, newBillyStream(f, true, true)), nil
}

func (r *RealFS) CreateDirectory(_ context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if r.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	if err := r.bfs.MkdirAll(p.String(), dirPerm); err != nil {
		return vfs.FileEntry{}, translateErr(err)
	}
	return vfs.NewDirectoryEntry(p, r), nil
}

func (r *RealFS) openFlags(p vfs.Path, flag int, readable, writable bool) (vfs.FileEntry, bool, error) {
	f, err := r.bfs.OpenFile(p.String(), flag, filePerm)
	if err != nil {
		if os.IsNotExist(err) {
			return vfs.FileEntry{}, false, nil
		}
		return vfs.FileEntry{}, false, translateErr(err)
	}
	stream := newBillyStream(f, readable, writable)
	switch {
	case readable && writable:
		return vfs.NewFileRWEntry(p, r, stream), true, nil
	case writable:
		return vfs.NewFileWOEntry(p, r, stream), true, nil
	default:
		return vfs.NewFileROEntry(p, r, stream), true, nil
	}
}

func (r *RealFS) OpenFileRead(_ context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	return r.openFlags(p, os.O_RDONLY, true, false)
}

// OpenFileWrite opens p for writing. Unlike MemoryBackend, a missing file
// yields ok=false rather than an implicit create (see memoryfs's
// OpenFileWrite doc comment for the divergence this preserves).
func (r *RealFS) OpenFileWrite(_ context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if r.readOnly {
		return vfs.FileEntry{}, false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	return r.openFlags(p, os.O_WRONLY, false, true)
}

func (r *RealFS) OpenFileReadWrite(_ context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if r.readOnly {
		return vfs.FileEntry{}, false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	return r.openFlags(p, os.O_RDWR|os.O_CREATE, true, true)
}

func (r *RealFS) DeleteFile(_ context.Context, p vfs.Path) (bool, error) {
	if r.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	info, statErr := r.bfs.Stat(p.String())
	if statErr != nil || info.IsDir() {
		return false, nil
	}
	if err := r.bfs.Remove(p.String()); err != nil {
		return false, translateErr(err)
	}
	return true, nil
}

func (r *RealFS) DeleteDirectory(_ context.Context, p vfs.Path, recursive bool) (bool, error) {
	if r.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	info, err := r.bfs.Stat(p.String())
	if err != nil || !info.IsDir() {
		return false, nil
	}
	children, err := r.bfs.ReadDir(p.String())
	if err != nil {
		return false, translateErr(err)
	}
	if len(children) > 0 && !recursive {
		return false, nil
	}
	if len(children) > 0 {
		for _, c := range children {
			child, cerr := p.Append(c.Name())
			if cerr != nil {
				continue
			}
			if c.IsDir() {
				if _, derr := r.DeleteDirectory(context.Background(), child, true); derr != nil {
					return false, derr
				}
			} else if err := r.bfs.Remove(child.String()); err != nil {
				return false, translateErr(err)
			}
		}
	}
	if err := r.bfs.Remove(p.String()); err != nil {
		return false, translateErr(err)
	}
	return true, nil
}

// Integrate creates dest (truncating any existing file) and copies
// source's remaining contents into it.
func (r *RealFS) Integrate(ctx context.Context, dest vfs.Path, source vfs.Stream) (vfs.FileEntry, error) {
	entry, err := r.CreateFile(ctx, dest)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	if _, err := source.CopyTo(ctx, entry.Stream()); err != nil {
		_ = entry.Close()
		return vfs.FileEntry{}, err
	}
	return entry, nil
}

func (r *RealFS) Entries(_ context.Context, p vfs.Path, mode vfs.ListMode) ([]vfs.FileEntry, error) {
	re, err := vfs.CompileGlob(mode.Filter)
	if err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodePathInvalid, "invalid filter %q", mode.Filter)
	}

	var entries []vfs.FileEntry
	var walk func(dir vfs.Path) error
	walk = func(dir vfs.Path) error {
		children, err := r.bfs.ReadDir(dir.String())
		if err != nil {
			return translateErr(err)
		}
		for _, c := range children {
			childPath, perr := dir.Append(c.Name())
			if perr != nil {
				continue
			}
			if re.MatchString(c.Name()) {
				if c.IsDir() {
					entries = append(entries, vfs.NewDirectoryEntry(childPath, r))
				} else {
					entries = append(entries, vfs.NewFileRefEntry(childPath, r))
				}
			}
			if mode.Recursive && c.IsDir() {
				if err := walk(childPath); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk(p); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *RealFS) At(_ context.Context, p vfs.Path, writable bool) (vfs.FileSystem, error) {
	if writable && r.readOnly {
		return nil, vfserrors.New(vfserrors.CodeReadOnly, "cannot upgrade a read-only filesystem to writable")
	}
	if !p.IsRoot() {
		if err := r.bfs.MkdirAll(p.String(), dirPerm); err != nil {
			return nil, translateErr(err)
		}
	}
	sub, err := r.bfs.Chroot(p.String())
	if err != nil {
		return nil, translateErr(err)
	}
	return &RealFS{bfs: sub, readOnly: !writable}, nil
}

func translateErr(err error) error {
	if os.IsPermission(err) {
		return vfserrors.Wrap(err, vfserrors.CodeForbidden, "permission denied")
	}
	return vfserrors.Wrap(err, vfserrors.CodeInternal, "host filesystem operation failed")
}
