package mountfs

import (
	"context"
	"sync"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

// MountFS routes operations to child filesystems by longest path-prefix
// match. ReadOnly always reports true: the router itself performs no
// mutation, though the backend it dispatches to may.
type MountFS struct {
	mu     sync.RWMutex
	mounts map[string]vfs.FileSystem
}

// New constructs an empty MountFS. Populate it with Mount.
func New() *MountFS {
	return &MountFS{mounts: make(map[string]vfs.FileSystem)}
}

var _ vfs.FileSystem = (*MountFS)(nil)

// Mount registers fs at p, replacing any existing mount at that exact
// path.
func (m *MountFS) Mount(p vfs.Path, fs vfs.FileSystem) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mounts[p.String()] = fs
}

// Unmount removes the mount at p, if any.
func (m *MountFS) Unmount(p vfs.Path) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.mounts, p.String())
}

func (m *MountFS) ReadOnly() bool { return true }

// resolve finds the mount whose path is the longest prefix of p (ties
// are not expected since mount paths are distinct), and returns its
// filesystem plus p rebased from the mount point to root.
func (m *MountFS) resolve(p vfs.Path) (vfs.FileSystem, vfs.Path, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var bestFS vfs.FileSystem
	var bestMount vfs.Path
	bestLen := -1

	for key, fs := range m.mounts {
		mp, err := vfs.NewPath(key)
		if err != nil {
			continue
		}
		if !p.Equal(mp) && !p.InDirectory(mp) {
			continue
		}
		if len(key) > bestLen {
			bestLen = len(key)
			bestFS = fs
			bestMount = mp
		}
	}

	if bestFS == nil {
		return nil, vfs.Path{}, vfserrors.Newf(vfserrors.CodeNotFound, "no mount covers %q", p)
	}

	rebased, err := p.Rebase(bestMount, vfs.RootPath())
	if err != nil {
		return nil, vfs.Path{}, err
	}
	return bestFS, rebased, nil
}

func (m *MountFS) FileExists(ctx context.Context, p vfs.Path) (bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return false, err
	}
	return fs.FileExists(ctx, rp)
}

func (m *MountFS) DirExists(ctx context.Context, p vfs.Path) (bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return false, err
	}
	return fs.DirExists(ctx, rp)
}

func (m *MountFS) FileStat(ctx context.Context, p vfs.Path) (vfs.FileStatus, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.StatusNotFound, err
	}
	return fs.FileStat(ctx, rp)
}

func (m *MountFS) CreateFile(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	return fs.CreateFile(ctx, rp)
}

func (m *MountFS) CreateDirectory(ctx context.Context, p vfs.Path) (vfs.FileEntry, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	return fs.CreateDirectory(ctx, rp)
}

func (m *MountFS) OpenFileRead(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return fs.OpenFileRead(ctx, rp)
}

func (m *MountFS) OpenFileWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return fs.OpenFileWrite(ctx, rp)
}

func (m *MountFS) OpenFileReadWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return fs.OpenFileReadWrite(ctx, rp)
}

func (m *MountFS) DeleteFile(ctx context.Context, p vfs.Path) (bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return false, err
	}
	return fs.DeleteFile(ctx, rp)
}

func (m *MountFS) DeleteDirectory(ctx context.Context, p vfs.Path, recursive bool) (bool, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return false, err
	}
	return fs.DeleteDirectory(ctx, rp, recursive)
}

func (m *MountFS) Integrate(ctx context.Context, dest vfs.Path, source vfs.Stream) (vfs.FileEntry, error) {
	fs, rp, err := m.resolve(dest)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	return fs.Integrate(ctx, rp, source)
}

// Entries does not merge across mount points: a request that spans
// multiple mounts still resolves to a single owning backend at the
// longest matching prefix.
func (m *MountFS) Entries(ctx context.Context, p vfs.Path, mode vfs.ListMode) ([]vfs.FileEntry, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return nil, err
	}
	return fs.Entries(ctx, rp, mode)
}

// At returns the mounted child directly when p is exactly its mount
// point, otherwise delegates At into the child with the rebased path.
func (m *MountFS) At(ctx context.Context, p vfs.Path, writable bool) (vfs.FileSystem, error) {
	fs, rp, err := m.resolve(p)
	if err != nil {
		return nil, err
	}
	if rp.IsRoot() {
		return fs, nil
	}
	return fs.At(ctx, rp, writable)
}
