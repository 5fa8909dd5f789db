package memoryfs

import (
	"context"
	"sort"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

// MemoryFS implements vfs.FileSystem over an in-memory directory tree.
type MemoryFS struct {
	root     *dirNode
	shared   *sharedState
	readOnly bool
}

// New constructs an empty MemoryFS. readOnly propagates to the root node
// and every directory created beneath it; At refuses to hand out a
// writable sub-FS of a read-only MemoryFS.
func New(readOnly bool) *MemoryFS {
	root := newDirNode("", nil, readOnly)
	return &MemoryFS{root: root, shared: newSharedState(), readOnly: readOnly}
}

var _ vfs.FileSystem = (*MemoryFS)(nil)

func (m *MemoryFS) ReadOnly() bool { return m.readOnly }

// resolveDir walks from m.root along p's segments. If create is true,
// missing intermediate directories are created inheriting the parent's
// readOnly flag; a read-only ancestor encountered while creating fails
// with CodeReadOnly. If create is false, a missing segment or a segment
// that names a file yields (nil, false, nil).
func (m *MemoryFS) resolveDir(p vfs.Path, create bool) (*dirNode, bool, error) {
	cur := m.root
	for _, seg := range p.Segments() {
		cur.mu.RLock()
		child, ok := cur.children[seg]
		cur.mu.RUnlock()

		if ok {
			dir, isDir := child.(*dirNode)
			if !isDir {
				return nil, false, nil
			}
			cur = dir
			continue
		}

		if !create {
			return nil, false, nil
		}
		if cur.readOnly {
			return nil, false, vfserrors.New(vfserrors.CodeReadOnly, "cannot create directory under a read-only ancestor")
		}

		cur.mu.Lock()
		// Re-check under the write lock in case of a concurrent creator.
		if existing, ok := cur.children[seg]; ok {
			cur.mu.Unlock()
			dir, isDir := existing.(*dirNode)
			if !isDir {
				return nil, false, nil
			}
			cur = dir
			continue
		}
		next := newDirNode(seg, cur, cur.readOnly)
		cur.children[seg] = next
		cur.mu.Unlock()
		m.shared.clearTombstone(childFullPath(cur, seg))
		cur = next
	}
	return cur, true, nil
}

func (m *MemoryFS) lookupFile(p vfs.Path) (*fileNode, *dirNode, bool) {
	parentDir, ok, _ := m.resolveDir(p.Parent(), false)
	if !ok {
		return nil, nil, false
	}
	parentDir.mu.RLock()
	defer parentDir.mu.RUnlock()
	child, ok := parentDir.children[p.Name()]
	if !ok {
		return nil, parentDir, false
	}
	file, isFile := child.(*fileNode)
	if !isFile {
		return nil, parentDir, false
	}
	return file, parentDir, true
}

func (m *MemoryFS) FileExists(_ context.Context, p vfs.Path) (bool, error) {
	_, _, ok := m.lookupFile(p)
	return ok, nil
}

func (m *MemoryFS) DirExists(_ context.Context, p vfs.Path) (bool, error) {
	_, ok, _ := m.resolveDir(p, false)
	return ok, nil
}

func (m *MemoryFS) FileStat(_ context.Context, p vfs.Path) (vfs.FileStatus, error) {
	if _, _, ok := m.lookupFile(p); ok {
		return vfs.StatusExists, nil
	}
	if parentDir, ok, _ := m.resolveDir(p.Parent(), false); ok {
		if m.shared.isTombstoned(childFullPath(parentDir, p.Name())) {
			return vfs.StatusDeleted, nil
		}
	} else if m.shared.isTombstoned(p.FullPath(m.root.fullPath())) {
		return vfs.StatusDeleted, nil
	}
	return vfs.StatusNotFound, nil
}

func (m *MemoryFS) CreateFile(_ context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if m.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	parentDir, ok, err := m.resolveDir(p.Parent(), true)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	if !ok {
		return vfs.FileEntry{}, vfserrors.Newf(vfserrors.CodeNotFound, "parent directory missing for %q", p)
	}
	if parentDir.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "parent directory is read-only")
	}

	stream := vfs.NewMemoryStream(nil)
	parentDir.mu.Lock()
	if existing, ok := parentDir.children[p.Name()]; ok {
		if old, isFile := existing.(*fileNode); isFile {
			_ = old.stream.Close()
		}
	}
	parentDir.children[p.Name()] = &fileNode{name: p.Name(), parent: parentDir, stream: stream}
	parentDir.mu.Unlock()
	m.shared.clearTombstone(childFullPath(parentDir, p.Name()))

	return vfs.NewFileRWEntry(p, m, vfs.MirrorOf(stream)), nil
}

func (m *MemoryFS) CreateDirectory(_ context.Context, p vfs.Path) (vfs.FileEntry, error) {
	if m.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	_, ok, err := m.resolveDir(p, true)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	if !ok {
		return vfs.FileEntry{}, vfserrors.Newf(vfserrors.CodeNotFound, "a non-directory segment blocks %q", p)
	}
	return vfs.NewDirectoryEntry(p, m), nil
}

func (m *MemoryFS) openExisting(p vfs.Path, wantRead, wantWrite bool) (vfs.FileEntry, bool, error) {
	file, _, ok := m.lookupFile(p)
	if !ok {
		return vfs.FileEntry{}, false, nil
	}
	rewind(file.stream)
	view := vfs.MirrorOf(file.stream)
	switch {
	case wantRead && wantWrite:
		return vfs.NewFileRWEntry(p, m, view), true, nil
	case wantWrite:
		return vfs.NewFileWOEntry(p, m, vfs.WriteOnly(view)), true, nil
	default:
		return vfs.NewFileROEntry(p, m, vfs.ReadOnly(view)), true, nil
	}
}

func (m *MemoryFS) OpenFileRead(_ context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	return m.openExisting(p, true, false)
}

// OpenFileWrite opens p for writing, creating an empty file if absent.
// The implicit create is specific to this backend; objectstorefs and
// realfs instead return ok=false on a missing file (see their doc
// comments).
func (m *MemoryFS) OpenFileWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if entry, ok, err := m.openExisting(p, false, true); ok || err != nil {
		return entry, ok, err
	}
	entry, err := m.CreateFile(ctx, p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return vfs.NewFileWOEntry(p, m, vfs.WriteOnly(entry.Stream())), true, nil
}

func (m *MemoryFS) OpenFileReadWrite(ctx context.Context, p vfs.Path) (vfs.FileEntry, bool, error) {
	if entry, ok, err := m.openExisting(p, true, true); ok || err != nil {
		return entry, ok, err
	}
	entry, err := m.CreateFile(ctx, p)
	if err != nil {
		return vfs.FileEntry{}, false, err
	}
	return entry, true, nil
}

func (m *MemoryFS) DeleteFile(_ context.Context, p vfs.Path) (bool, error) {
	if m.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	parentDir, ok, _ := m.resolveDir(p.Parent(), false)
	if !ok {
		m.shared.tombstone(p.FullPath(m.root.fullPath()))
		return false, nil
	}

	parentDir.mu.Lock()
	existing, ok := parentDir.children[p.Name()]
	var removed bool
	if ok {
		if file, isFile := existing.(*fileNode); isFile {
			_ = file.stream.Close()
			delete(parentDir.children, p.Name())
			removed = true
		}
	}
	parentDir.mu.Unlock()

	m.shared.tombstone(childFullPath(parentDir, p.Name()))
	return removed, nil
}

func (m *MemoryFS) DeleteDirectory(_ context.Context, p vfs.Path, recursive bool) (bool, error) {
	if m.readOnly {
		return false, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	parentDir, ok, _ := m.resolveDir(p.Parent(), false)
	if !ok {
		return false, nil
	}

	parentDir.mu.Lock()
	existing, ok := parentDir.children[p.Name()]
	if !ok {
		parentDir.mu.Unlock()
		return false, nil
	}
	dir, isDir := existing.(*dirNode)
	if !isDir {
		parentDir.mu.Unlock()
		return false, nil
	}

	dir.mu.RLock()
	nonEmpty := len(dir.children) > 0
	dir.mu.RUnlock()
	if nonEmpty && !recursive {
		parentDir.mu.Unlock()
		return false, nil
	}

	delete(parentDir.children, p.Name())
	parentDir.mu.Unlock()

	for _, full := range disposeSubtree(dir) {
		m.shared.tombstone(full)
	}
	return true, nil
}

// disposeSubtree closes every file stream under dir (depth-first) and
// returns the absolute path of each removed file, for tombstoning.
func disposeSubtree(dir *dirNode) []string {
	var removed []string
	dir.mu.Lock()
	for name, child := range dir.children {
		switch c := child.(type) {
		case *fileNode:
			_ = c.stream.Close()
			removed = append(removed, childFullPath(dir, name))
		case *dirNode:
			removed = append(removed, disposeSubtree(c)...)
		}
	}
	dir.mu.Unlock()
	return removed
}

func (m *MemoryFS) Integrate(_ context.Context, dest vfs.Path, source vfs.Stream) (vfs.FileEntry, error) {
	if m.readOnly {
		return vfs.FileEntry{}, vfserrors.New(vfserrors.CodeReadOnly, "filesystem is read-only")
	}
	parentDir, ok, err := m.resolveDir(dest.Parent(), true)
	if err != nil {
		return vfs.FileEntry{}, err
	}
	if !ok {
		return vfs.FileEntry{}, vfserrors.Newf(vfserrors.CodeNotFound, "parent directory missing for %q", dest)
	}

	cow := vfs.CopyOnWrite(source, func() (vfs.Stream, error) {
		return vfs.NewMemoryStream(nil), nil
	})

	parentDir.mu.Lock()
	if existing, ok := parentDir.children[dest.Name()]; ok {
		if old, isFile := existing.(*fileNode); isFile {
			_ = old.stream.Close()
		}
	}
	parentDir.children[dest.Name()] = &fileNode{name: dest.Name(), parent: parentDir, stream: cow}
	parentDir.mu.Unlock()
	m.shared.clearTombstone(childFullPath(parentDir, dest.Name()))

	return vfs.NewFileRWEntry(dest, m, vfs.MirrorOf(cow)), nil
}

func (m *MemoryFS) Entries(_ context.Context, p vfs.Path, mode vfs.ListMode) ([]vfs.FileEntry, error) {
	dir, ok, _ := m.resolveDir(p, false)
	if !ok {
		return nil, vfserrors.Newf(vfserrors.CodeNotFound, "directory not found: %q", p)
	}

	re, err := vfs.CompileGlob(mode.Filter)
	if err != nil {
		return nil, vfserrors.Wrapf(err, vfserrors.CodePathInvalid, "invalid filter %q", mode.Filter)
	}

	var entries []vfs.FileEntry
	var walkFn func(d *dirNode, base vfs.Path)
	walkFn = func(d *dirNode, base vfs.Path) {
		d.mu.RLock()
		names := make([]string, 0, len(d.children))
		for name := range d.children {
			names = append(names, name)
		}
		sort.Strings(names)
		children := d.children
		d.mu.RUnlock()

		for _, name := range names {
			child := children[name]
			childPath, err := base.Append(name)
			if err != nil {
				continue
			}
			if re.MatchString(name) {
				switch child.(type) {
				case *dirNode:
					entries = append(entries, vfs.NewDirectoryEntry(childPath, m))
				case *fileNode:
					entries = append(entries, vfs.NewFileRefEntry(childPath, m))
				}
			}
			if mode.Recursive {
				if sub, isDir := child.(*dirNode); isDir {
					walkFn(sub, childPath)
				}
			}
		}
	}
	walkFn(dir, p)
	return entries, nil
}

func (m *MemoryFS) At(_ context.Context, p vfs.Path, writable bool) (vfs.FileSystem, error) {
	dir, ok, err := m.resolveDir(p, writable && !m.readOnly)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, vfserrors.Newf(vfserrors.CodeNotFound, "directory not found: %q", p)
	}
	if writable && m.readOnly {
		return nil, vfserrors.New(vfserrors.CodeReadOnly, "cannot upgrade a read-only filesystem to writable")
	}
	return &MemoryFS{root: dir, shared: m.shared, readOnly: !writable}, nil
}
