package vfs

// EntryKind tags the variant a FileEntry holds.
type EntryKind int

const (
	// KindDirectory is a directory handle; it owns no stream.
	KindDirectory EntryKind = iota
	// KindFileRef is an unopened file reference; it owns no stream.
	KindFileRef
	// KindFileRO is a file opened for reading only.
	KindFileRO
	// KindFileWO is a file opened for writing only.
	KindFileWO
	// KindFileRW is a file opened for both reading and writing.
	KindFileRW
)

// FileEntry is a tagged handle over a path within a FileSystem. Directory
// and FileRef entries (as returned by listing) own no stream. The three
// opened variants (FileRO, FileWO, FileRW) own their Stream for the
// duration of the handle, and the stream's capability flags must match
// the variant's name.
type FileEntry struct {
	kind   EntryKind
	path   Path
	fs     FileSystem
	stream Stream
}

// NewDirectoryEntry constructs a Directory entry.
func NewDirectoryEntry(path Path, fs FileSystem) FileEntry {
	return FileEntry{kind: KindDirectory, path: path, fs: fs}
}

// NewFileRefEntry constructs an unopened FileRef entry.
func NewFileRefEntry(path Path, fs FileSystem) FileEntry {
	return FileEntry{kind: KindFileRef, path: path, fs: fs}
}

// NewFileROEntry constructs an opened read-only entry. stream must report
// Readable() == true and Writable() == false.
func NewFileROEntry(path Path, fs FileSystem, stream Stream) FileEntry {
	return FileEntry{kind: KindFileRO, path: path, fs: fs, stream: stream}
}

// NewFileWOEntry constructs an opened write-only entry. stream must
// report Writable() == true and Readable() == false.
func NewFileWOEntry(path Path, fs FileSystem, stream Stream) FileEntry {
	return FileEntry{kind: KindFileWO, path: path, fs: fs, stream: stream}
}

// NewFileRWEntry constructs an opened read-write entry. stream must
// report both Readable() and Writable() true.
func NewFileRWEntry(path Path, fs FileSystem, stream Stream) FileEntry {
	return FileEntry{kind: KindFileRW, path: path, fs: fs, stream: stream}
}

// Kind returns the entry's variant.
func (e FileEntry) Kind() EntryKind { return e.kind }

// Path returns the entry's path.
func (e FileEntry) Path() Path { return e.path }

// FS returns the filesystem the entry belongs to.
func (e FileEntry) FS() FileSystem { return e.fs }

// Stream returns the entry's owned stream. Returns nil for Directory and
// FileRef entries.
func (e FileEntry) Stream() Stream { return e.stream }

// IsDir reports whether the entry is a Directory.
func (e FileEntry) IsDir() bool { return e.kind == KindDirectory }

// Close releases the entry's stream, if any. Directory and FileRef
// entries are no-ops.
func (e FileEntry) Close() error {
	if e.stream == nil {
		return nil
	}
	return e.stream.Close()
}

// FileStatus is the result of fileStat: whether a path currently exists,
// was never present, or was deleted (observable through tombstones or
// overlay deletion markers).
type FileStatus int

const (
	// StatusNotFound indicates the path was never created in this FS.
	StatusNotFound FileStatus = iota
	// StatusExists indicates the path currently resolves to a live file.
	StatusExists
	// StatusDeleted indicates the path was created and later deleted;
	// distinct from StatusNotFound so an Overlay can shadow a lower-layer
	// file of the same name.
	StatusDeleted
)

func (s FileStatus) String() string {
	switch s {
	case StatusExists:
		return "Exists"
	case StatusDeleted:
		return "Deleted"
	default:
		return "NotFound"
	}
}

// ListMode selects shallow (direct children only) or recursive
// (depth-first) traversal for FileSystem.Entries, with a glob filter
// applied to each candidate name.
type ListMode struct {
	Recursive bool
	Filter    string // glob: "*" any run, "?" one char; "" or "*" matches everything
}

// Shallow returns a ListMode that lists direct children matching filter.
func Shallow(filter string) ListMode {
	return ListMode{Recursive: false, Filter: filter}
}

// Recurse returns a ListMode that lists the full subtree matching filter.
func Recurse(filter string) ListMode {
	return ListMode{Recursive: true, Filter: filter}
}
