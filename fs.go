package vfs

import "context"

// FileSystem is the contract every backend implements: existence checks,
// create/delete, open in each capability mode, cross-backend integrate,
// directory listing, and sub-filesystem addressing. All operations are
// cancellable via ctx and may suspend.
type FileSystem interface {
	// ReadOnly reports whether mutating operations are rejected. Mount
	// reports true unconditionally even though routed children may be
	// writable; callers must not infer a child's writability from it.
	ReadOnly() bool

	// FileExists reports whether p resolves to a file. Fails only on an
	// invalid path.
	FileExists(ctx context.Context, p Path) (bool, error)
	// DirExists reports whether p resolves to a directory.
	DirExists(ctx context.Context, p Path) (bool, error)
	// FileStat reports p's FileStatus.
	FileStat(ctx context.Context, p Path) (FileStatus, error)

	// CreateFile creates an empty file at p (replacing any existing file)
	// and returns an opened read-write handle. Fails with CodeReadOnly on
	// a read-only FS, CodeNotFound if an ancestor directory is missing
	// and the backend does not create intermediate directories.
	CreateFile(ctx context.Context, p Path) (FileEntry, error)
	// CreateDirectory creates p and any missing intermediate directories,
	// idempotently succeeding if p already exists. Fails with
	// CodeReadOnly on a read-only FS.
	CreateDirectory(ctx context.Context, p Path) (FileEntry, error)

	// OpenFileRead opens p for reading. Returns ok == false if p is
	// absent; never creates.
	OpenFileRead(ctx context.Context, p Path) (entry FileEntry, ok bool, err error)
	// OpenFileWrite opens p for writing. Backend policy governs behavior
	// on a missing file; see each backend's doc comment.
	OpenFileWrite(ctx context.Context, p Path) (entry FileEntry, ok bool, err error)
	// OpenFileReadWrite opens p for reading and writing, creating it if
	// absent on backends that support implicit creation.
	OpenFileReadWrite(ctx context.Context, p Path) (entry FileEntry, ok bool, err error)

	// DeleteFile removes p, returning true iff a file was actually
	// removed. Fails with CodeReadOnly on a read-only FS.
	DeleteFile(ctx context.Context, p Path) (bool, error)
	// DeleteDirectory removes p. If recursive is false and p is
	// non-empty, behavior is backend-defined (see doc comments).
	DeleteDirectory(ctx context.Context, p Path, recursive bool) (bool, error)

	// Integrate creates or replaces dest in this FS, bulk-copying bytes
	// from source. This is the cross-backend import primitive Overlay
	// uses for copy-up.
	Integrate(ctx context.Context, dest Path, source Stream) (FileEntry, error)

	// Entries lists p's children per mode. Fails with CodeNotFound if p
	// does not resolve to a directory.
	Entries(ctx context.Context, p Path, mode ListMode) ([]FileEntry, error)

	// At returns a sub-filesystem rooted at p. writable controls whether
	// the sub-filesystem permits mutation; requesting writable access
	// into a read-only FS fails with CodeReadOnly.
	At(ctx context.Context, p Path, writable bool) (FileSystem, error)
}
