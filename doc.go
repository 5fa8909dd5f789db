// Package vfs provides a capability-typed virtual file system abstraction
// that unifies access to heterogeneous storage backends behind a single
// asynchronous contract.
//
// A program opens, reads, writes, lists, and deletes files and directories
// through the FileSystem interface; the actual bytes may live on the local
// disk, in process memory, on an S3-compatible object store, in a merged
// overlay of two backends, or under a mount table that routes paths to
// backends. Concrete backends live in sibling packages:
// github.com/jmgilman/vfs/memoryfs, .../realfs, .../objectstorefs,
// .../overlayfs, and .../mountfs.
//
// # Path
//
// Path is a validated absolute path value. Construct one with NewPath;
// construction normalizes backslashes to forward slashes and rejects
// empty strings, non-absolute strings, dotted segments, and disallowed
// characters.
//
// # Stream
//
// Stream is a capability-typed byte sequence. Backends hand out streams
// wrapped in adapters (ReadOnly, WriteOnly, WriteLimited, CopyOnWrite,
// Mirror) rather than exposing the raw concrete type, so callers can
// reason about what a handle permits from its Readable, Writable and
// Owned flags without type-asserting on a concrete implementation.
//
// # FileSystem
//
// FileSystem is the common contract every backend implements: existence
// checks, create/delete, open in each capability mode, cross-backend
// integrate, directory listing, and sub-filesystem addressing via At.
package vfs
