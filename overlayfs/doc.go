// Package overlayfs implements vfs.FileSystem as a copy-on-write merge of
// two sub-filesystems: a lower, assumed read-only source and a mutable
// upper target. Mutations always land in upper; reads consult upper
// first and fall back to lower; an upper tombstone (vfs.StatusDeleted)
// shadows a lower-layer file of the same name.
package overlayfs
