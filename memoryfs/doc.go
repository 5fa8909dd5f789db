// Package memoryfs implements vfs.FileSystem over an in-memory directory
// tree with tombstone bookkeeping: a deleted path reports
// vfs.StatusDeleted rather than reverting to vfs.StatusNotFound, so a
// layered filesystem stacked on top can hide a lower-layer file of the
// same name.
//
// Writes are visible to readers immediately after they resolve — there is
// no deferred-flush step as in objectstorefs.
package memoryfs
