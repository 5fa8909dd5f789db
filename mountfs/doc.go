// Package mountfs implements vfs.FileSystem as a longest-prefix router
// over a table of child filesystems. Mount and Unmount are the only
// mutators of the routing table; every FileSystem operation rebases the
// request path from the chosen mount point to "/" and dispatches to the
// matched child unchanged.
package mountfs
