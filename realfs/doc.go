// Package realfs implements vfs.FileSystem over the host operating
// system's filesystem. RealFS wraps an osfs.Filesystem rooted at a
// configured directory, delegating confinement to billy's bound-OS
// filesystem and relying on vfs.Path's own ban on dotted segments to
// rule out traversal out of that root.
package realfs
