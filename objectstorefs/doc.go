// Package objectstorefs implements vfs.FileSystem over an S3-compatible
// object store.
//
// Object stores expose a flat namespace with no native directory
// concept, so ObjectStoreFS simulates directories with a pair of
// in-process maps (directories, files-in-progress) shared along the At
// chain. Writes buffer in memory and become externally visible only on
// an explicit Flush, unlike memoryfs/realfs where writes land
// immediately.
package objectstorefs
