// Package vfstest provides a conformance test suite for vfs.FileSystem
// implementations: a Config captures the documented behavioral
// differences between backends (virtual directories, implicit parent
// creation, implicit create-on-write), and Suite runs the same contract
// tests against any backend, skipping only what its Config says doesn't
// apply.
package vfstest
