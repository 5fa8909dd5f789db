package vfstest

import (
	"testing"

	"github.com/jmgilman/vfs"
)

// Suite runs the full conformance suite against a fresh vfs.FileSystem
// built by newFS for each subtest group, adapting to cfg's documented
// backend behavior. newFS must return an empty, writable filesystem.
func Suite(t *testing.T, newFS func() vfs.FileSystem, cfg Config) {
	t.Run("Existence", func(t *testing.T) {
		if cfg.skip("Existence") {
			t.Skip("skipped by backend configuration")
		}
		testExistence(t, newFS(), cfg)
	})

	t.Run("CreateAndOpen", func(t *testing.T) {
		if cfg.skip("CreateAndOpen") {
			t.Skip("skipped by backend configuration")
		}
		testCreateAndOpen(t, newFS(), cfg)
	})

	t.Run("Delete", func(t *testing.T) {
		if cfg.skip("Delete") {
			t.Skip("skipped by backend configuration")
		}
		testDelete(t, newFS(), cfg)
	})

	t.Run("Entries", func(t *testing.T) {
		if cfg.skip("Entries") {
			t.Skip("skipped by backend configuration")
		}
		testEntries(t, newFS(), cfg)
	})

	t.Run("Integrate", func(t *testing.T) {
		if cfg.skip("Integrate") {
			t.Skip("skipped by backend configuration")
		}
		testIntegrate(t, newFS(), cfg)
	})

	t.Run("At", func(t *testing.T) {
		if cfg.skip("At") {
			t.Skip("skipped by backend configuration")
		}
		testAt(t, newFS(), cfg)
	})
}
