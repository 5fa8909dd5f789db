package vfstest

import (
	"context"
	"testing"

	"github.com/jmgilman/vfs"
)

func testEntries(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	for _, p := range []string{"/list/a.txt", "/list/b.txt", "/list/sub/c.txt"} {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath(p))
		if err != nil {
			t.Fatalf("CreateFile(%s): %v", p, err)
		}
		entry.Close()
	}

	t.Run("Shallow", func(t *testing.T) {
		entries, err := fsys.Entries(ctx, vfs.MustPath("/list"), vfs.Shallow(""))
		if err != nil {
			t.Fatalf("Entries(shallow): %v", err)
		}
		if len(entries) != 3 {
			t.Errorf("Entries(shallow) count: got %d, want 3 (a.txt, b.txt, sub)", len(entries))
		}
	})

	t.Run("Recursive", func(t *testing.T) {
		entries, err := fsys.Entries(ctx, vfs.MustPath("/list"), vfs.Recurse(""))
		if err != nil {
			t.Fatalf("Entries(recursive): %v", err)
		}
		var files int
		for _, e := range entries {
			if !e.IsDir() {
				files++
			}
		}
		if files != 3 {
			t.Errorf("Entries(recursive) file count: got %d, want 3", files)
		}
	})

	t.Run("FilterMatchesExtension", func(t *testing.T) {
		entries, err := fsys.Entries(ctx, vfs.MustPath("/list"), vfs.Shallow("*.txt"))
		if err != nil {
			t.Fatalf("Entries(filter): %v", err)
		}
		for _, e := range entries {
			if e.IsDir() {
				t.Errorf("Entries(*.txt) matched a directory: %s", e.Path())
			}
		}
		if len(entries) != 2 {
			t.Errorf("Entries(*.txt) count: got %d, want 2", len(entries))
		}
	})

	t.Run("NonexistentDirectoryFails", func(t *testing.T) {
		_, err := fsys.Entries(ctx, vfs.MustPath("/nope"), vfs.Shallow(""))
		if err == nil {
			t.Errorf("Entries(/nope): got nil error, want CodeNotFound")
		}
	})
}
