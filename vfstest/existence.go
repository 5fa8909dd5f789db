package vfstest

import (
	"context"
	"testing"

	"github.com/jmgilman/vfs"
)

func testExistence(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	t.Run("MissingFile", func(t *testing.T) {
		exists, err := fsys.FileExists(ctx, vfs.MustPath("/nope.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if exists {
			t.Errorf("FileExists(/nope.txt): got true, want false")
		}

		status, err := fsys.FileStat(ctx, vfs.MustPath("/nope.txt"))
		if err != nil {
			t.Fatalf("FileStat: %v", err)
		}
		if status != vfs.StatusNotFound {
			t.Errorf("FileStat(/nope.txt): got %v, want StatusNotFound", status)
		}
	})

	t.Run("CreatedFile", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/a.txt"))
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		defer entry.Close()

		exists, err := fsys.FileExists(ctx, vfs.MustPath("/a.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if !exists {
			t.Errorf("FileExists(/a.txt): got false, want true")
		}

		status, err := fsys.FileStat(ctx, vfs.MustPath("/a.txt"))
		if err != nil {
			t.Fatalf("FileStat: %v", err)
		}
		if status != vfs.StatusExists {
			t.Errorf("FileStat(/a.txt): got %v, want StatusExists", status)
		}
	})

	t.Run("DeletedFile", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/b.txt"))
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		entry.Close()

		removed, err := fsys.DeleteFile(ctx, vfs.MustPath("/b.txt"))
		if err != nil {
			t.Fatalf("DeleteFile: %v", err)
		}
		if !removed {
			t.Fatalf("DeleteFile(/b.txt): got false, want true")
		}

		status, err := fsys.FileStat(ctx, vfs.MustPath("/b.txt"))
		if err != nil {
			t.Fatalf("FileStat: %v", err)
		}
		want := vfs.StatusDeleted
		if cfg.NoTombstones {
			want = vfs.StatusNotFound
		}
		if status != want {
			t.Errorf("FileStat(/b.txt) after delete: got %v, want %v", status, want)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		if cfg.VirtualDirectories {
			t.Skip("backend reports directories virtually; covered by Entries tests")
		}

		entry, err := fsys.CreateDirectory(ctx, vfs.MustPath("/dir"))
		if err != nil {
			t.Fatalf("CreateDirectory: %v", err)
		}
		defer entry.Close()

		dirExists, err := fsys.DirExists(ctx, vfs.MustPath("/dir"))
		if err != nil {
			t.Fatalf("DirExists: %v", err)
		}
		if !dirExists {
			t.Errorf("DirExists(/dir): got false, want true")
		}
	})
}
