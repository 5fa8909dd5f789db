package vfstest

import (
	"context"
	"testing"

	"github.com/jmgilman/vfs"
)

func testDelete(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	t.Run("DeleteFileRemovesIt", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/victim.txt"))
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		entry.Close()

		removed, err := fsys.DeleteFile(ctx, vfs.MustPath("/victim.txt"))
		if err != nil {
			t.Fatalf("DeleteFile: %v", err)
		}
		if !removed {
			t.Errorf("DeleteFile(/victim.txt): got false, want true")
		}

		exists, err := fsys.FileExists(ctx, vfs.MustPath("/victim.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if exists {
			t.Errorf("FileExists(/victim.txt) after delete: got true, want false")
		}
	})

	t.Run("DeleteFileMissing", func(t *testing.T) {
		removed, err := fsys.DeleteFile(ctx, vfs.MustPath("/never-existed.txt"))
		if err != nil {
			t.Fatalf("DeleteFile: %v", err)
		}
		if removed {
			t.Errorf("DeleteFile(/never-existed.txt): got true, want false")
		}
	})

	t.Run("DeleteDirectoryRecursive", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/tree/leaf.txt"))
		if err != nil {
			if cfg.ImplicitParentDirs {
				t.Fatalf("CreateFile: %v", err)
			}
			if _, derr := fsys.CreateDirectory(ctx, vfs.MustPath("/tree")); derr != nil {
				t.Fatalf("CreateDirectory: %v", derr)
			}
			entry, err = fsys.CreateFile(ctx, vfs.MustPath("/tree/leaf.txt"))
			if err != nil {
				t.Fatalf("CreateFile: %v", err)
			}
		}
		entry.Close()

		removed, err := fsys.DeleteDirectory(ctx, vfs.MustPath("/tree"), true)
		if err != nil {
			t.Fatalf("DeleteDirectory(recursive): %v", err)
		}
		if !removed {
			t.Errorf("DeleteDirectory(/tree, recursive=true): got false, want true")
		}

		exists, err := fsys.FileExists(ctx, vfs.MustPath("/tree/leaf.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if exists {
			t.Errorf("FileExists(/tree/leaf.txt) after recursive delete: got true, want false")
		}
	})
}
