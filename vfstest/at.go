package vfstest

import (
	"context"
	"testing"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

func testAt(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	entry, err := fsys.CreateFile(ctx, vfs.MustPath("/scope/inner.txt"))
	if err != nil {
		t.Fatalf("CreateFile: %v", err)
	}
	entry.Stream().Write(ctx, []byte("scoped"))
	entry.Stream().Flush(ctx)
	entry.Close()

	t.Run("SubFSResolvesRelativeToRoot", func(t *testing.T) {
		sub, err := fsys.At(ctx, vfs.MustPath("/scope"), true)
		if err != nil {
			t.Fatalf("At(/scope, writable=true): %v", err)
		}

		exists, err := sub.FileExists(ctx, vfs.MustPath("/inner.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if !exists {
			t.Errorf("FileExists(/inner.txt) on sub-fs: got false, want true")
		}
	})

	t.Run("WritableSubFSAllowsMutation", func(t *testing.T) {
		sub, err := fsys.At(ctx, vfs.MustPath("/scope"), true)
		if err != nil {
			t.Fatalf("At(/scope, writable=true): %v", err)
		}

		created, err := sub.CreateFile(ctx, vfs.MustPath("/new.txt"))
		if err != nil {
			t.Fatalf("CreateFile on writable sub-fs: %v", err)
		}
		created.Close()
	})

	t.Run("ReadOnlySubFSRejectsMutation", func(t *testing.T) {
		sub, err := fsys.At(ctx, vfs.MustPath("/scope"), false)
		if err != nil {
			t.Fatalf("At(/scope, writable=false): %v", err)
		}
		if !sub.ReadOnly() {
			t.Fatalf("ReadOnly() on non-writable sub-fs: got false, want true")
		}

		_, err = sub.CreateFile(ctx, vfs.MustPath("/denied.txt"))
		if err == nil {
			t.Errorf("CreateFile on read-only sub-fs: got nil error, want CodeReadOnly")
		} else if code := vfserrors.GetCode(err); code != vfserrors.CodeReadOnly {
			t.Errorf("CreateFile on read-only sub-fs: got code %v, want CodeReadOnly", code)
		}
	})
}
