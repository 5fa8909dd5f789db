package vfstest

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/jmgilman/vfs"
)

func testCreateAndOpen(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	t.Run("WriteThenReadRoundTrips", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/round.txt"))
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		if _, err := entry.Stream().Write(ctx, []byte("hello")); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := entry.Stream().Flush(ctx); err != nil {
			t.Fatalf("Flush: %v", err)
		}
		entry.Close()

		read, ok, err := fsys.OpenFileRead(ctx, vfs.MustPath("/round.txt"))
		if err != nil {
			t.Fatalf("OpenFileRead: %v", err)
		}
		if !ok {
			t.Fatalf("OpenFileRead(/round.txt): got ok=false, want true")
		}
		defer read.Close()

		got := readAll(t, ctx, read.Stream())
		if !bytes.Equal(got, []byte("hello")) {
			t.Errorf("content: got %q, want %q", got, "hello")
		}
	})

	t.Run("OpenFileReadMissing", func(t *testing.T) {
		_, ok, err := fsys.OpenFileRead(ctx, vfs.MustPath("/missing.txt"))
		if err != nil {
			t.Fatalf("OpenFileRead: %v", err)
		}
		if ok {
			t.Errorf("OpenFileRead(/missing.txt): got ok=true, want false")
		}
	})

	t.Run("OpenFileWriteOnMissing", func(t *testing.T) {
		entry, ok, err := fsys.OpenFileWrite(ctx, vfs.MustPath("/writeme.txt"))
		if err != nil {
			t.Fatalf("OpenFileWrite: %v", err)
		}
		if cfg.OpenWriteImplicitCreate {
			if !ok {
				t.Fatalf("OpenFileWrite(/writeme.txt): got ok=false, want true (implicit create)")
			}
			entry.Close()
		} else if ok {
			entry.Close()
			t.Errorf("OpenFileWrite(/writeme.txt): got ok=true, want false (no implicit create)")
		}
	})

	t.Run("OpenFileReadWriteCreatesOnMissing", func(t *testing.T) {
		entry, ok, err := fsys.OpenFileReadWrite(ctx, vfs.MustPath("/rw.txt"))
		if err != nil {
			t.Fatalf("OpenFileReadWrite: %v", err)
		}
		if !ok {
			t.Fatalf("OpenFileReadWrite(/rw.txt): got ok=false, want true")
		}
		defer entry.Close()

		exists, err := fsys.FileExists(ctx, vfs.MustPath("/rw.txt"))
		if err != nil {
			t.Fatalf("FileExists: %v", err)
		}
		if !exists {
			t.Errorf("FileExists(/rw.txt): got false, want true after OpenFileReadWrite")
		}
	})

	if cfg.ImplicitParentDirs {
		t.Run("CreateFileWithMissingParent", func(t *testing.T) {
			entry, err := fsys.CreateFile(ctx, vfs.MustPath("/deep/nested/leaf.txt"))
			if err != nil {
				t.Fatalf("CreateFile with missing parent: %v", err)
			}
			entry.Close()
		})
	}
}

func readAll(t *testing.T, ctx context.Context, s vfs.Stream) []byte {
	t.Helper()
	var buf bytes.Buffer
	chunk := make([]byte, 4096)
	for {
		n, err := s.Read(ctx, chunk)
		if n > 0 {
			buf.Write(chunk[:n])
		}
		if err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("Read: %v", err)
		}
		if n == 0 {
			break
		}
	}
	return buf.Bytes()
}
