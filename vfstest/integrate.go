package vfstest

import (
	"context"
	"testing"

	"github.com/jmgilman/vfs"
)

func testIntegrate(t *testing.T, fsys vfs.FileSystem, cfg Config) {
	ctx := context.Background()

	t.Run("CopiesSourceBytes", func(t *testing.T) {
		source := vfs.NewMemoryStream([]byte("integrated content"))

		entry, err := fsys.Integrate(ctx, vfs.MustPath("/integrated.txt"), source)
		if err != nil {
			t.Fatalf("Integrate: %v", err)
		}
		defer entry.Close()

		read, ok, err := fsys.OpenFileRead(ctx, vfs.MustPath("/integrated.txt"))
		if err != nil {
			t.Fatalf("OpenFileRead: %v", err)
		}
		if !ok {
			t.Fatalf("OpenFileRead(/integrated.txt): got ok=false, want true")
		}
		defer read.Close()

		got := readAll(t, ctx, read.Stream())
		if string(got) != "integrated content" {
			t.Errorf("content: got %q, want %q", got, "integrated content")
		}
	})

	t.Run("ReplacesExisting", func(t *testing.T) {
		entry, err := fsys.CreateFile(ctx, vfs.MustPath("/replaced.txt"))
		if err != nil {
			t.Fatalf("CreateFile: %v", err)
		}
		entry.Stream().Write(ctx, []byte("old"))
		entry.Stream().Flush(ctx)
		entry.Close()

		source := vfs.NewMemoryStream([]byte("new"))
		replaced, err := fsys.Integrate(ctx, vfs.MustPath("/replaced.txt"), source)
		if err != nil {
			t.Fatalf("Integrate: %v", err)
		}
		defer replaced.Close()

		read, ok, err := fsys.OpenFileRead(ctx, vfs.MustPath("/replaced.txt"))
		if err != nil {
			t.Fatalf("OpenFileRead: %v", err)
		}
		if !ok {
			t.Fatalf("OpenFileRead(/replaced.txt): got ok=false, want true")
		}
		defer read.Close()

		got := readAll(t, ctx, read.Stream())
		if string(got) != "new" {
			t.Errorf("content after Integrate replace: got %q, want %q", got, "new")
		}
	})
}
