package memoryfs_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/memoryfs"
)

func readAll(t *testing.T, ctx context.Context, s vfs.Stream) []byte {
	t.Helper()
	buf := make([]byte, 0, 64)
	tmp := make([]byte, 16)
	for {
		n, err := s.Read(ctx, tmp)
		buf = append(buf, tmp[:n]...)
		if err == io.EOF {
			return buf
		}
		require.NoError(t, err)
	}
}

func TestMemoryWriteReadRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	entry, err := fs.CreateFile(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	_, err = entry.Stream().Write(ctx, []byte{0x68, 0x69})
	require.NoError(t, err)
	require.NoError(t, entry.Close())

	read, ok, err := fs.OpenFileRead(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hi", string(readAll(t, ctx, read.Stream())))
}

func TestMemoryDeleteAndStat(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	entry, err := fs.CreateFile(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	require.NoError(t, entry.Close())

	removed, err := fs.DeleteFile(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	assert.True(t, removed)

	status, err := fs.FileStat(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	assert.Equal(t, vfs.StatusDeleted, status)

	exists, err := fs.FileExists(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestDeleteFileOnAbsentPathTombstonesAndReturnsFalse(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	removed, err := fs.DeleteFile(ctx, vfs.MustPath("/never/existed.txt"))
	require.NoError(t, err)
	assert.False(t, removed)

	status, err := fs.FileStat(ctx, vfs.MustPath("/never/existed.txt"))
	require.NoError(t, err)
	assert.Equal(t, vfs.StatusDeleted, status)
}

func TestCreateDirectoryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	_, err := fs.CreateDirectory(ctx, vfs.MustPath("/a/b"))
	require.NoError(t, err)
	_, err = fs.CreateDirectory(ctx, vfs.MustPath("/a/b"))
	require.NoError(t, err)

	ok, err := fs.DirExists(ctx, vfs.MustPath("/a/b"))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCreateUnderReadOnlyAncestorFails(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(true)

	_, err := fs.CreateDirectory(ctx, vfs.MustPath("/a"))
	require.Error(t, err)
}

func TestOpenFileWriteCreatesOnMissingInMemory(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	entry, ok, err := fs.OpenFileWrite(ctx, vfs.MustPath("/new.txt"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, entry.Stream().Readable())
	assert.True(t, entry.Stream().Writable())

	exists, _ := fs.FileExists(ctx, vfs.MustPath("/new.txt"))
	assert.True(t, exists)
}

func TestListingFilter(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	for _, p := range []string{"/a.txt", "/b.txt", "/c.csv"} {
		_, err := fs.CreateFile(ctx, vfs.MustPath(p))
		require.NoError(t, err)
	}

	all, err := fs.Entries(ctx, vfs.RootPath(), vfs.Shallow("*"))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	txtOnly, err := fs.Entries(ctx, vfs.RootPath(), vfs.Shallow("*.txt"))
	require.NoError(t, err)
	assert.Len(t, txtOnly, 2)
	for _, e := range txtOnly {
		assert.Contains(t, e.Path().String(), ".txt")
	}
}

func TestEntriesOnMissingDirectoryFails(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	_, err := fs.Entries(ctx, vfs.MustPath("/missing"), vfs.Shallow("*"))
	require.Error(t, err)
}

func TestAtProducesSubFilesystem(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)

	_, err := fs.CreateFile(ctx, vfs.MustPath("/sub/x.txt"))
	require.NoError(t, err)

	sub, err := fs.At(ctx, vfs.MustPath("/sub"), true)
	require.NoError(t, err)

	exists, err := sub.FileExists(ctx, vfs.MustPath("/x.txt"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAtReadOnlyCannotUpgrade(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(true)

	_, err := fs.At(ctx, vfs.RootPath(), true)
	require.Error(t, err)
}

func TestIntegrateCopiesSourceContents(t *testing.T) {
	ctx := context.Background()
	fs := memoryfs.New(false)
	source := vfs.NewMemoryStream([]byte("imported"))

	entry, err := fs.Integrate(ctx, vfs.MustPath("/imported.txt"), source)
	require.NoError(t, err)

	data := readAll(t, ctx, entry.Stream())
	assert.Equal(t, "imported", string(data))
}
