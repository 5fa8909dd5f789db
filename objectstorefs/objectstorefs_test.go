package objectstorefs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/objectstorefs"
)

func newTestFS(t *testing.T) (*objectstorefs.ObjectStoreFS, *fakeClient) {
	t.Helper()
	client := newFakeClient()
	fs := objectstorefs.NewWithClient(client, "bucket", "", false)
	return fs, client
}

func readAll(t *testing.T, ctx context.Context, s vfs.Stream) []byte {
	t.Helper()
	var out []byte
	buf := make([]byte, 16)
	for {
		n, err := s.Read(ctx, buf)
		out = append(out, buf[:n]...)
		if err != nil {
			break
		}
	}
	return out
}

// A written-but-unflushed object is visible to FileExists on this FS
// but absent from the real store until Flush succeeds.
func TestFlushVisibility(t *testing.T) {
	ctx := context.Background()
	fs, client := newTestFS(t)
	p := vfs.MustPath("/report.csv")

	entry, err := fs.CreateFile(ctx, p)
	require.NoError(t, err)
	_, err = entry.Stream().Write(ctx, []byte("a,b,c"))
	require.NoError(t, err)

	exists, err := fs.FileExists(ctx, p)
	require.NoError(t, err)
	assert.True(t, exists, "pending write should be visible locally")

	_, _, realErr := client.GetObject(ctx, "bucket", "report.csv")
	require.Error(t, realErr, "unflushed write must not reach the real store")

	require.NoError(t, entry.Stream().Flush(ctx))

	rc, size, err := client.GetObject(ctx, "bucket", "report.csv")
	require.NoError(t, err)
	defer rc.Close()
	assert.EqualValues(t, 5, size)
}

// Wrapping the write-through stream in vfs.WriteLimited caps how much
// an upload may buffer before it is rejected.
func TestWriteLimitedUpload(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)
	p := vfs.MustPath("/upload.bin")

	entry, err := fs.CreateFile(ctx, p)
	require.NoError(t, err)
	limited := vfs.WriteLimited(entry.Stream(), 4)

	n, err := limited.Write(ctx, []byte("ok"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = limited.Write(ctx, []byte("toolong"))
	assert.Error(t, err)
}

func TestCreateFileThenOpenFileRead(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)
	p := vfs.MustPath("/doc.txt")

	entry, err := fs.CreateFile(ctx, p)
	require.NoError(t, err)
	_, err = entry.Stream().Write(ctx, []byte("hello"))
	require.NoError(t, err)
	require.NoError(t, entry.Stream().Flush(ctx))

	read, ok, err := fs.OpenFileRead(ctx, p)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("hello"), readAll(t, ctx, read.Stream()))
}

func TestOpenFileWriteFailsOnMissing(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)

	_, ok, err := fs.OpenFileWrite(ctx, vfs.MustPath("/missing.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpenFileReadWriteCreatesWhenMissing(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)

	entry, ok, err := fs.OpenFileReadWrite(ctx, vfs.MustPath("/new.txt"))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, vfs.KindFileRW, entry.Kind())
}

func TestDeleteFileTombstonesAfterRemoval(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)
	p := vfs.MustPath("/gone.txt")

	entry, err := fs.CreateFile(ctx, p)
	require.NoError(t, err)
	require.NoError(t, entry.Stream().Flush(ctx))

	removed, err := fs.DeleteFile(ctx, p)
	require.NoError(t, err)
	assert.True(t, removed)

	status, err := fs.FileStat(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, vfs.StatusDeleted, status)
}

func TestEntriesMergesRealPendingAndSimulatedDirs(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)

	flushed, err := fs.CreateFile(ctx, vfs.MustPath("/flushed.txt"))
	require.NoError(t, err)
	require.NoError(t, flushed.Stream().Flush(ctx))

	_, err = fs.CreateFile(ctx, vfs.MustPath("/pending.txt"))
	require.NoError(t, err)

	_, err = fs.CreateDirectory(ctx, vfs.MustPath("/empty-dir"))
	require.NoError(t, err)

	entries, err := fs.Entries(ctx, vfs.RootPath(), vfs.Shallow("*"))
	require.NoError(t, err)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.Path().Name()] = true
	}
	assert.True(t, names["flushed.txt"])
	assert.True(t, names["pending.txt"])
	assert.True(t, names["empty-dir"])
}

func TestDirExistsSeesSimulatedDirectory(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)

	ok, err := fs.DirExists(ctx, vfs.MustPath("/sub"))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fs.CreateDirectory(ctx, vfs.MustPath("/sub"))
	require.NoError(t, err)

	ok, err = fs.DirExists(ctx, vfs.MustPath("/sub"))
	require.NoError(t, err)
	assert.True(t, ok, "an empty simulated directory must exist before any object is stored under it")
}

func TestDeleteDirectoryRecursiveRemovesAllObjects(t *testing.T) {
	ctx := context.Background()
	fs, client := newTestFS(t)

	for _, name := range []string{"/dir/a.txt", "/dir/b.txt"} {
		entry, err := fs.CreateFile(ctx, vfs.MustPath(name))
		require.NoError(t, err)
		require.NoError(t, entry.Stream().Flush(ctx))
	}

	ok, err := fs.DeleteDirectory(ctx, vfs.MustPath("/dir"), false)
	require.NoError(t, err)
	assert.False(t, ok, "non-recursive delete of a non-empty directory must fail")

	ok, err = fs.DeleteDirectory(ctx, vfs.MustPath("/dir"), true)
	require.NoError(t, err)
	assert.True(t, ok)

	objs, err := client.ListObjects(ctx, "bucket", "dir/", true)
	require.NoError(t, err)
	assert.Empty(t, objs)
}

func TestAtScopesToPrefixAndSharesState(t *testing.T) {
	ctx := context.Background()
	fs, _ := newTestFS(t)

	_, err := fs.CreateDirectory(ctx, vfs.MustPath("/sub"))
	require.NoError(t, err)

	sub, err := fs.At(ctx, vfs.MustPath("/sub"), true)
	require.NoError(t, err)

	entry, err := sub.CreateFile(ctx, vfs.MustPath("/file.txt"))
	require.NoError(t, err)
	require.NoError(t, entry.Stream().Flush(ctx))

	exists, err := fs.FileExists(ctx, vfs.MustPath("/sub/file.txt"))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	fs := objectstorefs.NewWithClient(client, "bucket", "", true)

	_, err := fs.CreateFile(ctx, vfs.MustPath("/x"))
	assert.Error(t, err)
}
