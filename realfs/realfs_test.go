package realfs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/realfs"
	"github.com/jmgilman/vfs/vfstest"
)

func TestRealFSConformance(t *testing.T) {
	vfstest.Suite(t, func() vfs.FileSystem {
		fs, err := realfs.New(t.TempDir(), false)
		require.NoError(t, err)
		return fs
	}, vfstest.RealConfig())
}

func TestWriteReadRoundTripsThroughHostDisk(t *testing.T) {
	ctx := context.Background()
	fs, err := realfs.New(t.TempDir(), false)
	require.NoError(t, err)

	entry, err := fs.CreateFile(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	_, err = entry.Stream().Write(ctx, []byte("hi"))
	require.NoError(t, err)
	require.NoError(t, entry.Close())

	read, ok, err := fs.OpenFileRead(ctx, vfs.MustPath("/a/b.txt"))
	require.NoError(t, err)
	require.True(t, ok)
	defer read.Close()

	buf := make([]byte, 2)
	n, err := read.Stream().Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, "hi", string(buf[:n]))
}

func TestOpenFileWriteFailsOnMissingFile(t *testing.T) {
	ctx := context.Background()
	fs, err := realfs.New(t.TempDir(), false)
	require.NoError(t, err)

	_, ok, err := fs.OpenFileWrite(ctx, vfs.MustPath("/missing.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteFileRemovesFromDisk(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	fs, err := realfs.New(root, false)
	require.NoError(t, err)

	_, err = fs.CreateFile(ctx, vfs.MustPath("/gone.txt"))
	require.NoError(t, err)

	removed, err := fs.DeleteFile(ctx, vfs.MustPath("/gone.txt"))
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = os.Stat(filepath.Join(root, "gone.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestReadOnlyRejectsMutation(t *testing.T) {
	ctx := context.Background()
	fs, err := realfs.New(t.TempDir(), true)
	require.NoError(t, err)

	_, err = fs.CreateFile(ctx, vfs.MustPath("/x.txt"))
	assert.Error(t, err)
}

func TestAtUpgradingReadOnlyToWritableFails(t *testing.T) {
	ctx := context.Background()
	fs, err := realfs.New(t.TempDir(), true)
	require.NoError(t, err)

	_, err = fs.At(ctx, vfs.RootPath(), true)
	assert.Error(t, err)
}
