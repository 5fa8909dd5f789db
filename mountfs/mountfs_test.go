package mountfs_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/memoryfs"
	"github.com/jmgilman/vfs/mountfs"
	"github.com/jmgilman/vfs/vfstest"
)

// TestMountConformance runs the shared suite against a mount table with
// a single MemoryFS mounted at root: every generic path resolves
// through resolve() to that one child unchanged, so the table should
// behave exactly like MemoryBackend from a caller's perspective.
func TestMountConformance(t *testing.T) {
	vfstest.Suite(t, func() vfs.FileSystem {
		m := mountfs.New()
		m.Mount(vfs.RootPath(), memoryfs.New(false))
		return m
	}, vfstest.MemoryConfig())
}

func TestMountRouting(t *testing.T) {
	ctx := context.Background()
	a := memoryfs.New(false)
	b := memoryfs.New(false)

	m := mountfs.New()
	m.Mount(vfs.MustPath("/tmp"), a)
	m.Mount(vfs.RootPath(), b)

	_, err := m.CreateFile(ctx, vfs.MustPath("/tmp/x"))
	require.NoError(t, err)
	existsInA, err := a.FileExists(ctx, vfs.MustPath("/x"))
	require.NoError(t, err)
	assert.True(t, existsInA)

	_, err = m.CreateFile(ctx, vfs.MustPath("/y"))
	require.NoError(t, err)
	existsInB, err := b.FileExists(ctx, vfs.MustPath("/y"))
	require.NoError(t, err)
	assert.True(t, existsInB)

	entries, err := m.Entries(ctx, vfs.MustPath("/tmp"), vfs.Shallow("*"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/x", entries[0].Path().String())
}

func TestMountRoutingPicksLongestPrefix(t *testing.T) {
	ctx := context.Background()
	root := memoryfs.New(false)
	tmp := memoryfs.New(false)
	tmpNested := memoryfs.New(false)

	m := mountfs.New()
	m.Mount(vfs.RootPath(), root)
	m.Mount(vfs.MustPath("/tmp"), tmp)
	m.Mount(vfs.MustPath("/tmp/nested"), tmpNested)

	_, err := m.CreateFile(ctx, vfs.MustPath("/tmp/nested/deep/file.txt"))
	require.NoError(t, err)

	exists, err := tmpNested.FileExists(ctx, vfs.MustPath("/deep/file.txt"))
	require.NoError(t, err)
	assert.True(t, exists)

	existsInTmp, _ := tmp.FileExists(ctx, vfs.MustPath("/nested/deep/file.txt"))
	assert.False(t, existsInTmp)
}

func TestMountUnknownPathFails(t *testing.T) {
	ctx := context.Background()
	m := mountfs.New()
	m.Mount(vfs.MustPath("/tmp"), memoryfs.New(false))

	_, err := m.FileExists(ctx, vfs.MustPath("/other/file.txt"))
	require.Error(t, err)
}

func TestMountUnmountRemovesRoute(t *testing.T) {
	ctx := context.Background()
	m := mountfs.New()
	m.Mount(vfs.MustPath("/tmp"), memoryfs.New(false))
	m.Unmount(vfs.MustPath("/tmp"))

	_, err := m.FileExists(ctx, vfs.MustPath("/tmp/x"))
	require.Error(t, err)
}

func TestMountReadOnlyReportsTrueButDelegates(t *testing.T) {
	ctx := context.Background()
	m := mountfs.New()
	m.Mount(vfs.RootPath(), memoryfs.New(false))
	assert.True(t, m.ReadOnly())

	_, err := m.CreateFile(ctx, vfs.MustPath("/x"))
	require.NoError(t, err)
}

func TestMountAtReturnsChildDirectlyAtMountPoint(t *testing.T) {
	ctx := context.Background()
	child := memoryfs.New(false)
	m := mountfs.New()
	m.Mount(vfs.MustPath("/tmp"), child)

	sub, err := m.At(ctx, vfs.MustPath("/tmp"), true)
	require.NoError(t, err)
	assert.Same(t, vfs.FileSystem(child), sub)
}
