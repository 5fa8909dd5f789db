package vfs_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/vfs"
)

func TestMemoryStreamWriteLeavesCursorAtEnd(t *testing.T) {
	ctx := context.Background()
	s := vfs.NewMemoryStream(nil)

	n, err := s.Write(ctx, []byte("hi"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, int64(2), s.Length())

	// The write cursor sits at the end; reading from here hits EOF
	// immediately, matching a freshly-written, not-yet-reset stream.
	buf := make([]byte, 10)
	_, rerr := s.Read(ctx, buf)
	assert.ErrorIs(t, rerr, io.EOF)

	require.NoError(t, s.SetLength(ctx, 0))
	n, rerr = s.Read(ctx, buf)
	assert.ErrorIs(t, rerr, io.EOF)
	assert.Equal(t, 0, n)
}

func TestWriteLimitedEnforcesCap(t *testing.T) {
	ctx := context.Background()
	inner := vfs.NewMemoryStream(nil)
	limited := vfs.WriteLimited(inner, 3)

	n, err := limited.Write(ctx, []byte{0x41, 0x42})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = limited.Write(ctx, []byte{0x43, 0x44})
	require.Error(t, err)

	n, err = limited.Write(ctx, []byte{0x43})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, limited.SetLength(ctx, 0))
	n, err = limited.Write(ctx, []byte{0x41, 0x42, 0x43})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestReadOnlyRejectsWrite(t *testing.T) {
	ctx := context.Background()
	ro := vfs.ReadOnly(vfs.NewMemoryStream([]byte("data")))
	assert.True(t, ro.Readable())
	assert.False(t, ro.Writable())

	_, err := ro.Write(ctx, []byte("x"))
	require.Error(t, err)
}

func TestWriteOnlyRejectsRead(t *testing.T) {
	ctx := context.Background()
	wo := vfs.WriteOnly(vfs.NewMemoryStream(nil))
	assert.False(t, wo.Readable())
	assert.True(t, wo.Writable())

	_, err := wo.Read(ctx, make([]byte, 1))
	require.Error(t, err)
}

func TestMirrorCloseDoesNotReleaseOrigin(t *testing.T) {
	ctx := context.Background()
	origin := vfs.NewMemoryStream([]byte("data"))
	mirror := vfs.MirrorOf(origin)
	assert.False(t, mirror.Owned())

	require.NoError(t, mirror.Close())
	buf := make([]byte, 4)
	n, err := origin.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, "data", string(buf[:n]))
}

func TestCopyOnWriteIsolatesOrigin(t *testing.T) {
	ctx := context.Background()
	origin := vfs.NewMemoryStream([]byte("original"))

	var materialized *vfs.MemoryStream
	cow := vfs.CopyOnWrite(origin, func() (vfs.Stream, error) {
		materialized = vfs.NewMemoryStream(nil)
		return materialized, nil
	})

	buf := make([]byte, 8)
	n, err := cow.Read(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, "original", string(buf[:n]))

	_, err = cow.Write(ctx, []byte("X"))
	require.NoError(t, err)
	require.NotNil(t, materialized)

	originBuf := make([]byte, 8)
	origin2 := vfs.NewMemoryStream(origin.Bytes())
	n2, _ := origin2.Read(ctx, originBuf)
	assert.Equal(t, "original", string(originBuf[:n2]))
}

func TestCopyToDrainsSourceIntoDest(t *testing.T) {
	ctx := context.Background()
	src := vfs.NewMemoryStream([]byte("hello world"))
	dest := vfs.NewMemoryStream(nil)

	n, err := src.CopyTo(ctx, dest)
	require.NoError(t, err)
	assert.Equal(t, int64(11), n)
	assert.Equal(t, "hello world", string(dest.Bytes()))
}

func TestIntoMemoryMaterializesSeekableCopy(t *testing.T) {
	ctx := context.Background()
	forward := vfs.NewMemoryStream([]byte("payload"))

	mem, err := vfs.IntoMemory(ctx, forward)
	require.NoError(t, err)
	assert.Equal(t, int64(0), mem.Position())

	buf := make([]byte, 7)
	n, rerr := mem.Read(ctx, buf)
	require.NoError(t, rerr)
	assert.Equal(t, "payload", string(buf[:n]))
}
