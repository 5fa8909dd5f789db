package vfs

import (
	"context"
	"io"

	"github.com/jmgilman/vfs/vfserrors"
)

func errNotSupported(msg string) error {
	return vfserrors.New(vfserrors.CodeNotSupported, msg)
}

// genericCopy drains src into dest using a fixed-size buffer, honoring
// ctx cancellation between chunks. Shared by every Stream implementation's
// CopyTo so the chunking policy lives in one place.
func genericCopy(ctx context.Context, src, dest Stream) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, rerr := src.Read(ctx, buf)
		if n > 0 {
			written, werr := dest.Write(ctx, buf[:n])
			total += int64(written)
			if werr != nil {
				return total, werr
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return total, nil
			}
			return total, rerr
		}
	}
}

// readOnlyStream rejects writes; everything else delegates.
type readOnlyStream struct {
	inner Stream
}

func (r *readOnlyStream) Readable() bool { return r.inner.Readable() }
func (r *readOnlyStream) Writable() bool { return false }
func (r *readOnlyStream) Owned() bool    { return r.inner.Owned() }
func (r *readOnlyStream) Length() int64  { return r.inner.Length() }
func (r *readOnlyStream) Position() int64 { return r.inner.Position() }

func (r *readOnlyStream) Read(ctx context.Context, buf []byte) (int, error) {
	return r.inner.Read(ctx, buf)
}

func (r *readOnlyStream) Write(context.Context, []byte) (int, error) {
	return 0, errNotSupported("stream is read-only")
}

func (r *readOnlyStream) CopyTo(ctx context.Context, dest Stream) (int64, error) {
	return genericCopy(ctx, r, dest)
}

func (r *readOnlyStream) Flush(context.Context) error { return nil }

func (r *readOnlyStream) SetLength(context.Context, int64) error {
	return errNotSupported("stream is read-only")
}

func (r *readOnlyStream) Close() error { return r.inner.Close() }

// writeOnlyStream rejects reads; everything else delegates.
type writeOnlyStream struct {
	inner Stream
}

func (w *writeOnlyStream) Readable() bool  { return false }
func (w *writeOnlyStream) Writable() bool  { return w.inner.Writable() }
func (w *writeOnlyStream) Owned() bool     { return w.inner.Owned() }
func (w *writeOnlyStream) Length() int64   { return w.inner.Length() }
func (w *writeOnlyStream) Position() int64 { return w.inner.Position() }

func (w *writeOnlyStream) Read(context.Context, []byte) (int, error) {
	return 0, errNotSupported("stream is write-only")
}

func (w *writeOnlyStream) Write(ctx context.Context, buf []byte) (int, error) {
	return w.inner.Write(ctx, buf)
}

func (w *writeOnlyStream) CopyTo(context.Context, Stream) (int64, error) {
	return 0, errNotSupported("stream is write-only")
}

func (w *writeOnlyStream) Flush(ctx context.Context) error { return w.inner.Flush(ctx) }

func (w *writeOnlyStream) SetLength(ctx context.Context, n int64) error {
	return w.inner.SetLength(ctx, n)
}

func (w *writeOnlyStream) Close() error { return w.inner.Close() }

// mirrorStream is a non-owning view: Close never releases inner.
type mirrorStream struct {
	inner Stream
}

func (m *mirrorStream) Readable() bool   { return m.inner.Readable() }
func (m *mirrorStream) Writable() bool   { return m.inner.Writable() }
func (m *mirrorStream) Owned() bool      { return false }
func (m *mirrorStream) Length() int64    { return m.inner.Length() }
func (m *mirrorStream) Position() int64  { return m.inner.Position() }

func (m *mirrorStream) Read(ctx context.Context, buf []byte) (int, error) {
	return m.inner.Read(ctx, buf)
}

func (m *mirrorStream) Write(ctx context.Context, buf []byte) (int, error) {
	return m.inner.Write(ctx, buf)
}

func (m *mirrorStream) CopyTo(ctx context.Context, dest Stream) (int64, error) {
	return genericCopy(ctx, m, dest)
}

func (m *mirrorStream) Flush(ctx context.Context) error { return m.inner.Flush(ctx) }

func (m *mirrorStream) SetLength(ctx context.Context, n int64) error {
	return m.inner.SetLength(ctx, n)
}

// Close on a mirror only resets position: it rewinds the shared stream
// when that stream supports Rewind, and never releases inner.
func (m *mirrorStream) Close() error {
	if r, ok := m.inner.(rewinder); ok {
		r.Rewind()
	}
	return nil
}

// writeLimitedStream enforces a cumulative write cap.
type writeLimitedStream struct {
	inner   Stream
	limit   int64
	written int64
}

func (w *writeLimitedStream) Readable() bool   { return w.inner.Readable() }
func (w *writeLimitedStream) Writable() bool   { return w.inner.Writable() }
func (w *writeLimitedStream) Owned() bool      { return w.inner.Owned() }
func (w *writeLimitedStream) Length() int64    { return w.inner.Length() }
func (w *writeLimitedStream) Position() int64  { return w.inner.Position() }

func (w *writeLimitedStream) Read(ctx context.Context, buf []byte) (int, error) {
	return w.inner.Read(ctx, buf)
}

func (w *writeLimitedStream) Write(ctx context.Context, buf []byte) (int, error) {
	if w.written+int64(len(buf)) > w.limit {
		return 0, vfserrors.Newf(vfserrors.CodeNotSupported, "write exceeds limit of %d bytes", w.limit)
	}
	n, err := w.inner.Write(ctx, buf)
	w.written += int64(n)
	return n, err
}

func (w *writeLimitedStream) CopyTo(ctx context.Context, dest Stream) (int64, error) {
	return genericCopy(ctx, w, dest)
}

func (w *writeLimitedStream) Flush(ctx context.Context) error { return w.inner.Flush(ctx) }

func (w *writeLimitedStream) SetLength(ctx context.Context, n int64) error {
	if err := w.inner.SetLength(ctx, n); err != nil {
		return err
	}
	if n == 0 {
		w.written = 0
	}
	return nil
}

func (w *writeLimitedStream) Close() error { return w.inner.Close() }

// copyOnWriteStream reads pass through to origin until the first write or
// SetLength, which materializes a private target via factory and copies
// origin's contents into it from the current position.
type copyOnWriteStream struct {
	origin  Stream
	factory func() (Stream, error)
	target  Stream // nil until copy-up
}

func (c *copyOnWriteStream) active() Stream {
	if c.target != nil {
		return c.target
	}
	return c.origin
}

func (c *copyOnWriteStream) Readable() bool  { return true }
func (c *copyOnWriteStream) Writable() bool  { return true }
func (c *copyOnWriteStream) Owned() bool     { return c.origin.Owned() }
func (c *copyOnWriteStream) Length() int64   { return c.active().Length() }
func (c *copyOnWriteStream) Position() int64 { return c.active().Position() }

func (c *copyOnWriteStream) Read(ctx context.Context, buf []byte) (int, error) {
	return c.active().Read(ctx, buf)
}

// rewinder is implemented by stream types whose position can be reset to
// the start without losing content (e.g. *MemoryStream). materialize and
// Rewind use it; memoryfs's own rewind() helper recognizes the same
// method name on copyOnWriteStream itself (see Rewind below).
type rewinder interface {
	Rewind()
}

// materialize copies origin's remaining unread bytes into a fresh target
// obtained from factory, then rewinds target back to its start. The copy
// (genericCopy, driven by target.Write) necessarily leaves target's
// cursor at the end of the copied bytes; without the rewind, the write or
// SetLength that triggered materialize would append after that point
// instead of overwriting the private copy from where origin's cursor was
// when the trigger fired.
func (c *copyOnWriteStream) materialize(ctx context.Context) error {
	if c.target != nil {
		return nil
	}
	t, err := c.factory()
	if err != nil {
		return err
	}
	if _, err := c.origin.CopyTo(ctx, t); err != nil {
		return err
	}
	if r, ok := t.(rewinder); ok {
		r.Rewind()
	}
	c.target = t
	return nil
}

func (c *copyOnWriteStream) Write(ctx context.Context, buf []byte) (int, error) {
	if err := c.materialize(ctx); err != nil {
		return 0, err
	}
	return c.target.Write(ctx, buf)
}

func (c *copyOnWriteStream) CopyTo(ctx context.Context, dest Stream) (int64, error) {
	return genericCopy(ctx, c, dest)
}

func (c *copyOnWriteStream) Flush(ctx context.Context) error {
	if c.target != nil {
		return c.target.Flush(ctx)
	}
	return nil
}

func (c *copyOnWriteStream) SetLength(ctx context.Context, n int64) error {
	if err := c.materialize(ctx); err != nil {
		return err
	}
	return c.target.SetLength(ctx, n)
}

func (c *copyOnWriteStream) Close() error {
	if c.target != nil {
		return c.target.Close()
	}
	return nil
}

// Rewind resets whichever side is currently active back to its start,
// satisfying memoryfs's rewind() helper (memoryfs/tree.go) so a fresh
// open of an Integrated/copy-on-write-backed file gets a position-zero
// handle the same way a plain *MemoryStream-backed file already does.
func (c *copyOnWriteStream) Rewind() {
	if r, ok := c.active().(rewinder); ok {
		r.Rewind()
	}
}

// IntoMemory drains s (via CopyTo) into a fresh in-memory buffer and
// returns a seekable materialization positioned at zero. This is how a
// caller obtains random access over an otherwise forward-only stream
// (e.g. ObjectStoreBackend's GetObject response-body reader).
func IntoMemory(ctx context.Context, s Stream) (Stream, error) {
	mem := NewMemoryStream(nil)
	if _, err := s.CopyTo(ctx, mem); err != nil {
		return nil, err
	}
	mem.pos = 0
	return mem, nil
}
