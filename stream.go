package vfs

import (
	"context"
)

// Stream is a capability-typed byte sequence. Concrete backends produce
// Streams; callers narrow capability with the adapter methods below
// rather than type-asserting on the concrete implementation.
type Stream interface {
	// Readable reports whether Read is permitted.
	Readable() bool
	// Writable reports whether Write is permitted.
	Writable() bool
	// Owned reports whether Close releases an underlying resource. A
	// non-owning (Mirror) view's Close only resets position.
	Owned() bool

	// Length returns the stream's current byte length.
	Length() int64
	// Position returns the current read/write cursor.
	Position() int64

	// Read reads into buf, returning the number of bytes read. Returns
	// (0, io.EOF) at end of stream. Respects ctx cancellation between
	// suspension points; a canceled context may yield a partial read.
	Read(ctx context.Context, buf []byte) (int, error)
	// Write appends buf at the current position, returning the number of
	// bytes written. Fails with CodeNotSupported if Writable is false.
	Write(ctx context.Context, buf []byte) (int, error)
	// CopyTo drains the remainder of the stream into dest.
	CopyTo(ctx context.Context, dest Stream) (int64, error)
	// Flush materializes buffered writes to the underlying backend. A
	// no-op for streams with no buffering.
	Flush(ctx context.Context) error
	// SetLength truncates or extends the stream to n bytes.
	SetLength(ctx context.Context, n int64) error

	// Close disposes the stream. Owning streams release their
	// underlying resource; non-owning (Mirror) views only reset
	// position.
	Close() error
}

// The free functions below narrow or wrap a Stream in capability
// adapters. Each returns a decorator over the shared interface rather
// than a backend-specific concrete type, so adapters compose:
// WriteLimited(WriteOnly(s), n) behaves as expected.

// ReadOnly wraps s, rejecting writes with CodeNotSupported. Read, Length,
// Position, CopyTo(as source), and Close delegate to s.
func ReadOnly(s Stream) Stream {
	return &readOnlyStream{inner: s}
}

// WriteOnly wraps s, rejecting reads with CodeNotSupported.
func WriteOnly(s Stream) Stream {
	return &writeOnlyStream{inner: s}
}

// MirrorOf returns a non-owning view over s: Close resets the view's
// position bookkeeping but never releases s's underlying resource, so
// s's lifetime outlives the view.
func MirrorOf(s Stream) Stream {
	return &mirrorStream{inner: s}
}

// WriteLimited wraps s with a cumulative write cap of n bytes. Writing
// that would exceed the cap fails with CodeNotSupported. SetLength(0)
// resets the counter, supporting truncate-and-rewrite.
func WriteLimited(s Stream, n int64) Stream {
	return &writeLimitedStream{inner: s, limit: n}
}

// CopyOnWrite wraps origin so reads pass through until the first write or
// SetLength, at which point factory() materializes a private writable
// stream, origin's remaining contents are copied into it from the current
// position, and subsequent operations target the private copy. origin is
// never mutated.
func CopyOnWrite(origin Stream, factory func() (Stream, error)) Stream {
	return &copyOnWriteStream{origin: origin, factory: factory}
}

// FunctionalStream adapts user-provided read/write callables into a
// Stream, for backends needing custom semantics that don't fit the other
// adapters (e.g. ObjectStoreBackend's forward-only GetObject reader).
type FunctionalStream struct {
	ReadFunc      func(ctx context.Context, buf []byte) (int, error)
	WriteFunc     func(ctx context.Context, buf []byte) (int, error)
	FlushFunc     func(ctx context.Context) error
	SetLengthFunc func(ctx context.Context, n int64) error
	CloseFunc     func() error
	LengthFunc    func() int64

	readable bool
	writable bool
	owned    bool
	pos      int64
}

// NewFunctionalStream constructs a FunctionalStream with the given
// capability flags. Unset callables act as no-ops (Flush/SetLength/Close)
// or fail with CodeNotSupported (Read/Write).
func NewFunctionalStream(readable, writable, owned bool) *FunctionalStream {
	return &FunctionalStream{readable: readable, writable: writable, owned: owned}
}

func (f *FunctionalStream) Readable() bool { return f.readable }
func (f *FunctionalStream) Writable() bool { return f.writable }
func (f *FunctionalStream) Owned() bool    { return f.owned }
func (f *FunctionalStream) Length() int64 {
	if f.LengthFunc != nil {
		return f.LengthFunc()
	}
	return 0
}
func (f *FunctionalStream) Position() int64 { return f.pos }

func (f *FunctionalStream) Read(ctx context.Context, buf []byte) (int, error) {
	if !f.readable || f.ReadFunc == nil {
		return 0, errNotSupported("read not supported")
	}
	n, err := f.ReadFunc(ctx, buf)
	f.pos += int64(n)
	return n, err
}

func (f *FunctionalStream) Write(ctx context.Context, buf []byte) (int, error) {
	if !f.writable || f.WriteFunc == nil {
		return 0, errNotSupported("write not supported")
	}
	n, err := f.WriteFunc(ctx, buf)
	f.pos += int64(n)
	return n, err
}

func (f *FunctionalStream) CopyTo(ctx context.Context, dest Stream) (int64, error) {
	return genericCopy(ctx, f, dest)
}

func (f *FunctionalStream) Flush(ctx context.Context) error {
	if f.FlushFunc != nil {
		return f.FlushFunc(ctx)
	}
	return nil
}

func (f *FunctionalStream) SetLength(ctx context.Context, n int64) error {
	if f.SetLengthFunc != nil {
		return f.SetLengthFunc(ctx, n)
	}
	return nil
}

func (f *FunctionalStream) Close() error {
	if f.CloseFunc != nil {
		return f.CloseFunc()
	}
	return nil
}
