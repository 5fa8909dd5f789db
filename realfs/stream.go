package realfs

import (
	"context"
	"io"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/vfs"
	"github.com/jmgilman/vfs/vfserrors"
)

// billyStream adapts a billy.File into vfs.Stream. Position/Length are
// tracked via Seek rather than cached, since the host file is the source
// of truth and may be resized by SetLength at any time.
type billyStream struct {
	file     billy.File
	readable bool
	writable bool
}

func newBillyStream(f billy.File, readable, writable bool) *billyStream {
	return &billyStream{file: f, readable: readable, writable: writable}
}

func (s *billyStream) Readable() bool { return s.readable }
func (s *billyStream) Writable() bool { return s.writable }
func (s *billyStream) Owned() bool    { return true }

func (s *billyStream) Length() int64 {
	cur, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	end, err := s.file.Seek(0, io.SeekEnd)
	if err != nil {
		return 0
	}
	_, _ = s.file.Seek(cur, io.SeekStart)
	return end
}

func (s *billyStream) Position() int64 {
	pos, err := s.file.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0
	}
	return pos
}

func (s *billyStream) Read(_ context.Context, buf []byte) (int, error) {
	if !s.readable {
		return 0, errNotSupported("stream is not readable")
	}
	return s.file.Read(buf)
}

func (s *billyStream) Write(_ context.Context, buf []byte) (int, error) {
	if !s.writable {
		return 0, errNotSupported("stream is not writable")
	}
	return s.file.Write(buf)
}

func (s *billyStream) CopyTo(ctx context.Context, dest vfs.Stream) (int64, error) {
	var total int64
	buf := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, rerr := s.Read(ctx, buf)
		if n > 0 {
			if _, werr := dest.Write(ctx, buf[:n]); werr != nil {
				return total, werr
			}
			total += int64(n)
		}
		if rerr == io.EOF {
			return total, nil
		}
		if rerr != nil {
			return total, rerr
		}
	}
}

func (s *billyStream) Flush(_ context.Context) error { return nil }

func (s *billyStream) SetLength(_ context.Context, n int64) error {
	if !s.writable {
		return errNotSupported("stream is not writable")
	}
	return s.file.Truncate(n)
}

func (s *billyStream) Close() error { return s.file.Close() }

func errNotSupported(msg string) error {
	return vfserrors.New(vfserrors.CodeNotSupported, msg)
}
