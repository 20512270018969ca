package iostream

import "github.com/spaghettifunk/animavault/engine/ioerr"

// SpanStream is a non-owning view over an externally supplied buffer. It
// never grows; writes past the end fail with WriteFailed.
type SpanStream struct {
	span     []byte
	pos      int
	writable bool
	open     bool
}

// NewSpanStream wraps span, a read-only view when writable is false.
func NewSpanStream(span []byte, writable bool) *SpanStream {
	return &SpanStream{span: span, writable: writable, open: true}
}

func (s *SpanStream) Caps() Caps {
	return Caps{Readable: true, Writable: s.writable, Seekable: true}
}

func (s *SpanStream) IsOpen() bool { return s.open }

func (s *SpanStream) IsEof() bool { return s.pos >= len(s.span) }

func (s *SpanStream) Read(dst []byte) (int, error) {
	if !s.open {
		return 0, errClosed("read")
	}
	if len(dst) == 0 || s.pos >= len(s.span) {
		return 0, nil
	}
	n := copy(dst, s.span[s.pos:])
	s.pos += n
	return n, nil
}

func (s *SpanStream) Write(src []byte) (int, error) {
	if !s.open {
		return 0, errClosed("write")
	}
	if !s.writable {
		return 0, ioerr.New(ioerr.NotSupported, "span stream is not writable", "")
	}
	if len(src) == 0 {
		return 0, nil
	}
	if s.pos+len(src) > len(s.span) {
		return 0, ioerr.New(ioerr.WriteFailed, "write exceeds span bounds", "")
	}
	n := copy(s.span[s.pos:], src)
	s.pos += n
	return n, nil
}

func (s *SpanStream) Tell() (uint64, error) {
	if !s.open {
		return 0, errClosed("tell")
	}
	return uint64(s.pos), nil
}

func (s *SpanStream) Seek(offset int64, whence SeekWhence) (uint64, error) {
	if !s.open {
		return 0, errClosed("seek")
	}
	var base int64
	switch whence {
	case SeekBegin:
		base = 0
	case SeekCurrent:
		base = int64(s.pos)
	case SeekEnd:
		base = int64(len(s.span))
	default:
		return 0, ioerr.New(ioerr.SeekFailed, "unknown seek whence", "")
	}
	target := base + offset
	if target < 0 || int(target) > len(s.span) {
		return 0, ioerr.New(ioerr.SeekFailed, "seek out of span bounds", "")
	}
	s.pos = int(target)
	return uint64(s.pos), nil
}

func (s *SpanStream) Size() (uint64, error) {
	if !s.open {
		return 0, errClosed("size")
	}
	return uint64(len(s.span)), nil
}

func (s *SpanStream) Flush() error {
	if !s.open {
		return errClosed("flush")
	}
	return nil
}

func (s *SpanStream) Close() error {
	s.open = false
	return nil
}
