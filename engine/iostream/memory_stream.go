package iostream

import "github.com/spaghettifunk/animavault/engine/ioerr"

// MemoryStream is a readable/writable/seekable stream over an owned byte
// buffer. When Growable is true, writes past the current length extend it
// and seeking past the end is permitted (subsequent writes fill the gap).
type MemoryStream struct {
	buf      []byte
	pos      int
	growable bool
	writable bool
	readable bool
	open     bool
}

// NewMemoryStream creates an empty growable, readable and writable stream.
func NewMemoryStream() *MemoryStream {
	return &MemoryStream{growable: true, writable: true, readable: true, open: true}
}

// NewMemoryStreamFromBytes creates a fixed (non-growable) stream seeded
// with a copy of data.
func NewMemoryStreamFromBytes(data []byte, writable bool) *MemoryStream {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &MemoryStream{buf: buf, growable: false, writable: writable, readable: true, open: true}
}

func (m *MemoryStream) Caps() Caps {
	return Caps{Readable: m.readable, Writable: m.writable, Seekable: true}
}

func (m *MemoryStream) IsOpen() bool { return m.open }

func (m *MemoryStream) IsEof() bool {
	return m.pos >= len(m.buf)
}

func (m *MemoryStream) Read(dst []byte) (int, error) {
	if !m.open {
		return 0, errClosed("read")
	}
	if !m.readable {
		return 0, ioerr.New(ioerr.NotSupported, "stream is not readable", "")
	}
	if len(dst) == 0 || m.pos >= len(m.buf) {
		return 0, nil
	}
	n := copy(dst, m.buf[m.pos:])
	m.pos += n
	return n, nil
}

func (m *MemoryStream) Write(src []byte) (int, error) {
	if !m.open {
		return 0, errClosed("write")
	}
	if !m.writable {
		return 0, ioerr.New(ioerr.NotSupported, "stream is not writable", "")
	}
	if len(src) == 0 {
		return 0, nil
	}
	end := m.pos + len(src)
	if end > len(m.buf) {
		if !m.growable {
			return 0, ioerr.New(ioerr.WriteFailed, "write exceeds fixed buffer size", "")
		}
		grown := make([]byte, end)
		copy(grown, m.buf)
		m.buf = grown
	}
	copy(m.buf[m.pos:end], src)
	m.pos = end
	return len(src), nil
}

func (m *MemoryStream) Tell() (uint64, error) {
	if !m.open {
		return 0, errClosed("tell")
	}
	return uint64(m.pos), nil
}

func (m *MemoryStream) Seek(offset int64, whence SeekWhence) (uint64, error) {
	if !m.open {
		return 0, errClosed("seek")
	}
	var base int64
	switch whence {
	case SeekBegin:
		base = 0
	case SeekCurrent:
		base = int64(m.pos)
	case SeekEnd:
		base = int64(len(m.buf))
	default:
		return 0, ioerr.New(ioerr.SeekFailed, "unknown seek whence", "")
	}
	target := base + offset
	if target < 0 {
		return 0, ioerr.New(ioerr.SeekFailed, "seek before start of stream", "")
	}
	if int(target) > len(m.buf) && !(m.growable && m.writable) {
		return 0, ioerr.New(ioerr.SeekFailed, "seek beyond end of non-growable stream", "")
	}
	m.pos = int(target)
	return uint64(m.pos), nil
}

func (m *MemoryStream) Size() (uint64, error) {
	if !m.open {
		return 0, errClosed("size")
	}
	return uint64(len(m.buf)), nil
}

func (m *MemoryStream) Flush() error {
	if !m.open {
		return errClosed("flush")
	}
	return nil
}

func (m *MemoryStream) Close() error {
	m.open = false
	return nil
}

// Bytes returns the stream's backing buffer without copying. Callers must
// not retain it across further writes.
func (m *MemoryStream) Bytes() []byte { return m.buf }
