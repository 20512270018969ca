package iostream

import "github.com/spaghettifunk/animavault/engine/ioerr"

// BufferingOptions controls BufferedStream's independent read and write
// buffers.
type BufferingOptions struct {
	EnableRead      bool
	EnableWrite     bool
	ReadBufferSize  int
	WriteBufferSize int
}

// DefaultBufferingOptions enables both buffers at 4 KiB.
func DefaultBufferingOptions() BufferingOptions {
	return BufferingOptions{EnableRead: true, EnableWrite: true, ReadBufferSize: 4096, WriteBufferSize: 4096}
}

// BufferedStream wraps another IStream with independent read and write
// buffers. Switching from write to read flushes pending writes; switching
// from read to write rewinds the inner stream by the unread portion of the
// read buffer (requiring a seekable inner stream) before discarding it.
type BufferedStream struct {
	inner IStream
	opt   BufferingOptions

	rbuf []byte
	rpos int
	rlen int

	wbuf []byte
	wlen int
}

// NewBufferedStream wraps inner with the given buffering options.
func NewBufferedStream(inner IStream, opt BufferingOptions) *BufferedStream {
	b := &BufferedStream{inner: inner, opt: opt}
	if opt.EnableRead && opt.ReadBufferSize > 0 {
		b.rbuf = make([]byte, opt.ReadBufferSize)
	}
	if opt.EnableWrite && opt.WriteBufferSize > 0 {
		b.wbuf = make([]byte, opt.WriteBufferSize)
	}
	return b
}

func (b *BufferedStream) Caps() Caps {
	if b.inner == nil {
		return Caps{}
	}
	return b.inner.Caps()
}

func (b *BufferedStream) IsOpen() bool {
	return b.inner != nil && b.inner.IsOpen()
}

func (b *BufferedStream) IsEof() bool {
	if b.rlen > b.rpos {
		return false
	}
	if b.inner == nil {
		return true
	}
	return b.inner.IsEof()
}

func (b *BufferedStream) syncForRead() error {
	if b.wlen > 0 {
		return b.flushWriteBuffer()
	}
	return nil
}

func (b *BufferedStream) syncForWrite() error {
	if b.rlen > b.rpos {
		caps := b.inner.Caps()
		if !caps.Seekable {
			return ioerr.New(ioerr.NotSupported, "BufferedStream: switching read->write requires seekable inner stream", "")
		}
		unread := int64(b.rlen - b.rpos)
		if _, err := b.inner.Seek(-unread, SeekCurrent); err != nil {
			return ioerr.New(ioerr.SeekFailed, "BufferedStream: failed to rewind unread read-buffer bytes", "")
		}
	}
	b.rpos = 0
	b.rlen = 0
	return nil
}

func (b *BufferedStream) fillReadBuffer() (int, error) {
	b.rpos = 0
	b.rlen = 0
	if !b.opt.EnableRead || len(b.rbuf) == 0 {
		return 0, nil
	}
	n, err := b.inner.Read(b.rbuf)
	if err != nil {
		return 0, err
	}
	b.rlen = n
	return n, nil
}

func (b *BufferedStream) flushWriteBuffer() error {
	if !b.opt.EnableWrite || len(b.wbuf) == 0 || b.wlen == 0 {
		return nil
	}
	written := 0
	for written < b.wlen {
		n, err := b.inner.Write(b.wbuf[written:b.wlen])
		if err != nil {
			return err
		}
		if n == 0 {
			return ioerr.New(ioerr.WriteFailed, "BufferedStream: inner write returned 0 (stalled)", "")
		}
		written += n
	}
	b.wlen = 0
	return nil
}

func (b *BufferedStream) Read(dst []byte) (int, error) {
	if b.inner == nil || !b.inner.IsOpen() {
		return 0, ioerr.New(ioerr.ReadFailed, "BufferedStream: read on closed stream", "")
	}
	if len(dst) == 0 {
		return 0, nil
	}
	if err := b.syncForRead(); err != nil {
		return 0, err
	}
	if !b.opt.EnableRead || len(b.rbuf) == 0 {
		return b.inner.Read(dst)
	}

	out := 0
	for out < len(dst) {
		avail := 0
		if b.rlen > b.rpos {
			avail = b.rlen - b.rpos
		}
		if avail == 0 {
			n, err := b.fillReadBuffer()
			if err != nil {
				return out, err
			}
			if n == 0 {
				break
			}
			continue
		}
		need := len(dst) - out
		n := need
		if avail < n {
			n = avail
		}
		copy(dst[out:out+n], b.rbuf[b.rpos:b.rpos+n])
		b.rpos += n
		out += n
	}
	return out, nil
}

func (b *BufferedStream) Write(src []byte) (int, error) {
	if b.inner == nil || !b.inner.IsOpen() {
		return 0, ioerr.New(ioerr.WriteFailed, "BufferedStream: write on closed stream", "")
	}
	if len(src) == 0 {
		return 0, nil
	}
	if err := b.syncForWrite(); err != nil {
		return 0, err
	}
	if !b.opt.EnableWrite || len(b.wbuf) == 0 {
		return b.inner.Write(src)
	}

	inOff := 0
	for inOff < len(src) {
		cap := len(b.wbuf)
		free := cap - b.wlen

		if b.wlen == 0 && len(src)-inOff >= cap {
			n, err := b.inner.Write(src[inOff:])
			if err != nil {
				return inOff, err
			}
			if n == 0 {
				return inOff, ioerr.New(ioerr.WriteFailed, "BufferedStream: inner write returned 0 (stalled)", "")
			}
			inOff += n
			continue
		}

		n := len(src) - inOff
		if free < n {
			n = free
		}
		copy(b.wbuf[b.wlen:b.wlen+n], src[inOff:inOff+n])
		b.wlen += n
		inOff += n

		if b.wlen == cap {
			if err := b.flushWriteBuffer(); err != nil {
				return inOff, err
			}
		}
	}
	return len(src), nil
}

func (b *BufferedStream) Tell() (uint64, error) {
	if b.inner == nil || !b.inner.IsOpen() {
		return 0, ioerr.New(ioerr.SeekFailed, "BufferedStream: tell on closed stream", "")
	}
	caps := b.inner.Caps()
	if !caps.Seekable {
		return 0, ioerr.New(ioerr.NotSupported, "BufferedStream: tell requires seekable inner stream", "")
	}
	pos, err := b.inner.Tell()
	if err != nil {
		return 0, err
	}
	if b.rlen > b.rpos {
		pos -= uint64(b.rlen - b.rpos)
	}
	if b.wlen > 0 {
		pos += uint64(b.wlen)
	}
	return pos, nil
}

func (b *BufferedStream) Seek(offset int64, whence SeekWhence) (uint64, error) {
	if b.inner == nil || !b.inner.IsOpen() {
		return 0, ioerr.New(ioerr.SeekFailed, "BufferedStream: seek on closed stream", "")
	}
	caps := b.inner.Caps()
	if !caps.Seekable {
		return 0, ioerr.New(ioerr.NotSupported, "BufferedStream: seek requires seekable inner stream", "")
	}
	if err := b.flushWriteBuffer(); err != nil {
		return 0, err
	}
	b.rpos = 0
	b.rlen = 0
	return b.inner.Seek(offset, whence)
}

func (b *BufferedStream) Size() (uint64, error) {
	if b.inner == nil || !b.inner.IsOpen() {
		return 0, ioerr.New(ioerr.NotSupported, "BufferedStream: size on closed stream", "")
	}
	sz, err := b.inner.Size()
	if err != nil {
		return 0, err
	}
	if b.wlen > 0 {
		if pos, err := b.inner.Tell(); err == nil {
			logicalEnd := pos + uint64(b.wlen)
			if logicalEnd > sz {
				sz = logicalEnd
			}
		}
	}
	return sz, nil
}

func (b *BufferedStream) Flush() error {
	if b.inner == nil || !b.inner.IsOpen() {
		return ioerr.New(ioerr.NotSupported, "BufferedStream: flush on closed stream", "")
	}
	if err := b.flushWriteBuffer(); err != nil {
		return err
	}
	return b.inner.Flush()
}

func (b *BufferedStream) Close() error {
	if b.inner == nil {
		return nil
	}
	if err := b.flushWriteBuffer(); err != nil {
		return err
	}
	b.rpos = 0
	b.rlen = 0
	return b.inner.Close()
}
