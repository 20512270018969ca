// Package iostream implements the byte-stream primitives the asset
// pipeline reads through: an abstract IStream plus in-memory, span, and
// buffered concrete implementations.
package iostream

import "github.com/spaghettifunk/animavault/engine/ioerr"

// Caps declares which operations a stream supports.
type Caps struct {
	Readable bool
	Writable bool
	Seekable bool
}

// SeekWhence selects the reference point for Seek.
type SeekWhence int

const (
	SeekBegin SeekWhence = iota
	SeekCurrent
	SeekEnd
)

// IStream is the minimal read/write/seek abstraction every backing store
// implements. Read and Write may be short; Read returning 0 means EOF.
type IStream interface {
	Caps() Caps
	IsOpen() bool
	IsEof() bool
	Read(dst []byte) (int, error)
	Write(src []byte) (int, error)
	Tell() (uint64, error)
	Seek(offset int64, whence SeekWhence) (uint64, error)
	Size() (uint64, error)
	Flush() error
	Close() error
}

// FileOpenMode is a bitset describing how a backend should open a stream.
type FileOpenMode uint32

const (
	ModeNone FileOpenMode = 0

	ModeRead  FileOpenMode = 1 << 0
	ModeWrite FileOpenMode = 1 << 1

	ModeAppend          FileOpenMode = 1 << 2
	ModeCreateIfMissing FileOpenMode = 1 << 3
	ModeTruncate        FileOpenMode = 1 << 4

	ModeBinary FileOpenMode = 1 << 5
	ModeText   FileOpenMode = 1 << 6
)

func (m FileOpenMode) Has(f FileOpenMode) bool { return m&f != 0 }
func (m FileOpenMode) CanRead() bool           { return m.Has(ModeRead) }
func (m FileOpenMode) CanWrite() bool          { return m.Has(ModeWrite) }
func (m FileOpenMode) IsAppend() bool          { return m.Has(ModeAppend) }

// IsValid rejects mode combinations with no meaningful interpretation:
// no access bit set, Append+Truncate together, Text+Binary together, or
// Append without Write.
func IsValid(m FileOpenMode) bool {
	if !m.CanRead() && !m.CanWrite() {
		return false
	}
	if m.Has(ModeAppend) && m.Has(ModeTruncate) {
		return false
	}
	if m.Has(ModeText) && m.Has(ModeBinary) {
		return false
	}
	if m.Has(ModeAppend) && !m.CanWrite() {
		return false
	}
	return true
}

func OpenReadBinary() FileOpenMode {
	return ModeRead | ModeBinary
}

func OpenWriteBinaryTruncate(createIfMissing bool) FileOpenMode {
	m := ModeWrite | ModeBinary | ModeTruncate
	if createIfMissing {
		m |= ModeCreateIfMissing
	}
	return m
}

func OpenWriteBinaryAppend(createIfMissing bool) FileOpenMode {
	m := ModeWrite | ModeBinary | ModeAppend
	if createIfMissing {
		m |= ModeCreateIfMissing
	}
	return m
}

// errClosed builds the error returned by operations attempted on a closed stream.
func errClosed(op string) error {
	return ioerr.New(ioerr.InternalError, op+" on closed stream", "")
}
