package iostream

import (
	"encoding/binary"
	"strings"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

// StreamWriter adds typed and text helpers on top of an IStream, the dual
// of StreamReader.
type StreamWriter struct {
	s IStream
}

func NewStreamWriter(s IStream) *StreamWriter { return &StreamWriter{s: s} }

// WriteExactly writes every byte of src or fails.
func (w *StreamWriter) WriteExactly(src []byte) error {
	total := 0
	for total < len(src) {
		n, err := w.s.Write(src[total:])
		if err != nil {
			return err
		}
		if n == 0 {
			return ioerr.New(ioerr.WriteFailed, "write stalled before all bytes were written", "")
		}
		total += n
	}
	return nil
}

func (w *StreamWriter) WriteU8(v uint8) error {
	return w.WriteExactly([]byte{v})
}

func (w *StreamWriter) WriteU16LE(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.WriteExactly(b[:])
}

func (w *StreamWriter) WriteU32LE(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.WriteExactly(b[:])
}

func (w *StreamWriter) WriteU64LE(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.WriteExactly(b[:])
}

// TextWriteOptions controls WriteAllText's BOM and newline behavior.
type TextWriteOptions struct {
	WriteUtf8Bom      bool
	NormalizeNewlines bool
}

// WriteAllText writes s as UTF-8, optionally prefixing a BOM and
// normalizing newlines to the host convention expected by callers ("\n").
func (w *StreamWriter) WriteAllText(s string, opt TextWriteOptions) error {
	if opt.WriteUtf8Bom {
		if err := w.WriteExactly([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return err
		}
	}
	if opt.NormalizeNewlines {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return w.WriteExactly([]byte(s))
}

// WriteLine writes s followed by a single '\n'.
func (w *StreamWriter) WriteLine(s string) error {
	if err := w.WriteExactly([]byte(s)); err != nil {
		return err
	}
	return w.WriteExactly([]byte{'\n'})
}
