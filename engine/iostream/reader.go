package iostream

import (
	"encoding/binary"
	"strings"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

const lineBufferSize = 4096

// StreamReader adds typed and text helpers on top of an IStream.
type StreamReader struct {
	s IStream

	lineBuf    [lineBufferSize]byte
	lineBufLen int
	lineBufPos int
}

func NewStreamReader(s IStream) *StreamReader { return &StreamReader{s: s} }

// ReadExactly reads exactly len(dst) bytes or fails with EndOfStream.
func (r *StreamReader) ReadExactly(dst []byte) error {
	total := 0
	for total < len(dst) {
		n, err := r.s.Read(dst[total:])
		if err != nil {
			return err
		}
		if n == 0 {
			return ioerr.New(ioerr.EndOfStream, "stream ended before all bytes were read", "")
		}
		total += n
	}
	return nil
}

func (r *StreamReader) ReadU8() (uint8, error) {
	var b [1]byte
	if err := r.ReadExactly(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *StreamReader) ReadU16LE() (uint16, error) {
	var b [2]byte
	if err := r.ReadExactly(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b[:]), nil
}

func (r *StreamReader) ReadU32LE() (uint32, error) {
	var b [4]byte
	if err := r.ReadExactly(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

func (r *StreamReader) ReadU64LE() (uint64, error) {
	var b [8]byte
	if err := r.ReadExactly(b[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadAllBytes reads until EOF, failing if more than max bytes would be
// read (max <= 0 means unlimited).
func (r *StreamReader) ReadAllBytes(max int) ([]byte, error) {
	var out []byte
	buf := make([]byte, 4096)
	for {
		n, err := r.s.Read(buf)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			break
		}
		out = append(out, buf[:n]...)
		if max > 0 && len(out) > max {
			return nil, ioerr.New(ioerr.ReadFailed, "content exceeds maximum byte limit", "")
		}
	}
	return out, nil
}

// TextOptions controls ReadAllText's BOM stripping and newline handling.
type TextOptions struct {
	StripUtf8Bom      bool
	NormalizeNewlines bool
	MaxBytes          int
}

// ReadAllText reads the remainder of the stream as UTF-8 text, optionally
// stripping a leading BOM and collapsing CRLF to LF.
func (r *StreamReader) ReadAllText(opt TextOptions) (string, error) {
	raw, err := r.ReadAllBytes(opt.MaxBytes)
	if err != nil {
		return "", err
	}
	if opt.StripUtf8Bom {
		raw = stripBom(raw)
	}
	s := string(raw)
	if opt.NormalizeNewlines {
		s = normalizeNewlines(s)
	}
	return s, nil
}

// normalizeNewlines folds both "\r\n" and a lone "\r" to "\n" in a
// single pass, matching old-Mac-style lone-CR line endings alongside
// CRLF rather than only collapsing CRLF.
func normalizeNewlines(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\r' {
			sb.WriteByte('\n')
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func stripBom(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func (r *StreamReader) nextByte() (byte, bool, error) {
	if r.lineBufPos >= r.lineBufLen {
		n, err := r.s.Read(r.lineBuf[:])
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			return 0, false, nil
		}
		r.lineBufLen = n
		r.lineBufPos = 0
	}
	b := r.lineBuf[r.lineBufPos]
	r.lineBufPos++
	return b, true, nil
}

// ReadLine reads up to the next '\n' (exclusive), collapsing a preceding
// '\r', using a 4 KiB internal buffer shared across calls on this reader.
// Returns an empty string and nil error once the stream is exhausted with
// no more data, matching Read's own EOF convention.
func (r *StreamReader) ReadLine(maxLineBytes int) (string, error) {
	var line []byte
	for {
		b, ok, err := r.nextByte()
		if err != nil {
			return "", err
		}
		if !ok || b == '\n' {
			break
		}
		line = append(line, b)
		if maxLineBytes > 0 && len(line) > maxLineBytes {
			return "", ioerr.New(ioerr.ReadFailed, "line exceeds maximum byte limit", "")
		}
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line), nil
}
