// Package ioerr defines the coded error taxonomy shared by byte streams
// and the virtual filesystem.
package ioerr

import "fmt"

// Code identifies the category of an IO fault.
type Code int

const (
	None Code = iota
	InvalidPath
	PathEscapesRoot
	NotFound
	AlreadyExists
	PermissionDenied
	NotSupported
	OpenFailed
	ReadFailed
	WriteFailed
	SeekFailed
	EndOfStream
	InternalError
)

func (c Code) String() string {
	switch c {
	case None:
		return "none"
	case InvalidPath:
		return "invalid_path"
	case PathEscapesRoot:
		return "path_escapes_root"
	case NotFound:
		return "not_found"
	case AlreadyExists:
		return "already_exists"
	case PermissionDenied:
		return "permission_denied"
	case NotSupported:
		return "not_supported"
	case OpenFailed:
		return "open_failed"
	case ReadFailed:
		return "read_failed"
	case WriteFailed:
		return "write_failed"
	case SeekFailed:
		return "seek_failed"
	case EndOfStream:
		return "end_of_stream"
	case InternalError:
		return "internal_error"
	default:
		return "unknown"
	}
}

// Error is the coded error type returned by every fallible IO operation.
// Detail typically carries the offending path.
type Error struct {
	Code    Code
	Message string
	Detail  string
}

func New(code Code, message, detail string) *Error {
	return &Error{Code: code, Message: message, Detail: detail}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
}

// Is reports whether err is an *Error carrying the given code, so callers
// can write `errors.Is`-style checks without a type assertion.
func Is(err error, code Code) bool {
	var e *Error
	if as, ok := err.(*Error); ok {
		e = as
	} else {
		return false
	}
	return e.Code == code
}
