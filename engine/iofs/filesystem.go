// Package iofs implements the virtual filesystem overlay: the backend
// interface, mount table, and priority-ordered router that the asset
// pipeline reads through.
package iofs

import (
	"time"

	"github.com/spaghettifunk/animavault/engine/ioerr"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

// Capabilities declares what a backend supports, so callers can skip an
// operation instead of probing it with a failing call.
type Capabilities struct {
	CanOpenRead          bool
	CanOpenWrite         bool
	CanList              bool
	CanIterate           bool
	CanStat              bool
	CanCreateDirectories bool
	CanRemove            bool
	CanRemoveRecursive   bool
	CanMove              bool
	CanCopy              bool
	SupportsSymlink      bool
	SupportsPermissions  bool
	SupportsHiddenFlag   bool
	SupportsWatch        bool
	SupportsRecursiveWatch bool
	CaseSensitivePaths   bool
	SupportsToNativePath bool
	SupportsMtime        bool
	SupportsCtime        bool
	SupportsAtime        bool
	MaxPathBytes         int
	MaxNameBytes         int
}

// FileInfo is the result of a Stat call.
type FileInfo struct {
	Name    string
	Size    uint64
	IsDir   bool
	ModTime time.Time
}

// DirectoryEntry is one row of a List/Iterate result.
type DirectoryEntry struct {
	Name  string
	IsDir bool
}

// DirectoryIterator replays a directory listing.
type DirectoryIterator interface {
	Next() (DirectoryEntry, bool)
}

// VectorDirectoryIterator implements DirectoryIterator over an in-memory
// slice, used by Vfs.Iterate which builds on List.
type VectorDirectoryIterator struct {
	entries []DirectoryEntry
	pos     int
}

func NewVectorDirectoryIterator(entries []DirectoryEntry) *VectorDirectoryIterator {
	return &VectorDirectoryIterator{entries: entries}
}

func (it *VectorDirectoryIterator) Next() (DirectoryEntry, bool) {
	if it.pos >= len(it.entries) {
		return DirectoryEntry{}, false
	}
	e := it.entries[it.pos]
	it.pos++
	return e, true
}

// ListOptions controls a List call; reserved for recursive/glob filtering.
type ListOptions struct {
	Recursive bool
}

// RemoveOptions controls a Remove call.
type RemoveOptions struct {
	Recursive bool
}

// IFileSystem is the backend interface a mount binds to. Implementations
// receive already-resolved native path strings; they know nothing about
// overlay routing.
type IFileSystem interface {
	Open(nativePath string, mode iostream.FileOpenMode) (iostream.IStream, error)
	Exists(nativePath string) (bool, error)
	Stat(nativePath string) (FileInfo, error)
	CreateDirectories(nativePath string) error
	Remove(nativePath string, opt RemoveOptions) error
	Move(from, to string) error
	Copy(from, to string) error
	List(nativePath string, opt ListOptions) ([]DirectoryEntry, error)
	Iterate(nativePath string, opt ListOptions) (DirectoryIterator, error)
	ToNativePathString(nativePath string) (string, error)
	Capabilities() Capabilities
	CreateWatcher() (IFileWatcher, error)
}

func isNotFound(err error) bool {
	return ioerr.Is(err, ioerr.NotFound)
}
