package iofs

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spaghettifunk/animavault/engine/ioerr"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

// NativeFileSystem is an IFileSystem backend rooted at the host OS's
// filesystem, the only concrete backend this module ships.
type NativeFileSystem struct{}

func NewNativeFileSystem() *NativeFileSystem { return &NativeFileSystem{} }

func mapOsErr(err error, op string) error {
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return ioerr.New(ioerr.NotFound, op+" failed", err.Error())
	}
	if os.IsPermission(err) {
		return ioerr.New(ioerr.PermissionDenied, op+" failed", err.Error())
	}
	if os.IsExist(err) {
		return ioerr.New(ioerr.AlreadyExists, op+" failed", err.Error())
	}
	return ioerr.New(ioerr.InternalError, op+" failed", err.Error())
}

func (n *NativeFileSystem) Open(nativePath string, mode iostream.FileOpenMode) (iostream.IStream, error) {
	flag := 0
	if mode.CanRead() && mode.CanWrite() {
		flag = os.O_RDWR
	} else if mode.CanWrite() {
		flag = os.O_WRONLY
	} else {
		flag = os.O_RDONLY
	}
	if mode.Has(iostream.ModeCreateIfMissing) {
		flag |= os.O_CREATE
	}
	if mode.Has(iostream.ModeTruncate) {
		flag |= os.O_TRUNC
	}
	if mode.Has(iostream.ModeAppend) {
		flag |= os.O_APPEND
	}

	f, err := os.OpenFile(nativePath, flag, 0o644)
	if err != nil {
		return nil, mapOsErr(err, "open")
	}
	return &osFileStream{f: f, mode: mode}, nil
}

func (n *NativeFileSystem) Exists(nativePath string) (bool, error) {
	_, err := os.Stat(nativePath)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, mapOsErr(err, "exists")
}

func (n *NativeFileSystem) Stat(nativePath string) (FileInfo, error) {
	fi, err := os.Stat(nativePath)
	if err != nil {
		return FileInfo{}, mapOsErr(err, "stat")
	}
	return FileInfo{Name: fi.Name(), Size: uint64(fi.Size()), IsDir: fi.IsDir(), ModTime: fi.ModTime()}, nil
}

func (n *NativeFileSystem) CreateDirectories(nativePath string) error {
	if err := os.MkdirAll(nativePath, 0o755); err != nil {
		return mapOsErr(err, "create_directories")
	}
	return nil
}

func (n *NativeFileSystem) Remove(nativePath string, opt RemoveOptions) error {
	var err error
	if opt.Recursive {
		err = os.RemoveAll(nativePath)
	} else {
		err = os.Remove(nativePath)
	}
	if err != nil {
		return mapOsErr(err, "remove")
	}
	return nil
}

func (n *NativeFileSystem) Move(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return mapOsErr(err, "move")
	}
	return nil
}

func (n *NativeFileSystem) Copy(from, to string) error {
	src, err := os.Open(from)
	if err != nil {
		return mapOsErr(err, "copy")
	}
	defer src.Close()

	dst, err := os.Create(to)
	if err != nil {
		return mapOsErr(err, "copy")
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return mapOsErr(err, "copy")
	}
	return nil
}

func (n *NativeFileSystem) List(nativePath string, opt ListOptions) ([]DirectoryEntry, error) {
	entries, err := os.ReadDir(nativePath)
	if err != nil {
		return nil, mapOsErr(err, "list")
	}
	out := make([]DirectoryEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, DirectoryEntry{Name: e.Name(), IsDir: e.IsDir()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (n *NativeFileSystem) Iterate(nativePath string, opt ListOptions) (DirectoryIterator, error) {
	entries, err := n.List(nativePath, opt)
	if err != nil {
		return nil, err
	}
	return NewVectorDirectoryIterator(entries), nil
}

func (n *NativeFileSystem) ToNativePathString(nativePath string) (string, error) {
	return filepath.Clean(nativePath), nil
}

func (n *NativeFileSystem) Capabilities() Capabilities {
	return Capabilities{
		CanOpenRead: true, CanOpenWrite: true, CanList: true, CanIterate: true,
		CanStat: true, CanCreateDirectories: true, CanRemove: true, CanRemoveRecursive: true,
		CanMove: true, CanCopy: true, SupportsWatch: true, SupportsRecursiveWatch: true,
		CaseSensitivePaths: true, SupportsToNativePath: true, SupportsMtime: true,
	}
}

func (n *NativeFileSystem) CreateWatcher() (IFileWatcher, error) {
	return newFsnotifyWatcher()
}

// osFileStream adapts *os.File to iostream.IStream.
type osFileStream struct {
	f    *os.File
	mode iostream.FileOpenMode
}

func (s *osFileStream) Caps() iostream.Caps {
	return iostream.Caps{Readable: s.mode.CanRead(), Writable: s.mode.CanWrite(), Seekable: true}
}

func (s *osFileStream) IsOpen() bool { return s.f != nil }

func (s *osFileStream) IsEof() bool {
	if s.f == nil {
		return true
	}
	fi, err := s.f.Stat()
	if err != nil {
		return true
	}
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return true
	}
	return pos >= fi.Size()
}

func (s *osFileStream) Read(dst []byte) (int, error) {
	n, err := s.f.Read(dst)
	if err != nil && err != io.EOF {
		return n, ioerr.New(ioerr.ReadFailed, "read failed", err.Error())
	}
	return n, nil
}

func (s *osFileStream) Write(src []byte) (int, error) {
	n, err := s.f.Write(src)
	if err != nil {
		return n, ioerr.New(ioerr.WriteFailed, "write failed", err.Error())
	}
	return n, nil
}

func (s *osFileStream) Tell() (uint64, error) {
	pos, err := s.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioerr.New(ioerr.SeekFailed, "tell failed", err.Error())
	}
	return uint64(pos), nil
}

func (s *osFileStream) Seek(offset int64, whence iostream.SeekWhence) (uint64, error) {
	var w int
	switch whence {
	case iostream.SeekBegin:
		w = io.SeekStart
	case iostream.SeekCurrent:
		w = io.SeekCurrent
	case iostream.SeekEnd:
		w = io.SeekEnd
	}
	pos, err := s.f.Seek(offset, w)
	if err != nil {
		return 0, ioerr.New(ioerr.SeekFailed, "seek failed", err.Error())
	}
	return uint64(pos), nil
}

func (s *osFileStream) Size() (uint64, error) {
	fi, err := s.f.Stat()
	if err != nil {
		return 0, ioerr.New(ioerr.InternalError, "size failed", err.Error())
	}
	return uint64(fi.Size()), nil
}

func (s *osFileStream) Flush() error {
	if err := s.f.Sync(); err != nil {
		return ioerr.New(ioerr.InternalError, "flush failed", err.Error())
	}
	return nil
}

func (s *osFileStream) Close() error {
	if s.f == nil {
		return nil
	}
	err := s.f.Close()
	s.f = nil
	if err != nil {
		return ioerr.New(ioerr.InternalError, "close failed", err.Error())
	}
	return nil
}
