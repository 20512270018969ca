package iofs

import (
	"github.com/spaghettifunk/animavault/engine/ioerr"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

// Vfs routes IFileSystem-shaped operations across an overlay of mounts
// ordered by priority.
type Vfs struct {
	mounts MountTable
}

func NewVfs() *Vfs { return &Vfs{} }

func (v *Vfs) Mounts() *MountTable { return &v.mounts }

func (v *Vfs) Mount(mp MountPoint) error { return v.mounts.Mount(mp) }
func (v *Vfs) Unmount(name string) bool  { return v.mounts.Unmount(name) }

// Open iterates candidates for uri's scheme. Reads take the first success,
// falling through NotFound; writes take the first writable success,
// falling through NotFound to PermissionDenied.
func (v *Vfs) Open(uri path.Uri, mode iostream.FileOpenMode) (iostream.IStream, error) {
	if !iostream.IsValid(mode) {
		return nil, ioerr.New(ioerr.InvalidPath, "Vfs: invalid FileOpenMode", "")
	}

	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return nil, ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}

	wantsWrite := mode.Has(iostream.ModeWrite)

	if wantsWrite {
		for _, mp := range cands {
			if mp.ReadOnly {
				continue
			}
			rr, err := v.mounts.Resolve(*mp, uri)
			if err != nil {
				continue
			}
			s, err := mp.Fs.Open(rr.NativePath, mode)
			if err == nil {
				return s, nil
			}
			if !isNotFound(err) {
				return nil, err
			}
		}
		return nil, ioerr.New(ioerr.PermissionDenied, "Vfs: no writable mount found", "")
	}

	lastNotFound := ioerr.New(ioerr.NotFound, "Vfs: not found", "")
	for _, mp := range cands {
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		s, err := mp.Fs.Open(rr.NativePath, mode)
		if err == nil {
			return s, nil
		}
		if isNotFound(err) {
			if e, ok := err.(*ioerr.Error); ok {
				lastNotFound = e
			}
			continue
		}
		return nil, err
	}
	return nil, lastNotFound
}

// Exists is true if any candidate reports true; NotFound falls through,
// other errors propagate.
func (v *Vfs) Exists(uri path.Uri) (bool, error) {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return false, nil
	}
	for _, mp := range cands {
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		ok, err := mp.Fs.Exists(rr.NativePath)
		if err == nil {
			if ok {
				return true, nil
			}
			continue
		}
		if isNotFound(err) {
			continue
		}
		return false, err
	}
	return false, nil
}

// Stat returns the first candidate's successful result; NotFound falls
// through.
func (v *Vfs) Stat(uri path.Uri) (FileInfo, error) {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return FileInfo{}, ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	var lastNotFound error = ioerr.New(ioerr.NotFound, "Vfs: not found", "")
	for _, mp := range cands {
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		fi, err := mp.Fs.Stat(rr.NativePath)
		if err == nil {
			return fi, nil
		}
		if isNotFound(err) {
			lastNotFound = err
			continue
		}
		return FileInfo{}, err
	}
	return FileInfo{}, lastNotFound
}

// CreateDirectories uses the first writable candidate that succeeds.
func (v *Vfs) CreateDirectories(uri path.Uri) error {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	for _, mp := range cands {
		if mp.ReadOnly {
			continue
		}
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		err = mp.Fs.CreateDirectories(rr.NativePath)
		if err == nil {
			return nil
		}
		if isNotFound(err) {
			continue
		}
		return err
	}
	return ioerr.New(ioerr.PermissionDenied, "Vfs: no writable mount found", "")
}

// Remove targets the first candidate whose Stat succeeds and which is
// writable.
func (v *Vfs) Remove(uri path.Uri, opt RemoveOptions) error {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	var lastNotFound error = ioerr.New(ioerr.NotFound, "Vfs: not found", "")
	for _, mp := range cands {
		if mp.ReadOnly {
			continue
		}
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		if _, err := mp.Fs.Stat(rr.NativePath); err == nil {
			return mp.Fs.Remove(rr.NativePath, opt)
		} else if isNotFound(err) {
			lastNotFound = err
			continue
		} else {
			return err
		}
	}
	return lastNotFound
}

// Move requires from and to to resolve under the same writable mount.
func (v *Vfs) Move(from, to path.Uri) error {
	cands := v.mounts.Candidates(from)
	if len(cands) == 0 {
		return ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	for _, mp := range cands {
		if mp.ReadOnly {
			continue
		}
		rfrom, err := v.mounts.Resolve(*mp, from)
		if err != nil {
			continue
		}
		rto, err := v.mounts.Resolve(*mp, to)
		if err != nil {
			continue
		}
		if _, err := mp.Fs.Stat(rfrom.NativePath); err != nil {
			if isNotFound(err) {
				continue
			}
			return err
		}
		return mp.Fs.Move(rfrom.NativePath, rto.NativePath)
	}
	return ioerr.New(ioerr.NotFound, "Vfs: source not found or no writable mount", "")
}

// Copy mirrors Move's same-mount requirement.
func (v *Vfs) Copy(from, to path.Uri) error {
	cands := v.mounts.Candidates(from)
	if len(cands) == 0 {
		return ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	for _, mp := range cands {
		if mp.ReadOnly {
			continue
		}
		rfrom, err := v.mounts.Resolve(*mp, from)
		if err != nil {
			continue
		}
		rto, err := v.mounts.Resolve(*mp, to)
		if err != nil {
			continue
		}
		if _, err := mp.Fs.Stat(rfrom.NativePath); err != nil {
			if isNotFound(err) {
				continue
			}
			return err
		}
		return mp.Fs.Copy(rfrom.NativePath, rto.NativePath)
	}
	return ioerr.New(ioerr.NotFound, "Vfs: source not found or no writable mount", "")
}

// List merges entries across every candidate mount; on a name collision
// the higher-priority mount's entry wins. Any non-NotFound error aborts.
func (v *Vfs) List(uri path.Uri, opt ListOptions) ([]DirectoryEntry, error) {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return nil, ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}

	var out []DirectoryEntry
	seen := make(map[string]bool)
	anyOk := false
	var lastErr error = ioerr.New(ioerr.NotFound, "Vfs: list failed", "")

	for _, mp := range cands {
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		entries, err := mp.Fs.List(rr.NativePath, opt)
		if err != nil {
			lastErr = err
			if isNotFound(err) {
				continue
			}
			return nil, err
		}
		anyOk = true
		for _, e := range entries {
			if !seen[e.Name] {
				seen[e.Name] = true
				out = append(out, e)
			}
		}
	}

	if !anyOk {
		return nil, lastErr
	}
	return out, nil
}

// Iterate is implemented over List as a replayable in-memory sequence.
func (v *Vfs) Iterate(uri path.Uri, opt ListOptions) (DirectoryIterator, error) {
	entries, err := v.List(uri, opt)
	if err != nil {
		return nil, err
	}
	return NewVectorDirectoryIterator(entries), nil
}

// ToNativePathString resolves against the first candidate.
func (v *Vfs) ToNativePathString(uri path.Uri) (string, error) {
	cands := v.mounts.Candidates(uri)
	if len(cands) == 0 {
		return "", ioerr.New(ioerr.NotFound, "Vfs: no mount for scheme", "")
	}
	var lastNotFound error = ioerr.New(ioerr.NotFound, "Vfs: not found", "")
	for _, mp := range cands {
		rr, err := v.mounts.Resolve(*mp, uri)
		if err != nil {
			continue
		}
		s, err := mp.Fs.ToNativePathString(rr.NativePath)
		if err == nil {
			return s, nil
		}
		if isNotFound(err) {
			lastNotFound = err
			continue
		}
		return "", err
	}
	return "", lastNotFound
}
