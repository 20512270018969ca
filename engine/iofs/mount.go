package iofs

import (
	"sort"
	"strings"

	"github.com/spaghettifunk/animavault/engine/ioerr"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
)

// MountPoint binds a logical scheme to a backend rooted at a native path.
type MountPoint struct {
	Name        string
	Priority    int32
	ReadOnly    bool
	MountUri    string // e.g. "asset://"
	RootUri     string // backend-native base path
	Fs          IFileSystem
	PreferWrite bool
}

// MountTable holds mounts sorted by (priority desc, preferWrite true
// first, name asc) and resolves vfs URIs against them.
type MountTable struct {
	mounts []MountPoint
}

// Mount inserts mp in sorted order. Rejects a mount with a nil backend or
// an empty name.
func (t *MountTable) Mount(mp MountPoint) error {
	if mp.Fs == nil {
		return ioerr.New(ioerr.InvalidPath, "mount has no backend", mp.Name)
	}
	if mp.Name == "" {
		return ioerr.New(ioerr.InvalidPath, "mount has no name", "")
	}
	t.mounts = append(t.mounts, mp)
	sort.SliceStable(t.mounts, func(i, j int) bool {
		a, b := t.mounts[i], t.mounts[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.PreferWrite != b.PreferWrite {
			return a.PreferWrite
		}
		return a.Name < b.Name
	})
	return nil
}

// Unmount removes the mount with the given name, reporting whether one was
// found.
func (t *MountTable) Unmount(name string) bool {
	for i, mp := range t.mounts {
		if mp.Name == name {
			t.mounts = append(t.mounts[:i], t.mounts[i+1:]...)
			return true
		}
	}
	return false
}

func mountScheme(mountUri string) string {
	scheme, _, found := strings.Cut(mountUri, "://")
	if !found {
		return ""
	}
	return strings.ToLower(scheme)
}

// Candidates returns all mounts whose scheme matches uri's, in table
// order.
func (t *MountTable) Candidates(uri path.Uri) []*MountPoint {
	want := strings.ToLower(uri.Scheme.String())
	var out []*MountPoint
	for i := range t.mounts {
		if mountScheme(t.mounts[i].MountUri) == want {
			out = append(out, &t.mounts[i])
		}
	}
	return out
}

// ResolvedUri is the native location a mount resolves a vfs-relative URI
// to.
type ResolvedUri struct {
	NativePath string
}

// Resolve strips the scheme from uri, trims leading slashes, and appends
// the remainder under mp.RootUri with exactly one separator.
func (t *MountTable) Resolve(mp MountPoint, uri path.Uri) (ResolvedUri, error) {
	rel := uri.Path
	for len(rel) > 0 && rel[0] == '/' {
		rel = rel[1:]
	}
	return ResolvedUri{NativePath: path.JoinRootAndRelative(mp.RootUri, rel)}, nil
}
