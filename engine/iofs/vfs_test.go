package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/animavault/engine/ioext/path"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

func mustWrite(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func readAll(t *testing.T, s iostream.IStream) string {
	t.Helper()
	defer s.Close()
	r := iostream.NewStreamReader(s)
	data, err := r.ReadAllBytes(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return string(data)
}

func TestVfsOpenPrefersHigherPriorityMount(t *testing.T) {
	dirHigh := t.TempDir()
	dirLow := t.TempDir()
	mustWrite(t, dirHigh, "shared.txt", "high")
	mustWrite(t, dirLow, "shared.txt", "low")
	mustWrite(t, dirLow, "only_low.txt", "low-only")

	v := NewVfs()
	if err := v.Mount(MountPoint{Name: "high", Priority: 10, ReadOnly: true, RootUri: dirHigh, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Mount(MountPoint{Name: "low", Priority: 0, RootUri: dirLow, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := v.Open(path.Uri{Path: "shared.txt"}, iostream.OpenReadBinary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readAll(t, s); got != "high" {
		t.Fatalf("expected the higher-priority mount to win, got %q", got)
	}

	s, err = v.Open(path.Uri{Path: "only_low.txt"}, iostream.OpenReadBinary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := readAll(t, s); got != "low-only" {
		t.Fatalf("expected a NotFound miss on the high mount to fall through, got %q", got)
	}
}

func TestVfsOpenForWriteSkipsReadOnlyMounts(t *testing.T) {
	dirHigh := t.TempDir()
	dirLow := t.TempDir()

	v := NewVfs()
	if err := v.Mount(MountPoint{Name: "high", Priority: 10, ReadOnly: true, RootUri: dirHigh, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Mount(MountPoint{Name: "low", Priority: 0, RootUri: dirLow, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s, err := v.Open(path.Uri{Path: "written.txt"}, iostream.OpenWriteBinaryTruncate(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := s.Write([]byte("written")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Close()

	if _, err := os.Stat(filepath.Join(dirHigh, "written.txt")); err == nil {
		t.Fatalf("expected the read-only mount to be skipped for writes")
	}
	data, err := os.ReadFile(filepath.Join(dirLow, "written.txt"))
	if err != nil {
		t.Fatalf("expected the write to land on the writable mount: %v", err)
	}
	if string(data) != "written" {
		t.Fatalf("got %q", string(data))
	}
}

func TestVfsExistsFallsThroughAcrossMounts(t *testing.T) {
	dirHigh := t.TempDir()
	dirLow := t.TempDir()
	mustWrite(t, dirLow, "only_low.txt", "low-only")

	v := NewVfs()
	if err := v.Mount(MountPoint{Name: "high", Priority: 10, RootUri: dirHigh, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v.Mount(MountPoint{Name: "low", Priority: 0, RootUri: dirLow, Fs: NewNativeFileSystem()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err := v.Exists(path.Uri{Path: "only_low.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected Exists to find the file on the lower-priority mount")
	}

	ok, err = v.Exists(path.Uri{Path: "nope.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected Exists to report false for a file in neither mount")
	}
}
