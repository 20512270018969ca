package path

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

func TestNormalizeDefaults(t *testing.T) {
	opt := DefaultNormalizeOptions()
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr ioerr.Code
	}{
		{"collapses duplicate slashes", "a//b///c", "a/b/c", 0},
		{"converts backslashes", `a\b\c`, "a/b/c", 0},
		{"drops dot segments", "a/./b/./c", "a/b/c", 0},
		{"resolves dot-dot within the path", "a/b/../c", "a/c", 0},
		{"rejects absolute-like input", "/etc/passwd", "", ioerr.InvalidPath},
		{"rejects a null byte", "a/\x00/b", "", ioerr.InvalidPath},
		{"dot-dot above root escapes", "../secret", "", ioerr.PathEscapesRoot},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalize(tc.in, opt)
			if tc.wantErr != 0 {
				if err == nil {
					t.Fatalf("expected an error, got result %q", got)
				}
				ie, ok := err.(*ioerr.Error)
				if !ok || ie.Code != tc.wantErr {
					t.Fatalf("expected code %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestRemoveDotSegments(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		want     string
		escaped  bool
	}{
		{"relative dot-dot resolves in place", "a/b/../c", "a/c", false},
		{"dot-dot above an absolute root escapes but keeps the root", "/../a", "/a", true},
		{"dot-dot above a relative root escapes with nothing to show", "../a", "a", true},
		{"dots alone collapse to empty", "./.", "", false},
		{"preserves a drive prefix", "C:/a/../b", "C:/b", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, escaped := RemoveDotSegments(tc.in)
			if got != tc.want || escaped != tc.escaped {
				t.Fatalf("RemoveDotSegments(%q) = (%q, %v), want (%q, %v)", tc.in, got, escaped, tc.want, tc.escaped)
			}
		})
	}
}

func TestJoinRootAndRelative(t *testing.T) {
	cases := []struct {
		name string
		root string
		rel  string
		want string
	}{
		{"defaults an empty root to assets", "", "hero.txt", "assets/hero.txt"},
		{"joins with exactly one separator", "assets", "hero.txt", "assets/hero.txt"},
		{"tolerates a trailing slash on root", "assets/", "hero.txt", "assets/hero.txt"},
		{"strips a leading slash on rel", "assets", "/hero.txt", "assets/hero.txt"},
		{"preserves an absolute root", "/var/assets", "hero.txt", "/var/assets/hero.txt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := JoinRootAndRelative(tc.root, tc.rel); got != tc.want {
				t.Fatalf("JoinRootAndRelative(%q, %q) = %q, want %q", tc.root, tc.rel, got, tc.want)
			}
		})
	}
}

func TestNormalizeSlashes(t *testing.T) {
	cases := []struct {
		name                               string
		in                                 string
		normalizeSeparators, squashSlashes bool
		want                               string
	}{
		{"converts backslashes", `a\b\c`, true, true, "a/b/c"},
		{"squashes duplicate slashes", "a//b///c", true, true, "a/b/c"},
		{"preserves a leading slash", "/a/b", true, true, "/a/b"},
		{"preserves dot segments verbatim", "/a/../b", true, true, "/a/../b"},
		{"leaves backslashes alone when disabled", `a\b`, false, true, `a\b`},
		{"leaves duplicate slashes alone when disabled", "a//b", true, false, "a//b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeSlashes(tc.in, tc.normalizeSeparators, tc.squashSlashes); got != tc.want {
				t.Fatalf("NormalizeSlashes(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestStripSchemeLoose(t *testing.T) {
	if rest, ok := StripSchemeLoose("asset://hero.txt"); !ok || rest != "hero.txt" {
		t.Fatalf("got (%q, %v)", rest, ok)
	}
	if rest, ok := StripSchemeLoose("hero.txt"); ok || rest != "hero.txt" {
		t.Fatalf("expected no scheme to strip, got (%q, %v)", rest, ok)
	}
}
