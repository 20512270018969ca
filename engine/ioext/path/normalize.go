// Package path implements logical path and URI normalization for the asset
// subsystem, independent of the host OS's path conventions.
package path

import (
	"strings"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

// NormalizeOptions controls which transformations Normalize applies.
type NormalizeOptions struct {
	ConvertBackslash   bool
	CollapseSlashes    bool
	RemoveDot          bool
	ResolveDotDot      bool
	RejectAbsoluteLike bool
	RejectTraversal    bool
	RejectNullByte     bool
	KeepTrailingSlash  bool
}

// DefaultNormalizeOptions mirrors the reference defaults: convert, collapse,
// remove dot, resolve dot-dot, reject absolute paths, reject traversal,
// reject null bytes, drop trailing slashes.
func DefaultNormalizeOptions() NormalizeOptions {
	return NormalizeOptions{
		ConvertBackslash:   true,
		CollapseSlashes:    true,
		RemoveDot:          true,
		ResolveDotDot:      true,
		RejectAbsoluteLike: true,
		RejectTraversal:    true,
		RejectNullByte:     true,
		KeepTrailingSlash:  false,
	}
}

// ContainsNullByte reports whether s contains a NUL byte.
func ContainsNullByte(s string) bool {
	return strings.IndexByte(s, 0) >= 0
}

// NormalizeSlashes does a character-preserving separator cleanup:
// backslash-to-slash conversion and run-of-slashes squashing, with no
// segment rebuild. Unlike Normalize it never drops a leading separator,
// which matters for callers (the resolver) that rejoin the result with an
// absolute root and need RemoveDotSegments to see that root's leading "/".
func NormalizeSlashes(path string, normalizeSeparators, squashSlashes bool) string {
	var sb strings.Builder
	sb.Grow(len(path))
	prevSlash := false
	for _, ch := range path {
		x := ch
		if normalizeSeparators && x == '\\' {
			x = '/'
		}
		if squashSlashes {
			if x == '/' {
				if prevSlash {
					continue
				}
				prevSlash = true
			} else {
				prevSlash = false
			}
		}
		sb.WriteRune(x)
	}
	return sb.String()
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

// IsAbsoluteLike reports whether s looks like a POSIX absolute path, a
// Windows UNC path, or a Windows drive path.
func IsAbsoluteLike(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '/' {
		return true
	}
	if len(s) >= 2 && ((s[0] == '\\' && s[1] == '\\') || (s[0] == '/' && s[1] == '/')) {
		return true
	}
	if len(s) >= 2 && isAlpha(s[0]) && s[1] == ':' {
		return true
	}
	return false
}

// ContainsTraversal reports whether any "/"-or-"\"-separated segment of s
// is exactly "..".
func ContainsTraversal(s string) bool {
	for _, seg := range splitSegments(s) {
		if seg == ".." {
			return true
		}
	}
	return false
}

func splitSegments(s string) []string {
	var segs []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == '/' || s[i] == '\\') {
			i++
		}
		if i >= len(s) {
			break
		}
		j := i
		for j < len(s) && s[j] != '/' && s[j] != '\\' {
			j++
		}
		segs = append(segs, s[i:j])
		i = j
	}
	return segs
}

// Normalize reduces raw to a normalized logical path per opt, or fails with
// a coded *ioerr.Error.
func Normalize(raw string, opt NormalizeOptions) (string, error) {
	if opt.RejectNullByte && ContainsNullByte(raw) {
		return "", ioerr.New(ioerr.InvalidPath, "path contains null byte", raw)
	}
	if opt.RejectAbsoluteLike && IsAbsoluteLike(raw) {
		return "", ioerr.New(ioerr.InvalidPath, "absolute-like path is not allowed", raw)
	}

	var sb strings.Builder
	sb.Grow(len(raw))
	for _, ch := range raw {
		if opt.ConvertBackslash && ch == '\\' {
			sb.WriteByte('/')
		} else {
			sb.WriteRune(ch)
		}
	}
	s := sb.String()

	hadTrailingSlash := len(s) > 0 && s[len(s)-1] == '/'

	if opt.CollapseSlashes {
		var t strings.Builder
		t.Grow(len(s))
		prevSlash := false
		for i := 0; i < len(s); i++ {
			c := s[i]
			if c == '/' {
				if !prevSlash {
					t.WriteByte(c)
				}
				prevSlash = true
			} else {
				t.WriteByte(c)
				prevSlash = false
			}
		}
		s = t.String()
	}

	var stack []string
	i := 0
	for i < len(s) {
		for i < len(s) && s[i] == '/' {
			i++
		}
		if i >= len(s) {
			break
		}
		j := i
		for j < len(s) && s[j] != '/' {
			j++
		}
		seg := s[i:j]
		i = j

		if opt.RemoveDot && seg == "." {
			continue
		}

		if seg == ".." {
			if opt.ResolveDotDot {
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					continue
				}
				return "", ioerr.New(ioerr.PathEscapesRoot, "path escapes root by '..'", raw)
			} else if opt.RejectTraversal {
				return "", ioerr.New(ioerr.InvalidPath, "path traversal '..' is not allowed", raw)
			}
			stack = append(stack, seg)
			continue
		}

		stack = append(stack, seg)
	}

	out := strings.Join(stack, "/")

	if opt.KeepTrailingSlash && hadTrailingSlash && out != "" {
		out += "/"
	}

	if opt.RejectTraversal && ContainsTraversal(out) {
		return "", ioerr.New(ioerr.InvalidPath, "path traversal '..' is not allowed", out)
	}

	return out, nil
}

// RemoveDotSegments resolves "." and ".." segments without failing,
// reporting whether a ".." tried to pop above an empty stack or above a
// preserved root prefix ("/", "//", or a "C:/"-style drive).
func RemoveDotSegments(p string) (result string, escapedAboveRoot bool) {
	prefix := ""
	rest := p

	switch {
	case len(rest) >= 3 && isAlpha(rest[0]) && rest[1] == ':' && rest[2] == '/':
		prefix = rest[:3]
		rest = rest[3:]
	case len(rest) >= 2 && rest[0] == '/' && rest[1] == '/':
		prefix = "//"
		rest = rest[2:]
	case len(rest) >= 1 && rest[0] == '/':
		prefix = "/"
		rest = rest[1:]
	}

	var stack []string
	for _, seg := range strings.Split(rest, "/") {
		if seg == "" || seg == "." {
			continue
		}
		if seg == ".." {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			} else {
				escapedAboveRoot = true
			}
			continue
		}
		stack = append(stack, seg)
	}

	out := prefix + strings.Join(stack, "/")
	if prefix != "" && len(stack) == 0 {
		if out == "" {
			out = prefix
		}
		return out, escapedAboveRoot
	}
	return out, escapedAboveRoot
}

// Join concatenates a and b, ensuring exactly one "/" between them.
func Join(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	aEnds := strings.HasSuffix(a, "/")
	bBeg := strings.HasPrefix(b, "/")
	switch {
	case aEnds && bBeg:
		return a[:len(a)-1] + b
	case !aEnds && !bBeg:
		return a + "/" + b
	default:
		return a + b
	}
}

// StripSchemeLoose removes a leading "scheme://" prefix (and any slashes
// immediately following it) without validating the scheme name.
func StripSchemeLoose(p string) (rest string, stripped bool) {
	idx := strings.Index(p, "://")
	if idx < 0 {
		return p, false
	}
	rest = p[idx+3:]
	for len(rest) > 0 && (rest[0] == '/' || rest[0] == '\\') {
		rest = rest[1:]
	}
	return rest, true
}

// JoinRootAndRelative joins an assets root with a relative path, defaulting
// the root to "assets" when empty and ensuring exactly one separator.
func JoinRootAndRelative(root, rel string) string {
	r := root
	if r == "" {
		r = "assets"
	}
	r = strings.ReplaceAll(r, "\\", "/")
	if !strings.HasSuffix(r, "/") {
		r += "/"
	}
	for len(rel) > 0 && (rel[0] == '/' || rel[0] == '\\') {
		rel = rel[1:]
	}
	return r + rel
}
