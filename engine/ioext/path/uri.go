package path

import (
	"strings"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

// UriScheme enumerates the schemes this module understands natively.
type UriScheme int

const (
	SchemeNone UriScheme = iota
	SchemeAsset
	SchemeFile
	SchemeHttp
	SchemeHttps
	SchemeUnknown
)

func schemeFrom(lower string) UriScheme {
	switch lower {
	case "asset":
		return SchemeAsset
	case "file":
		return SchemeFile
	case "http":
		return SchemeHttp
	case "https":
		return SchemeHttps
	default:
		return SchemeUnknown
	}
}

func (s UriScheme) String() string {
	switch s {
	case SchemeNone:
		return ""
	case SchemeAsset:
		return "asset"
	case SchemeFile:
		return "file"
	case SchemeHttp:
		return "http"
	case SchemeHttps:
		return "https"
	default:
		return "unknown"
	}
}

// Uri is a parsed "scheme://authority/path?query#fragment" value. ParseUri
// stores Path as a normalized logical path; ParseUriLoose stores it as given.
type Uri struct {
	Scheme     UriScheme
	SchemeText string // set only when Scheme == SchemeUnknown
	Authority  string
	Path       string
	Query      string
	Fragment   string
}

func (u Uri) HasScheme() bool      { return u.Scheme != SchemeNone }
func (u Uri) IsKnownScheme() bool  { return u.Scheme != SchemeUnknown }

func (u Uri) String() string {
	var out strings.Builder
	if u.Scheme == SchemeNone {
		out.WriteString(u.Path)
	} else {
		if u.Scheme == SchemeUnknown {
			out.WriteString(u.SchemeText)
		} else {
			out.WriteString(u.Scheme.String())
		}
		out.WriteString("://")
		out.WriteString(u.Authority)
		if u.Authority != "" && u.Path != "" && u.Path[0] != '/' {
			out.WriteByte('/')
		}
		out.WriteString(u.Path)
	}
	if u.Query != "" {
		out.WriteByte('?')
		out.WriteString(u.Query)
	}
	if u.Fragment != "" {
		out.WriteByte('#')
		out.WriteString(u.Fragment)
	}
	return out.String()
}

// ParseUri strictly parses s, splitting fragment and query, then either a
// "scheme://authority/path" form or a bare relative logical path. It fails
// on malformed or unsafe paths.
func ParseUri(s string) (Uri, error) {
	if s == "" {
		return Uri{}, ioerr.New(ioerr.InvalidPath, "uri is empty", "")
	}

	base := s
	frag := ""
	if idx := strings.IndexByte(base, '#'); idx >= 0 {
		frag = base[idx+1:]
		base = base[:idx]
	}
	query := ""
	if idx := strings.IndexByte(base, '?'); idx >= 0 {
		query = base[idx+1:]
		base = base[:idx]
	}

	u := Uri{Query: query, Fragment: frag}

	schemePos := strings.Index(base, "://")
	if schemePos < 0 {
		opt := NormalizeOptions{
			ConvertBackslash:   true,
			CollapseSlashes:    true,
			RemoveDot:          true,
			ResolveDotDot:      true,
			RejectAbsoluteLike: true,
			RejectTraversal:    true,
			RejectNullByte:     true,
		}
		p, err := Normalize(base, opt)
		if err != nil {
			return Uri{}, err
		}
		u.Scheme = SchemeNone
		u.Path = p
		return u, nil
	}

	schemeLower := strings.ToLower(base[:schemePos])
	u.Scheme = schemeFrom(schemeLower)
	if u.Scheme == SchemeUnknown {
		u.SchemeText = base[:schemePos]
	}

	rest := base[schemePos+3:]

	var authority, pathPart string
	if slash := strings.IndexByte(rest, '/'); slash < 0 {
		authority = rest
	} else {
		authority = rest[:slash]
		pathPart = rest[slash+1:]
	}
	u.Authority = authority

	opt := NormalizeOptions{
		ConvertBackslash: true,
		CollapseSlashes:  true,
		RemoveDot:        true,
		ResolveDotDot:    true,
		RejectNullByte:   true,
		RejectTraversal:  true,
	}
	if u.Scheme == SchemeFile {
		opt.RejectAbsoluteLike = false
	} else {
		opt.RejectAbsoluteLike = true
	}

	if pathPart != "" {
		p, err := Normalize(pathPart, opt)
		if err != nil {
			return Uri{}, err
		}
		u.Path = p
	}

	return u, nil
}

// ParseUriLoose never fails: it strips a "scheme://" prefix if present and
// stores the remainder unnormalized.
func ParseUriLoose(s string) Uri {
	idx := strings.Index(s, "://")
	if idx < 0 {
		return Uri{Path: s}
	}
	u := Uri{Scheme: schemeFrom(strings.ToLower(s[:idx]))}
	if u.Scheme == SchemeUnknown {
		u.SchemeText = s[:idx]
	}
	rest := s[idx+3:]
	for len(rest) > 0 && (rest[0] == '/' || rest[0] == '\\') {
		rest = rest[1:]
	}
	u.Path = rest
	return u
}
