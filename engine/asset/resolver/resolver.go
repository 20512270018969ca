// Package resolver translates catalog-relative asset paths into resolved
// path strings, enforcing the root-escape and absolute-path policy the
// catalog and pipeline depend on.
package resolver

import (
	"strings"

	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
)

// Options configures one resolver instance.
type Options struct {
	AssetsRoot            string
	AllowSchemes          bool
	AllowAbsolutePath     bool
	AllowEscapeAssetsRoot bool
}

func DefaultOptions(assetsRoot string) Options {
	return Options{AssetsRoot: assetsRoot}
}

// AssetPathResolver resolves catalog-authored relative paths to resolved
// path strings under a configured assets root.
type AssetPathResolver struct {
	opt Options
}

func New(opt Options) *AssetPathResolver {
	return &AssetPathResolver{opt: opt}
}

// Resolve implements the five-step catalog-path → resolved-path
// algorithm: reject empty input, strip scheme, normalize, branch on
// absolute-like vs relative, and for relative inputs join under the
// assets root with escape-root protection.
func (r *AssetPathResolver) Resolve(catalogPath string) (string, error) {
	if strings.TrimSpace(catalogPath) == "" {
		return "", asserr.New(asserr.InvalidPath, "resolve: empty catalog path", "")
	}

	if path.ContainsNullByte(catalogPath) {
		return "", asserr.New(asserr.InvalidPath, "resolve: path contains null byte", catalogPath)
	}

	raw := catalogPath
	if r.opt.AllowSchemes {
		if rest, stripped := path.StripSchemeLoose(raw); stripped {
			raw = rest
		}
	}

	// NormalizeSlashes only cleans separators; unlike Normalize it never
	// rebuilds the path from a segment stack, so it can't drop a leading
	// "/" the way a stack-rebuild-and-rejoin would.
	normalized := path.NormalizeSlashes(raw, true, true)

	if path.IsAbsoluteLike(normalized) {
		if !r.opt.AllowAbsolutePath {
			return "", asserr.New(asserr.InvalidPath, "resolve: absolute path not allowed", catalogPath)
		}
		resolved, _ := path.RemoveDotSegments(normalized)
		return resolved, nil
	}

	joined := path.JoinRootAndRelative(r.opt.AssetsRoot, normalized)
	renormalized := path.NormalizeSlashes(joined, true, true)
	resolved, escaped := path.RemoveDotSegments(renormalized)
	if escaped && !r.opt.AllowEscapeAssetsRoot {
		return "", asserr.New(asserr.PathEscapesRoot, "resolve: path escapes assets root", catalogPath)
	}
	return resolved, nil
}
