// Package loader implements bytes→typed-resource dispatch: the
// IAssetLoader plugin interface, a registry keyed by AssetType, and the
// pipeline that drives one load end to end.
package loader

import (
	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

// LoadContext carries everything a loader needs besides the raw bytes:
// the asset's type and resolved path, for loaders whose decode depends
// on the source location (e.g. an extension-driven image codec).
type LoadContext struct {
	Type         assetid.AssetType
	ResolvedPath string
}

// IAssetLoader decodes raw bytes into a typed, boxed AnyAsset.
type IAssetLoader interface {
	GetType() assetid.AssetType
	Load(data []byte, ctx LoadContext) (anyasset.AnyAsset, error)
}

// LoaderRegistry maps AssetType to the loader responsible for it.
// Registration is unique; a missing lookup returns (nil, false) and
// surfaces as NoLoader at the pipeline level.
type LoaderRegistry struct {
	byType map[uint64]IAssetLoader
}

func NewRegistry() *LoaderRegistry {
	return &LoaderRegistry{byType: make(map[uint64]IAssetLoader)}
}

// Register adds l under its own GetType(). A duplicate registration for
// the same type is rejected, mirroring the unique-registration scan the
// engine's resource system used for its loader table.
func (r *LoaderRegistry) Register(l IAssetLoader) error {
	typ := l.GetType()
	if _, exists := r.byType[typ.Hash()]; exists {
		return asserr.New(asserr.InvalidCatalogEntry, "loader: type already registered", typ.String())
	}
	r.byType[typ.Hash()] = l
	return nil
}

func (r *LoaderRegistry) Lookup(typ assetid.AssetType) (IAssetLoader, bool) {
	l, ok := r.byType[typ.Hash()]
	return l, ok
}

// Source is the read-only byte source the pipeline opens resolved paths
// through; satisfied by *iofs.Vfs.
type Source interface {
	Open(uri path.Uri, mode iostream.FileOpenMode) (iostream.IStream, error)
}

// Pipeline drives one load: resolve loader → open source → read bytes →
// decode → wrap in AnyAsset.
type Pipeline struct {
	registry     *LoaderRegistry
	source       Source
	maxReadBytes int
}

// DefaultMaxReadBytes bounds a single asset read when the caller does
// not configure a tighter limit.
const DefaultMaxReadBytes = 256 << 20

func NewPipeline(registry *LoaderRegistry, source Source, maxReadBytes int) *Pipeline {
	if maxReadBytes <= 0 {
		maxReadBytes = DefaultMaxReadBytes
	}
	return &Pipeline{registry: registry, source: source, maxReadBytes: maxReadBytes}
}

// Result is one pipeline run's outcome, including the byte counts the
// caller folds into AssetStatistics.
type Result struct {
	Asset     anyasset.AnyAsset
	BytesRead int
}

func (p *Pipeline) Load(ctx LoadContext) (Result, error) {
	l, ok := p.registry.Lookup(ctx.Type)
	if !ok {
		return Result{}, asserr.New(asserr.NoLoader, "pipeline: no loader registered", ctx.Type.String())
	}

	uri := path.ParseUriLoose(ctx.ResolvedPath)
	stream, err := p.source.Open(uri, iostream.OpenReadBinary())
	if err != nil {
		return Result{}, asserr.New(asserr.IoFailed, "pipeline: open failed", err.Error())
	}
	defer stream.Close()

	reader := iostream.NewStreamReader(stream)
	data, err := reader.ReadAllBytes(p.maxReadBytes)
	if err != nil {
		return Result{}, asserr.New(asserr.IoFailed, "pipeline: read failed", err.Error())
	}

	asset, err := l.Load(data, ctx)
	if err != nil {
		return Result{}, asserr.New(asserr.DecodeFailed, "pipeline: decode failed", err.Error())
	}

	return Result{Asset: asset, BytesRead: len(data)}, nil
}
