package catalog

import (
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

// Entry is one validated, hashed catalog row: the id and type as hashed
// AssetId/AssetType values, the path as authored, and the resolved path
// produced by a resolver.
type Entry struct {
	Id           assetid.AssetId
	Type         assetid.AssetType
	SourcePath   string
	ResolvedPath string
}

// Resolver is the subset of AssetPathResolver's surface AssetCatalog
// depends on, kept narrow so the catalog package does not need to import
// the resolver package's options type.
type Resolver interface {
	Resolve(catalogPath string) (string, error)
}

// AssetCatalog is a validated, hashed id → Entry lookup table built from
// a resolver and a slice of RawEntry rows. Duplicate ids are rejected.
type AssetCatalog struct {
	entries map[uint64]Entry
}

// Build resolves, hashes, and inserts every raw entry. A duplicate id
// (by hash) aborts with InvalidCatalogEntry.
func Build(raw []RawEntry, resolve Resolver) (*AssetCatalog, error) {
	c := &AssetCatalog{entries: make(map[uint64]Entry, len(raw))}
	for _, r := range raw {
		resolvedPath, err := resolve.Resolve(r.Path)
		if err != nil {
			return nil, err
		}
		id := assetid.NewAssetId(r.Id)
		typ := assetid.NewAssetType(r.Type)

		if _, exists := c.entries[id.Hash()]; exists {
			return nil, asserr.New(asserr.InvalidCatalogEntry, "catalog: duplicate asset id", r.Id)
		}

		c.entries[id.Hash()] = Entry{
			Id:           id,
			Type:         typ,
			SourcePath:   r.Path,
			ResolvedPath: resolvedPath,
		}
	}
	return c, nil
}

// Lookup returns the entry for id, if present.
func (c *AssetCatalog) Lookup(id assetid.AssetId) (Entry, bool) {
	e, ok := c.entries[id.Hash()]
	return e, ok
}

// Len reports how many entries the catalog holds.
func (c *AssetCatalog) Len() int { return len(c.entries) }

// All returns every entry, in unspecified order.
func (c *AssetCatalog) All() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	return out
}
