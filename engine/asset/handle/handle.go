// Package handle implements AssetHandle: the value token gameplay code
// holds instead of an owning reference to a decoded payload.
package handle

import "github.com/spaghettifunk/animavault/engine/asset/assetid"

// AssetHandle is a value token: an id, a generation stamp, and an
// optional type hint for debug-time consistency checks. generation==0
// denotes an invalid handle. A handle is stale when the backing
// record's current generation differs from the one it was issued with;
// stale handles resolve to nothing, never fault.
type AssetHandle struct {
	Id         assetid.AssetId
	Generation uint32
	TypeHint   assetid.TypeId
}

func Invalid() AssetHandle { return AssetHandle{} }

func (h AssetHandle) IsValid() bool { return h.Generation != 0 }

// Equal requires equal id and equal generation; a type hint never
// participates in equality, only in debug-time strengthening.
func (h AssetHandle) Equal(o AssetHandle) bool {
	return h.Generation == o.Generation && h.Id.Equal(o.Id)
}

// IsStale reports whether currentGeneration differs from the handle's
// own, meaning the backing record has since been reloaded or evicted
// and recreated.
func (h AssetHandle) IsStale(currentGeneration uint32) bool {
	return h.Generation != currentGeneration
}
