package loaders

import (
	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
)

var binaryTypeId = assetid.NewTypeId()

func BinaryTypeId() assetid.TypeId { return binaryTypeId }

// BinaryLoader passes bytes through unchanged, for opaque blob assets
// with no structure this subsystem needs to know about.
type BinaryLoader struct{}

func (BinaryLoader) GetType() assetid.AssetType { return assetid.TypeBinary }

func (BinaryLoader) Load(data []byte, ctx loader.LoadContext) (anyasset.AnyAsset, error) {
	out := make([]byte, len(data))
	copy(out, data)
	return anyasset.New(binaryTypeId, out), nil
}
