package loaders

import (
	"golang.org/x/image/font/sfnt"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
)

// Font retains the opaque TTF/OTF bytes for a later rasterizer to
// consume; this loader's job ends at structural validation.
type Font struct {
	Bytes []byte
}

var fontTypeId = assetid.NewTypeId()

func FontTypeId() assetid.TypeId { return fontTypeId }

// FontLoader validates that bytes parse as a well-formed SFNT font
// (TTF/OTF) via golang.org/x/image/font/sfnt, then retains the raw bytes
// unrasterized.
type FontLoader struct{}

func (FontLoader) GetType() assetid.AssetType { return assetid.TypeFont }

func (FontLoader) Load(data []byte, ctx loader.LoadContext) (anyasset.AnyAsset, error) {
	if _, err := sfnt.Parse(data); err != nil {
		return anyasset.AnyAsset{}, asserr.New(asserr.DecodeFailed, "font: invalid sfnt data", err.Error())
	}
	return anyasset.New(fontTypeId, Font{Bytes: data}), nil
}
