package loaders

import (
	"bytes"

	"github.com/fzipp/bmfont"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
)

// BitmapFont wraps a parsed AngelCode BMFont descriptor: glyph metrics
// and kerning pairs, page-image filenames left for the caller to load
// as textures through the regular catalog/pipeline path.
type BitmapFont struct {
	Descriptor *bmfont.Font
}

var bitmapFontTypeId = assetid.NewTypeId()

func BitmapFontTypeId() assetid.TypeId { return bitmapFontTypeId }

// BitmapFontType is the asset type bitmap-font descriptors (.fnt) are
// catalogued under, supplementing spec.md's built-in loader set.
var BitmapFontType = assetid.NewAssetType("bitmapfont")

// BitmapFontLoader parses an AngelCode BMFont text or XML descriptor via
// github.com/fzipp/bmfont.
type BitmapFontLoader struct{}

func (BitmapFontLoader) GetType() assetid.AssetType { return BitmapFontType }

func (BitmapFontLoader) Load(data []byte, ctx loader.LoadContext) (anyasset.AnyAsset, error) {
	f, err := bmfont.Parse(bytes.NewReader(data))
	if err != nil {
		return anyasset.AnyAsset{}, asserr.New(asserr.DecodeFailed, "bitmapfont: parse failed", err.Error())
	}
	return anyasset.New(bitmapFontTypeId, BitmapFont{Descriptor: f}), nil
}
