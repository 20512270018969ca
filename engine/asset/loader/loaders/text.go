package loaders

import (
	"unicode/utf8"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
)

var textTypeId = assetid.NewTypeId()

func TextTypeId() assetid.TypeId { return textTypeId }

// TextLoader decodes bytes as a UTF-8 string, rejecting invalid
// encodings outright rather than silently replacing bad runes.
type TextLoader struct{}

func (TextLoader) GetType() assetid.AssetType { return assetid.TypeText }

func (TextLoader) Load(data []byte, ctx loader.LoadContext) (anyasset.AnyAsset, error) {
	if !utf8.Valid(data) {
		return anyasset.AnyAsset{}, asserr.New(asserr.DecodeFailed, "text: invalid utf-8", ctx.ResolvedPath)
	}
	return anyasset.New(textTypeId, string(data)), nil
}
