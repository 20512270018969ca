// Package loaders implements the built-in IAssetLoader plugins:
// texture, font, text, binary, and the supplemental bitmap font loader.
package loaders

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
)

// Texture is the decoded output of TextureLoader: a tightly packed RGBA
// byte buffer, row-major, 4 bytes per pixel.
type Texture struct {
	Width, Height int
	Rgba          []byte
}

var textureTypeId = assetid.NewTypeId()

// TextureTypeId is the TypeId TextureLoader tags its AnyAsset output
// with; consumers compare against this before calling anyasset.Get.
func TextureTypeId() assetid.TypeId { return textureTypeId }

// TextureLoader decodes PNG/JPEG bytes into a Texture via the stdlib
// image package, the same decoders the engine's cgo stb_image loader
// duplicated in native code.
type TextureLoader struct{}

func (TextureLoader) GetType() assetid.AssetType { return assetid.TypeTexture }

func (TextureLoader) Load(data []byte, ctx loader.LoadContext) (anyasset.AnyAsset, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return anyasset.AnyAsset{}, asserr.New(asserr.DecodeFailed, "texture: decode failed", err.Error())
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := make([]byte, w*h*4)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			rgba[idx+0] = byte(r >> 8)
			rgba[idx+1] = byte(g >> 8)
			rgba[idx+2] = byte(b >> 8)
			rgba[idx+3] = byte(a >> 8)
			idx += 4
		}
	}

	return anyasset.New(textureTypeId, Texture{Width: w, Height: h, Rgba: rgba}), nil
}
