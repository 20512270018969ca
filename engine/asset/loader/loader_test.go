package loader

import (
	"bytes"
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
	"github.com/spaghettifunk/animavault/engine/iostream"
)

type echoLoader struct{ typ assetid.AssetType }

var echoTypeId = assetid.NewTypeId()

func (l echoLoader) GetType() assetid.AssetType { return l.typ }

func (l echoLoader) Load(data []byte, ctx LoadContext) (anyasset.AnyAsset, error) {
	return anyasset.New(echoTypeId, string(data)), nil
}

type fakeSource struct{ content map[string][]byte }

func (s fakeSource) Open(uri path.Uri, mode iostream.FileOpenMode) (iostream.IStream, error) {
	b, ok := s.content[uri.Path]
	if !ok {
		return nil, asserr.New(asserr.NotFound, "fake: no such path", uri.Path)
	}
	return iostream.NewMemoryStreamFromBytes(bytes.Clone(b), false), nil
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoLoader{typ: assetid.TypeText}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(echoLoader{typ: assetid.TypeText}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}

func TestPipelineLoadMissingLoaderIsNoLoader(t *testing.T) {
	r := NewRegistry()
	p := NewPipeline(r, fakeSource{content: map[string][]byte{}}, 0)
	_, err := p.Load(LoadContext{Type: assetid.TypeText, ResolvedPath: "x.txt"})
	if !asserr.Is(err, asserr.NoLoader) {
		t.Fatalf("expected NoLoader, got %v", err)
	}
}

func TestPipelineLoadEndToEnd(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(echoLoader{typ: assetid.TypeText}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	src := fakeSource{content: map[string][]byte{"assets/hello.txt": []byte("hi there")}}
	p := NewPipeline(r, src, 0)

	res, err := p.Load(LoadContext{Type: assetid.TypeText, ResolvedPath: "assets/hello.txt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, ok := anyasset.Get[string](res.Asset, echoTypeId)
	if !ok || got != "hi there" {
		t.Fatalf("got %q, ok=%v", got, ok)
	}
	if res.BytesRead != len("hi there") {
		t.Fatalf("got bytesRead=%d", res.BytesRead)
	}
}
