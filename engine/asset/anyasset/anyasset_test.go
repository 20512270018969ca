package anyasset

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

type texture struct {
	Width, Height int
}

func TestGetMatchingType(t *testing.T) {
	typ := assetid.NewTypeId()
	a := New(typ, texture{Width: 4, Height: 4})

	got, ok := Get[texture](a, typ)
	if !ok {
		t.Fatalf("expected match")
	}
	if got.Width != 4 {
		t.Fatalf("got %+v", got)
	}
}

func TestGetTypeMismatchYieldsNothing(t *testing.T) {
	typA := assetid.NewTypeId()
	typB := assetid.NewTypeId()
	a := New(typA, texture{Width: 4})

	_, ok := Get[texture](a, typB)
	if ok {
		t.Fatalf("expected type mismatch to fail")
	}
}

func TestInvalidAnyAsset(t *testing.T) {
	var a AnyAsset
	if a.IsValid() {
		t.Fatalf("zero-value AnyAsset must be invalid")
	}
}
