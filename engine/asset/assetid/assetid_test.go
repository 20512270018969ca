package assetid

import "testing"

func TestAssetIdEquality(t *testing.T) {
	a := NewAssetId("player/hero.png")
	b := NewAssetId("player/hero.png")
	c := NewAssetId("player/villain.png")

	if !a.Equal(b) {
		t.Fatalf("expected equal ids for identical originals")
	}
	if a.Equal(c) {
		t.Fatalf("expected distinct ids for distinct originals")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("expected identical hashes for identical originals")
	}
}

func TestAssetIdInvalid(t *testing.T) {
	inv := InvalidAssetId()
	if inv.IsValid() {
		t.Fatalf("zero-value AssetId must be invalid")
	}
	if NewAssetId("x").Hash() == 0 {
		t.Fatalf("non-empty id should not hash to zero in practice")
	}
}

func TestAssetIdHashFallbackWhenOriginalMissing(t *testing.T) {
	a := AssetId{hash: 42}
	b := AssetId{hash: 42}
	c := AssetId{hash: 43}
	if !a.Equal(b) {
		t.Fatalf("expected hash-only equality to hold")
	}
	if a.Equal(c) {
		t.Fatalf("expected hash-only inequality to hold")
	}
}

func TestAssetTypeBuiltins(t *testing.T) {
	if !TypeTexture.IsValid() || TypeTexture.Original() != "texture" {
		t.Fatalf("unexpected texture type: %+v", TypeTexture)
	}
	if TypeTexture.Equal(TypeSound) {
		t.Fatalf("distinct built-in types must not be equal")
	}
}

func TestTypeIdDistinctness(t *testing.T) {
	a := NewTypeId()
	b := NewTypeId()
	if a.Equal(b) {
		t.Fatalf("distinct TypeId allocations must not be equal")
	}
	if !a.Equal(a) {
		t.Fatalf("a TypeId must equal itself")
	}
}
