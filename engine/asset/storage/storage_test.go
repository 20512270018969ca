package storage

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

func TestGetOrCreateIsIdempotent(t *testing.T) {
	s := New()
	id := assetid.NewAssetId("hero")
	r1 := s.GetOrCreate(id, assetid.TypeTexture, "assets/hero.png")
	r2 := s.GetOrCreate(id, assetid.TypeTexture, "assets/other.png")
	if r1 != r2 {
		t.Fatalf("expected GetOrCreate to return the same record")
	}
	if r2.ResolvedPath != "assets/hero.png" {
		t.Fatalf("expected path fixed at first creation, got %q", r2.ResolvedPath)
	}
	if r1.State() != Unloaded {
		t.Fatalf("expected initial state Unloaded, got %v", r1.State())
	}
}

func TestAddRefReleaseRefClampsAtZero(t *testing.T) {
	s := New()
	id := assetid.NewAssetId("hero")
	r := s.GetOrCreate(id, assetid.TypeTexture, "x")
	if r.ReleaseRef() != 0 {
		t.Fatalf("expected ReleaseRef on zero refcount to stay at zero")
	}
	r.AddRef()
	r.AddRef()
	if got := r.ReleaseRef(); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

func TestSetResolvedPathIfEmpty(t *testing.T) {
	s := New()
	id := assetid.NewAssetId("hero")
	r := s.GetOrCreate(id, assetid.TypeTexture, "")
	if err := s.SetResolvedPathIfEmpty(id, "assets/hero.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ResolvedPath != "assets/hero.png" {
		t.Fatalf("got %q", r.ResolvedPath)
	}
	if err := s.SetResolvedPathIfEmpty(id, "assets/other.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ResolvedPath != "assets/hero.png" {
		t.Fatalf("expected backfill to be a no-op once set, got %q", r.ResolvedPath)
	}
}

func TestEraseIfRequiresZeroRefCountUnlessForced(t *testing.T) {
	s := New()
	id := assetid.NewAssetId("hero")
	r := s.GetOrCreate(id, assetid.TypeTexture, "x")
	r.AddRef()

	if s.EraseIf(id, false) {
		t.Fatalf("expected EraseIf to refuse while refCount > 0")
	}
	if !s.EraseIf(id, true) {
		t.Fatalf("expected forced EraseIf to succeed")
	}
	if s.Len() != 0 {
		t.Fatalf("expected record removed, len=%d", s.Len())
	}
}
