package catalog

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

type identityResolver struct{}

func (identityResolver) Resolve(p string) (string, error) { return "assets/" + p, nil }

func TestParseCatalogArrayForm(t *testing.T) {
	doc := []byte(`{"version":1,"assets":[{"id":"hero","type":"texture","path":"hero.png"}]}`)
	entries, err := ParseCatalog(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Id != "hero" || entries[0].Type != "texture" || entries[0].Path != "hero.png" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestParseCatalogObjectForm(t *testing.T) {
	doc := []byte(`{"version":1,"assets":{"hero":{"type":"texture","path":"hero.png"}}}`)
	entries, err := ParseCatalog(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Id != "hero" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestParseCatalogUnsupportedVersion(t *testing.T) {
	doc := []byte(`{"version":2,"assets":[]}`)
	_, err := ParseCatalog(doc)
	if !asserr.Is(err, asserr.ParseFailed) {
		t.Fatalf("expected ParseFailed, got %v", err)
	}
}

func TestParseCatalogMissingField(t *testing.T) {
	doc := []byte(`{"version":1,"assets":[{"id":"hero","type":"texture"}]}`)
	_, err := ParseCatalog(doc)
	if !asserr.Is(err, asserr.InvalidCatalogEntry) {
		t.Fatalf("expected InvalidCatalogEntry, got %v", err)
	}
}

func TestBuildRejectsDuplicateIds(t *testing.T) {
	raw := []RawEntry{
		{Id: "hero", Type: "texture", Path: "hero.png"},
		{Id: "hero", Type: "texture", Path: "hero2.png"},
	}
	_, err := Build(raw, identityResolver{})
	if !asserr.Is(err, asserr.InvalidCatalogEntry) {
		t.Fatalf("expected InvalidCatalogEntry, got %v", err)
	}
}

func TestBuildAndLookup(t *testing.T) {
	raw := []RawEntry{{Id: "hero", Type: "texture", Path: "hero.png"}}
	c, err := Build(raw, identityResolver{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e, ok := c.Lookup(assetid.NewAssetId("hero"))
	if !ok {
		t.Fatalf("expected lookup to find entry")
	}
	if e.ResolvedPath != "assets/hero.png" {
		t.Fatalf("got %q", e.ResolvedPath)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", c.Len())
	}
}
