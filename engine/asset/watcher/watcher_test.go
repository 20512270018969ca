package watcher

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

type fakeProber struct {
	exists map[string]bool
	mtime  map[string]int64
}

func (p *fakeProber) Probe(resolvedPath string) (bool, int64, error) {
	return p.exists[resolvedPath], p.mtime[resolvedPath], nil
}

func TestWatchSnapshotsWithoutEmitting(t *testing.T) {
	p := &fakeProber{exists: map[string]bool{"a.png": true}, mtime: map[string]int64{"a.png": 1}}
	w := New(DefaultOptions(), p)
	w.Watch(assetid.NewAssetId("hero"), "a.png")

	batch := w.Poll(100)
	if len(batch.Changes) != 0 {
		t.Fatalf("expected no events immediately after Watch, got %v", batch.Changes)
	}
}

func TestPollEmitsAddedThenModified(t *testing.T) {
	p := &fakeProber{exists: map[string]bool{}, mtime: map[string]int64{}}
	opt := DefaultOptions()
	opt.DebounceMs = 0
	w := New(opt, p)

	w.Watch(assetid.NewAssetId("hero"), "a.png")

	p.exists["a.png"] = true
	p.mtime["a.png"] = 1
	batch := w.Poll(1000)
	if len(batch.Changes) != 1 || batch.Changes[0].Kind != Added {
		t.Fatalf("expected a single Added event, got %+v", batch.Changes)
	}

	p.mtime["a.png"] = 2
	batch = w.Poll(2000)
	if len(batch.Changes) != 1 || batch.Changes[0].Kind != Modified {
		t.Fatalf("expected a single Modified event, got %+v", batch.Changes)
	}
	if batch.Changes[0].Seq != 2 {
		t.Fatalf("expected seq to keep increasing, got %d", batch.Changes[0].Seq)
	}
}

func TestPollDebouncesModified(t *testing.T) {
	p := &fakeProber{exists: map[string]bool{"a.png": true}, mtime: map[string]int64{"a.png": 1}}
	opt := DefaultOptions()
	opt.DebounceMs = 1000
	w := New(opt, p)
	w.Watch(assetid.NewAssetId("hero"), "a.png")

	p.mtime["a.png"] = 2
	batch := w.Poll(0)
	if len(batch.Changes) != 0 {
		t.Fatalf("expected debounce to suppress the first rapid change")
	}

	p.mtime["a.png"] = 3
	batch = w.Poll(500_000_000)
	if len(batch.Changes) != 0 {
		t.Fatalf("expected debounce window to still be open at 500ms")
	}

	p.mtime["a.png"] = 4
	batch = w.Poll(1_500_000_000)
	if len(batch.Changes) != 1 || batch.Changes[0].Kind != Modified {
		t.Fatalf("expected debounce to release after the window, got %+v", batch.Changes)
	}
}

func TestPollReturnsChangesInWatchInsertionOrder(t *testing.T) {
	p := &fakeProber{exists: map[string]bool{}, mtime: map[string]int64{}}
	opt := DefaultOptions()
	opt.DebounceMs = 0
	w := New(opt, p)

	heroId := assetid.NewAssetId("hero")
	villainId := assetid.NewAssetId("villain")
	sidekickId := assetid.NewAssetId("sidekick")

	// Watched in this order; Poll's output must follow it regardless of
	// map iteration order, since all three go Added in the same batch.
	w.Watch(heroId, "hero.png")
	w.Watch(villainId, "villain.png")
	w.Watch(sidekickId, "sidekick.png")

	p.exists["hero.png"] = true
	p.exists["villain.png"] = true
	p.exists["sidekick.png"] = true

	batch := w.Poll(1000)
	if len(batch.Changes) != 3 {
		t.Fatalf("expected all 3 Added events in one batch, got %+v", batch.Changes)
	}
	if batch.Changes[0].Id != heroId || batch.Changes[1].Id != villainId || batch.Changes[2].Id != sidekickId {
		t.Fatalf("expected Added events in watch insertion order [hero, villain, sidekick], got %+v", batch.Changes)
	}
}

func TestPollRemovedDropsEntryUnlessKeepWatchingMissing(t *testing.T) {
	p := &fakeProber{exists: map[string]bool{"a.png": true}, mtime: map[string]int64{"a.png": 1}}
	w := New(DefaultOptions(), p)
	w.Watch(assetid.NewAssetId("hero"), "a.png")

	delete(p.exists, "a.png")
	batch := w.Poll(0)
	if len(batch.Changes) != 1 || batch.Changes[0].Kind != Removed {
		t.Fatalf("expected a single Removed event, got %+v", batch.Changes)
	}

	batch = w.Poll(1)
	if len(batch.Changes) != 0 {
		t.Fatalf("expected entry to be dropped after Removed, got %+v", batch.Changes)
	}
}
