package policy

import (
	"testing"

	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/storage"
)

func TestLifetimeIsExpired(t *testing.T) {
	l := NewLifetime()
	id := assetid.NewAssetId("hero")

	if !l.IsExpired(id, 100, 10) {
		t.Fatalf("expected unknown id to be expired")
	}

	l.Touch(id, 100)
	if l.IsExpired(id, 105, 10) {
		t.Fatalf("expected fresh touch to not be expired yet")
	}
	if !l.IsExpired(id, 110, 10) {
		t.Fatalf("expected id to expire once now-lastAccess >= keepAliveFrames")
	}
	if !l.IsExpired(id, 105, 0) {
		t.Fatalf("expected keepAliveFrames==0 to always expire")
	}
}

func TestLifetimeKeepAliveOverrideTakesPrecedence(t *testing.T) {
	l := NewLifetime()
	id := assetid.NewAssetId("hero")
	l.Touch(id, 100)

	// Without an override, the global window of 10 expires by frame 110.
	if !l.IsExpired(id, 110, 10) {
		t.Fatalf("expected id to be expired under the global keepAliveFrames before any override")
	}

	l.SetKeepAliveOverride(id, 50)
	if l.IsExpired(id, 110, 10) {
		t.Fatalf("expected the per-id override to extend the window past the global setting")
	}
	if !l.IsExpired(id, 151, 10) {
		t.Fatalf("expected the id to expire once now-lastAccess >= the override")
	}

	l.SetKeepAliveOverride(id, 0)
	if !l.IsExpired(id, 110, 10) {
		t.Fatalf("expected clearing the override (0) to fall back to the global keepAliveFrames")
	}
}

func TestLifetimeCanEvict(t *testing.T) {
	l := NewLifetime()
	id := assetid.NewAssetId("hero")
	l.Touch(id, 0)

	if l.CanEvict(id, 1, 100, 10) {
		t.Fatalf("expected refCount>0 to block eviction")
	}
	l.Pin(id)
	if l.CanEvict(id, 0, 100, 10) {
		t.Fatalf("expected pinned id to block eviction")
	}
	l.Unpin(id)
	if !l.CanEvict(id, 0, 100, 10) {
		t.Fatalf("expected unreferenced, unpinned, expired id to be evictable")
	}
}

func TestCachePolicyIsEvictable(t *testing.T) {
	lifetime := NewLifetime()
	id := assetid.NewAssetId("hero")
	lifetime.Touch(id, 0)

	s := storage.New()
	r := s.GetOrCreate(id, assetid.TypeTexture, "x")
	r.SetState(storage.Loading)

	p := New(Options{Mode: Budgeted, KeepAliveFrames: 10})
	if p.IsEvictable(r, lifetime, 100) {
		t.Fatalf("expected Loading record to never be evictable")
	}

	r.SetState(storage.Ready)
	if !p.IsEvictable(r, lifetime, 100) {
		t.Fatalf("expected expired, unreferenced Ready record to be evictable")
	}

	keepForever := New(Options{Mode: KeepForever})
	if keepForever.IsEvictable(r, lifetime, 100) {
		t.Fatalf("expected KeepForever to never evict")
	}

	r.SetState(storage.Failed)
	keepFailed := New(Options{Mode: Budgeted, KeepFailedRecords: true, KeepAliveFrames: 10})
	if keepFailed.IsEvictable(r, lifetime, 100) {
		t.Fatalf("expected KeepFailedRecords to protect Failed records")
	}
}

func TestCachePolicyShouldTrim(t *testing.T) {
	budgeted := New(Options{Mode: Budgeted, MaxAssets: 10})
	if budgeted.ShouldTrim(5, 0) {
		t.Fatalf("expected no trim under cap")
	}
	if !budgeted.ShouldTrim(11, 0) {
		t.Fatalf("expected trim over cap")
	}

	forever := New(Options{Mode: KeepForever, MaxAssets: 1})
	if forever.ShouldTrim(100, 0) {
		t.Fatalf("expected non-Budgeted modes to never trim")
	}
}

func TestStatisticsCacheHitRate(t *testing.T) {
	s := NewStatistics()
	id := assetid.NewAssetId("hero")
	if s.CacheHitRate() != 0 {
		t.Fatalf("expected 0 hit rate with no accesses")
	}
	s.OnCacheHit(id)
	s.OnCacheHit(id)
	s.OnCacheMiss()
	if got := s.CacheHitRate(); got != 2.0/3.0 {
		t.Fatalf("got %v", got)
	}
}

func TestStatisticsRollingAverageFillsAfterWindow(t *testing.T) {
	s := NewStatistics()
	id := assetid.NewAssetId("hero")
	for i := 0; i < throughputSampleCount-1; i++ {
		s.OnLoadSuccess(id, 100, 100, uint64(i))
	}
	if s.AverageBytesReadPerLoad() != 0 {
		t.Fatalf("expected average to stay 0 before the window fills")
	}
	s.OnLoadSuccess(id, 100, 100, throughputSampleCount-1)
	if s.AverageBytesReadPerLoad() != 100 {
		t.Fatalf("got %v", s.AverageBytesReadPerLoad())
	}
}

func TestStatisticsPerAssetTracksHitsAndLastLoad(t *testing.T) {
	s := NewStatistics()
	id := assetid.NewAssetId("hero")
	other := assetid.NewAssetId("villain")

	if _, ok := s.PerAsset(id); ok {
		t.Fatalf("expected no per-asset entry before any activity")
	}

	s.OnCacheHit(id)
	s.OnCacheHit(id)
	s.OnLoadSuccess(id, 42, 64, 7)

	got, ok := s.PerAsset(id)
	if !ok {
		t.Fatalf("expected a per-asset entry for id")
	}
	if got.Hits != 2 {
		t.Fatalf("expected 2 hits, got %d", got.Hits)
	}
	if got.LastBytesRead != 42 || got.LastBytesDecoded != 64 {
		t.Fatalf("unexpected byte counts: %+v", got)
	}
	if got.LastLoadFrame != 7 || !got.LastSuccess {
		t.Fatalf("expected last load frame 7 and success true, got %+v", got)
	}

	s.OnLoadFailure(id, 9)
	got, _ = s.PerAsset(id)
	if got.LastLoadFrame != 9 || got.LastSuccess {
		t.Fatalf("expected last load frame 9 and success false after failure, got %+v", got)
	}

	if _, ok := s.PerAsset(other); ok {
		t.Fatalf("expected a different id to have no per-asset entry")
	}
}
