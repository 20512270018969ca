package policy

import "github.com/spaghettifunk/animavault/engine/asset/assetid"

// throughputSampleCount mirrors the engine's frame-time rolling window
// size, reused here for a rolling average of bytes read per successful
// pipeline load instead of milliseconds per frame.
const throughputSampleCount = 30

// PerAssetStats is the per-id slice of Statistics, keyed alongside
// Lifetime's Info map by AssetId.Hash() rather than folded into AssetRecord.
type PerAssetStats struct {
	Hits             uint64
	LastBytesRead    uint64
	LastBytesDecoded uint64
	LastLoadFrame    uint64
	LastSuccess      bool
}

// Statistics accumulates the event hooks AssetManager fires on every
// catalog lookup, cache access, and pipeline run: process-wide counters
// plus a rolling average of bytes read per successful load, and a
// per-id breakdown for tooling that needs to single out one asset.
type Statistics struct {
	CatalogLookups uint64
	CatalogMisses  uint64

	CacheHits   uint64
	CacheMisses uint64

	LoadRequests uint64
	LoadStarts   uint64
	LoadSuccess  uint64
	LoadFailures uint64

	Evictions uint64
	Reloads   uint64

	BytesRead    uint64
	BytesDecoded uint64

	samples      [throughputSampleCount]uint64
	sampleCount  int
	sampleCursor int
	avgBytesRead float64

	byId map[uint64]*PerAssetStats
}

func NewStatistics() *Statistics { return &Statistics{byId: make(map[uint64]*PerAssetStats)} }

func (s *Statistics) perAsset(id assetid.AssetId) *PerAssetStats {
	p, ok := s.byId[id.Hash()]
	if !ok {
		p = &PerAssetStats{}
		s.byId[id.Hash()] = p
	}
	return p
}

// PerAsset reports id's per-asset counters, or the zero value and false
// if id has never been touched.
func (s *Statistics) PerAsset(id assetid.AssetId) (PerAssetStats, bool) {
	p, ok := s.byId[id.Hash()]
	if !ok {
		return PerAssetStats{}, false
	}
	return *p, true
}

func (s *Statistics) OnCatalogLookup() { s.CatalogLookups++ }
func (s *Statistics) OnCatalogMiss()   { s.CatalogMisses++ }

func (s *Statistics) OnCacheHit(id assetid.AssetId) {
	s.CacheHits++
	s.perAsset(id).Hits++
}
func (s *Statistics) OnCacheMiss() { s.CacheMisses++ }

func (s *Statistics) OnLoadRequest() { s.LoadRequests++ }
func (s *Statistics) OnLoadStart()   { s.LoadStarts++ }

// OnLoadSuccess records a successful load's byte counts, folds
// bytesRead into the rolling throughput average, and updates id's
// per-asset counters.
func (s *Statistics) OnLoadSuccess(id assetid.AssetId, bytesRead, bytesDecoded, nowFrame uint64) {
	s.LoadSuccess++
	s.BytesRead += bytesRead
	s.BytesDecoded += bytesDecoded

	s.samples[s.sampleCursor] = bytesRead
	s.sampleCursor = (s.sampleCursor + 1) % throughputSampleCount
	if s.sampleCount < throughputSampleCount {
		s.sampleCount++
	}
	if s.sampleCount == throughputSampleCount {
		var total uint64
		for _, v := range s.samples {
			total += v
		}
		s.avgBytesRead = float64(total) / float64(throughputSampleCount)
	}

	p := s.perAsset(id)
	p.LastBytesRead = bytesRead
	p.LastBytesDecoded = bytesDecoded
	p.LastLoadFrame = nowFrame
	p.LastSuccess = true
}

// OnLoadFailure records a failed load against both the process-wide
// counter and id's per-asset LastLoadFrame/LastSuccess.
func (s *Statistics) OnLoadFailure(id assetid.AssetId, nowFrame uint64) {
	s.LoadFailures++
	p := s.perAsset(id)
	p.LastLoadFrame = nowFrame
	p.LastSuccess = false
}

func (s *Statistics) OnEvict()  { s.Evictions++ }
func (s *Statistics) OnReload() { s.Reloads++ }

// AverageBytesReadPerLoad reports the rolling average once a full
// window of samples has accumulated; zero before that.
func (s *Statistics) AverageBytesReadPerLoad() float64 { return s.avgBytesRead }

// CacheHitRate is hits / (hits + misses), or zero when no cache
// accesses have been recorded yet.
func (s *Statistics) CacheHitRate() float64 {
	total := s.CacheHits + s.CacheMisses
	if total == 0 {
		return 0
	}
	return float64(s.CacheHits) / float64(total)
}
