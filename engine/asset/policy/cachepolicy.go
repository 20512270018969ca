package policy

import "github.com/spaghettifunk/animavault/engine/asset/storage"

// Mode selects how aggressively AssetCachePolicy permits eviction.
type Mode int

const (
	KeepForever Mode = iota
	KeepWhileReferenced
	Budgeted
)

// Options configures one AssetCachePolicy.
type Options struct {
	Mode             Mode
	KeepAliveFrames  uint64
	KeepFailedRecords bool
	MaxAssets        int
	MaxBytesRead     uint64
}

// CachePolicy decides whether a record may be evicted and whether the
// manager should run a trim pass at all.
type CachePolicy struct {
	opt Options
}

func New(opt Options) *CachePolicy {
	return &CachePolicy{opt: opt}
}

func (p *CachePolicy) Options() Options { return p.opt }

// IsEvictable implements the mode/state decision table: Loading records
// and KeepForever policies are never evictable; Failed records are
// retained from ordinary trims when KeepFailedRecords is set; everything
// else defers to the lifetime's refcount/pin/expiry check.
func (p *CachePolicy) IsEvictable(r *storage.Record, lifetime *Lifetime, nowFrame uint64) bool {
	if r.State() == storage.Loading {
		return false
	}
	if p.opt.Mode == KeepForever {
		return false
	}
	if r.State() == storage.Failed && p.opt.KeepFailedRecords {
		return false
	}
	return lifetime.CanEvict(r.Id, r.RefCount(), nowFrame, p.opt.KeepAliveFrames)
}

// ShouldTrim is true only under Budgeted mode, and only when a
// configured cap is exceeded: count against MaxAssets, or the caller's
// residentBytes against MaxBytesRead.
// Which entries to evict is left to the caller's own selection policy.
func (p *CachePolicy) ShouldTrim(count int, residentBytes uint64) bool {
	if p.opt.Mode != Budgeted {
		return false
	}
	if p.opt.MaxAssets > 0 && count > p.opt.MaxAssets {
		return true
	}
	if p.opt.MaxBytesRead > 0 && residentBytes > p.opt.MaxBytesRead {
		return true
	}
	return false
}
