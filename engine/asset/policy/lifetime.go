// Package policy implements AssetLifetime, AssetCachePolicy, and
// AssetStatistics: the trim/eviction decision layer and the observability
// counters AssetManager folds every pipeline run into.
package policy

import "github.com/spaghettifunk/animavault/engine/asset/assetid"

// Info is the per-id lifetime state kept outside AssetRecord so the
// record body itself stays address-stable and small.
type Info struct {
	LastAccessFrame         uint64
	LastLoadedFrame         uint64
	Pinned                  bool
	KeepAliveFramesOverride uint64
}

// Lifetime tracks per-id Info, keyed by AssetId hash.
type Lifetime struct {
	info map[uint64]*Info
}

func NewLifetime() *Lifetime {
	return &Lifetime{info: make(map[uint64]*Info)}
}

func (l *Lifetime) get(id assetid.AssetId) *Info {
	info, ok := l.info[id.Hash()]
	if !ok {
		info = &Info{}
		l.info[id.Hash()] = info
	}
	return info
}

// Touch sets lastAccessFrame.
func (l *Lifetime) Touch(id assetid.AssetId, nowFrame uint64) {
	l.get(id).LastAccessFrame = nowFrame
}

// OnLoaded sets both the access and loaded frames.
func (l *Lifetime) OnLoaded(id assetid.AssetId, nowFrame uint64) {
	info := l.get(id)
	info.LastAccessFrame = nowFrame
	info.LastLoadedFrame = nowFrame
}

// OnEvicted drops the id's lifetime entry entirely.
func (l *Lifetime) OnEvicted(id assetid.AssetId) {
	delete(l.info, id.Hash())
}

func (l *Lifetime) Pin(id assetid.AssetId)   { l.get(id).Pinned = true }
func (l *Lifetime) Unpin(id assetid.AssetId) { l.get(id).Pinned = false }

func (l *Lifetime) IsPinned(id assetid.AssetId) bool {
	info, ok := l.info[id.Hash()]
	return ok && info.Pinned
}

// LastAccessFrame reports id's most recent touch frame, or (0, false) if
// id has no lifetime info yet. Used to pick an LRU eviction victim.
func (l *Lifetime) LastAccessFrame(id assetid.AssetId) (uint64, bool) {
	info, ok := l.info[id.Hash()]
	if !ok {
		return 0, false
	}
	return info.LastAccessFrame, true
}

// SetKeepAliveOverride replaces the effective KeepAliveFrames for id
// alone; a zero value clears the override and falls back to the cache
// policy's global setting.
func (l *Lifetime) SetKeepAliveOverride(id assetid.AssetId, frames uint64) {
	l.get(id).KeepAliveFramesOverride = frames
}

// IsExpired is true when the effective keepAliveFrames (id's override, if
// any, else keepAliveFrames) is zero, when no info exists for id, or when
// the id has gone that many frames without access.
func (l *Lifetime) IsExpired(id assetid.AssetId, now uint64, keepAliveFrames uint64) bool {
	info, ok := l.info[id.Hash()]
	effective := keepAliveFrames
	if ok && info.KeepAliveFramesOverride != 0 {
		effective = info.KeepAliveFramesOverride
	}
	if effective == 0 {
		return true
	}
	if !ok {
		return true
	}
	return now-info.LastAccessFrame >= effective
}

// CanEvict reports refCount==0 && !pinned && IsExpired.
func (l *Lifetime) CanEvict(id assetid.AssetId, refCount uint32, now uint64, keepAliveFrames uint64) bool {
	if refCount != 0 {
		return false
	}
	if l.IsPinned(id) {
		return false
	}
	return l.IsExpired(id, now, keepAliveFrames)
}
