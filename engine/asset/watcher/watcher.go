// Package watcher implements the poll-based hot-reload watcher: a set of
// watched ids snapshotted against the filesystem, and a Poll call that
// detects Added/Modified/Removed transitions with debounced Modified
// events.
package watcher

import (
	"time"

	"github.com/google/uuid"

	"github.com/spaghettifunk/animavault/engine/asset/assetid"
)

// ChangeKind enumerates the asset-level change an AssetChange reports.
type ChangeKind int

const (
	Added ChangeKind = iota
	Modified
	Removed
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// AssetChange is one emitted event: a strictly increasing sequence
// number, the detection timestamp, the watched id, its resolved path,
// and the kind of change observed.
type AssetChange struct {
	Seq          uint64
	DetectedNs   int64
	Id           assetid.AssetId
	ResolvedPath string
	Kind         ChangeKind
}

// Batch groups every AssetChange one Poll call produced under a single
// correlation id, for log correlation across a burst of changes.
type Batch struct {
	CorrelationId uuid.UUID
	Changes       []AssetChange
}

// WatchedInfo is the per-id snapshot Poll compares the filesystem
// against.
type WatchedInfo struct {
	Id              assetid.AssetId
	ResolvedPath    string
	Existed         bool
	LastWriteTimeNs int64
	LastEventNs     int64
}

// Options configures one AssetWatcher.
type Options struct {
	DebounceMs          int64
	EmitAdded           bool
	EmitModified        bool
	EmitRemoved         bool
	KeepWatchingMissing bool
}

func DefaultOptions() Options {
	return Options{DebounceMs: 250, EmitAdded: true, EmitModified: true, EmitRemoved: true}
}

// Prober abstracts the filesystem probe Poll needs: existence and
// modification time, in nanoseconds, for a resolved path.
type Prober interface {
	Probe(resolvedPath string) (exists bool, writeTimeNs int64, err error)
}

// AssetWatcher polls a set of watched ids for Added/Modified/Removed
// transitions, debouncing Modified events per entry.
type AssetWatcher struct {
	opt     Options
	prober  Prober
	watched map[uint64]*WatchedInfo
	order   []uint64 // insertion order of watched, since map range order is randomized
	seq     uint64
}

func New(opt Options, prober Prober) *AssetWatcher {
	return &AssetWatcher{opt: opt, prober: prober, watched: make(map[uint64]*WatchedInfo)}
}

// Watch registers id at resolvedPath, snapshotting its current
// existence and mtime without emitting an event.
func (w *AssetWatcher) Watch(id assetid.AssetId, resolvedPath string) {
	hash := id.Hash()
	exists, writeTimeNs, err := w.prober.Probe(resolvedPath)
	if err != nil {
		exists, writeTimeNs = false, 0
	}
	if _, ok := w.watched[hash]; !ok {
		w.order = append(w.order, hash)
	}
	w.watched[hash] = &WatchedInfo{
		Id:              id,
		ResolvedPath:    resolvedPath,
		Existed:         exists,
		LastWriteTimeNs: writeTimeNs,
	}
}

// Unwatch removes id from the watched set.
func (w *AssetWatcher) Unwatch(id assetid.AssetId) {
	hash := id.Hash()
	if _, ok := w.watched[hash]; !ok {
		return
	}
	delete(w.watched, hash)
	w.removeFromOrder(hash)
}

func (w *AssetWatcher) removeFromOrder(hash uint64) {
	for i, h := range w.order {
		if h == hash {
			w.order = append(w.order[:i], w.order[i+1:]...)
			return
		}
	}
}

// Poll probes every watched entry and returns the changes detected, in
// insertion order, tagged with a fresh correlation id for this batch.
// It walks a snapshot of the insertion-order slice rather than ranging
// over the watched map directly, since map range order is randomized
// per call and would otherwise make Poll's output order nondeterministic.
func (w *AssetWatcher) Poll(nowNs int64) Batch {
	var changes []AssetChange
	debounceNs := w.opt.DebounceMs * int64(time.Millisecond)

	order := append([]uint64(nil), w.order...)
	for _, hash := range order {
		info, ok := w.watched[hash]
		if !ok {
			continue
		}
		exists, writeTimeNs, err := w.prober.Probe(info.ResolvedPath)
		if err != nil {
			continue
		}

		switch {
		case info.Existed && !exists:
			if w.opt.EmitRemoved {
				changes = append(changes, w.emit(info, Removed, nowNs))
			}
			info.Existed = false
			if !w.opt.KeepWatchingMissing {
				delete(w.watched, hash)
				w.removeFromOrder(hash)
			}

		case !info.Existed && exists:
			info.Existed = true
			info.LastWriteTimeNs = writeTimeNs
			if w.opt.EmitAdded {
				changes = append(changes, w.emit(info, Added, nowNs))
			}

		case info.Existed && exists && writeTimeNs != info.LastWriteTimeNs:
			if nowNs >= info.LastEventNs+debounceNs {
				if w.opt.EmitModified {
					changes = append(changes, w.emit(info, Modified, nowNs))
				}
				info.LastEventNs = nowNs
			}
			info.LastWriteTimeNs = writeTimeNs
		}
	}

	return Batch{CorrelationId: uuid.New(), Changes: changes}
}

func (w *AssetWatcher) emit(info *WatchedInfo, kind ChangeKind, nowNs int64) AssetChange {
	w.seq++
	return AssetChange{
		Seq:          w.seq,
		DetectedNs:   nowNs,
		Id:           info.Id,
		ResolvedPath: info.ResolvedPath,
		Kind:         kind,
	}
}
