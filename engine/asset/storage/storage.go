// Package storage implements the address-stable id → AssetRecord table
// the loading pipeline and cache policy operate on.
package storage

import (
	"sync"

	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/containers"
)

// State is an AssetRecord's load state machine position.
type State int

const (
	Unloaded State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Record is one boxed, address-stable asset entry. Type and resolved
// path are fixed at creation; everything else mutates in place as the
// pipeline and cache policy act on it.
type Record struct {
	Id           assetid.AssetId
	Type         assetid.AssetType
	ResolvedPath string

	mu         sync.Mutex
	state      State
	payload    anyasset.AnyAsset
	loadErr    error
	refCount   uint32
	generation uint32
}

func (r *Record) Lock()   { r.mu.Lock() }
func (r *Record) Unlock() { r.mu.Unlock() }

func (r *Record) State() State             { return r.state }
func (r *Record) SetState(s State)         { r.state = s }
func (r *Record) Payload() anyasset.AnyAsset { return r.payload }
func (r *Record) SetPayload(a anyasset.AnyAsset) { r.payload = a }
func (r *Record) Error() error             { return r.loadErr }
func (r *Record) SetError(err error)       { r.loadErr = err }
func (r *Record) RefCount() uint32         { return r.refCount }
func (r *Record) Generation() uint32       { return r.generation }

// BumpGeneration advances the record's generation, the mechanism that
// makes previously issued AssetHandles stale after a hot reload.
func (r *Record) BumpGeneration() uint32 {
	r.generation++
	return r.generation
}

// AddRef increments the reference count.
func (r *Record) AddRef() uint32 {
	r.refCount++
	return r.refCount
}

// ReleaseRef decrements the reference count, clamped at zero.
func (r *Record) ReleaseRef() uint32 {
	old := r.refCount
	next := containers.Clamp(int64(old)-1, 0, int64(old))
	r.refCount = uint32(next)
	return r.refCount
}

// AssetStorage is a map from AssetId to a boxed, address-stable Record.
type AssetStorage struct {
	mu      sync.RWMutex
	records map[uint64]*Record
}

func New() *AssetStorage {
	return &AssetStorage{records: make(map[uint64]*Record)}
}

// GetOrCreate returns the existing record for id, or creates one in the
// Unloaded state on first call. Type and resolvedPath are fixed by
// whichever call creates the record; later calls do not overwrite them.
func (s *AssetStorage) GetOrCreate(id assetid.AssetId, typ assetid.AssetType, resolvedPath string) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r, ok := s.records[id.Hash()]; ok {
		return r
	}
	r := &Record{Id: id, Type: typ, ResolvedPath: resolvedPath, state: Unloaded}
	s.records[id.Hash()] = r
	return r
}

// Get returns the record for id without creating one.
func (s *AssetStorage) Get(id assetid.AssetId) (*Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id.Hash()]
	return r, ok
}

// SetResolvedPathIfEmpty backfills a record's resolved path when it was
// created before the matching catalog entry existed.
func (s *AssetStorage) SetResolvedPathIfEmpty(id assetid.AssetId, resolvedPath string) error {
	s.mu.RLock()
	r, ok := s.records[id.Hash()]
	s.mu.RUnlock()
	if !ok {
		return asserr.New(asserr.NotFound, "storage: no such record", id.String())
	}
	r.Lock()
	defer r.Unlock()
	if r.ResolvedPath == "" {
		r.ResolvedPath = resolvedPath
	}
	return nil
}

// EraseIf removes the record for id when its refCount is zero, or
// unconditionally when force is true. Reports whether a record was
// removed.
func (s *AssetStorage) EraseIf(id assetid.AssetId, force bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.records[id.Hash()]
	if !ok {
		return false
	}
	r.Lock()
	evictable := force || r.refCount == 0
	r.Unlock()
	if !evictable {
		return false
	}
	delete(s.records, id.Hash())
	return true
}

// Len reports how many records are currently stored.
func (s *AssetStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// All returns every record, in unspecified order, for policy sweeps.
func (s *AssetStorage) All() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, r)
	}
	return out
}
