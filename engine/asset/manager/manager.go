// Package manager implements AssetManager, the gameplay-facing
// orchestrator that composes the catalog, resolver, storage, pipeline,
// cache policy, lifetime, statistics, and watcher into one API surface.
package manager

import (
	"github.com/spaghettifunk/animavault/engine/asset/anyasset"
	"github.com/spaghettifunk/animavault/engine/asset/asserr"
	"github.com/spaghettifunk/animavault/engine/asset/assetid"
	"github.com/spaghettifunk/animavault/engine/asset/catalog"
	"github.com/spaghettifunk/animavault/engine/asset/handle"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
	"github.com/spaghettifunk/animavault/engine/asset/policy"
	"github.com/spaghettifunk/animavault/engine/asset/storage"
	"github.com/spaghettifunk/animavault/engine/asset/watcher"
	"github.com/spaghettifunk/animavault/engine/containers"
	"github.com/spaghettifunk/animavault/engine/core"
	"github.com/spaghettifunk/animavault/internal/assetlog"
)

// RequestMode selects whether Acquire may reuse a Ready record.
type RequestMode int

const (
	Normal RequestMode = iota
	ForceReload
)

// FallbackPolicy governs what Acquire leaves behind on load failure.
type FallbackPolicy int

const (
	KeepOldIfAny FallbackPolicy = iota
	ClearOnFailure
)

// SyncMode selects synchronous vs (reserved) asynchronous execution.
type SyncMode int

const (
	Sync SyncMode = iota
	Async
)

// AssetRequest parameterizes one Acquire call. Priority is advisory
// only; the synchronous core does not schedule by it.
type AssetRequest struct {
	Mode     RequestMode
	Fallback FallbackPolicy
	SyncWith SyncMode
	Priority int

	// Pin holds the record against Trim eviction regardless of ref count
	// or TTL, mirroring AssetLifetime.Pin/Unpin.
	Pin bool

	// UseTypeHint, when set, requires the catalog entry's type to match
	// ExpectedType, surfacing a mismatch before the pipeline runs.
	UseTypeHint  bool
	ExpectedType assetid.AssetType

	// OverridePath, when non-empty, is loaded directly instead of the
	// catalog's resolved path. For tests, tools, and ad hoc debug loads.
	OverridePath string

	// Tag is an opaque caller label carried for logging/diagnostics.
	Tag string

	// KeepAliveFramesOverride, when non-zero, replaces the cache
	// policy's default KeepAliveFrames for this one record.
	KeepAliveFramesOverride uint64
}

func DefaultRequest() AssetRequest {
	return AssetRequest{Mode: Normal, Fallback: KeepOldIfAny, SyncWith: Sync}
}

// MountConfig is one TOML-decodable entry of Config.Mounts, translated
// into an iofs.MountPoint by the caller that owns the backend
// construction (manager itself stays filesystem-agnostic).
type MountConfig struct {
	Name        string `toml:"name"`
	Priority    int32  `toml:"priority"`
	ReadOnly    bool   `toml:"read_only"`
	PreferWrite bool   `toml:"prefer_write"`
	MountUri    string `toml:"mount_uri"`
	RootUri     string `toml:"root_uri"`
}

// Config is the on-disk configuration AssetManagerConfig decodes,
// mirroring the cache-policy and watcher knobs exposed to operators.
type Config struct {
	AssetsRoot            string          `toml:"assets_root"`
	AllowAbsolutePath     bool            `toml:"allow_absolute_path"`
	AllowEscapeAssetsRoot bool            `toml:"allow_escape_assets_root"`
	Mounts                []MountConfig   `toml:"mounts"`
	CachePolicy           policy.Options  `toml:"cache_policy"`
	Watcher               watcher.Options `toml:"watcher"`
	MaxReadBytes          int             `toml:"max_read_bytes"`
}

// Manager is the composed orchestrator. Construct via New, supplying
// the already-wired catalog, resolver-backed pipeline, and registry.
type Manager struct {
	catalog  *catalog.AssetCatalog
	storage  *storage.AssetStorage
	pipeline *loader.Pipeline
	cache    *policy.CachePolicy
	lifetime *policy.Lifetime
	stats    *policy.Statistics
	clock    *core.FrameClock
	logger   *assetlog.Logger

	pendingReload *containers.RingQueue[assetid.AssetId]
}

// New composes a Manager from its constructed dependencies, following
// the engine's constructor-injection convention rather than a package
// singleton.
func New(
	cat *catalog.AssetCatalog,
	store *storage.AssetStorage,
	pipeline *loader.Pipeline,
	cache *policy.CachePolicy,
	lifetime *policy.Lifetime,
	stats *policy.Statistics,
	clock *core.FrameClock,
	logger *assetlog.Logger,
) *Manager {
	return &Manager{
		catalog:       cat,
		storage:       store,
		pipeline:      pipeline,
		cache:         cache,
		lifetime:      lifetime,
		stats:         stats,
		clock:         clock,
		logger:        logger,
		pendingReload: containers.NewRingQueue[assetid.AssetId](256),
	}
}

// Acquire resolves id against the catalog, reuses a Ready record unless
// forced, and otherwise runs the pipeline synchronously (Async mode is
// reserved and rejected).
func (m *Manager) Acquire(id assetid.AssetId, req AssetRequest) (handle.AssetHandle, error) {
	m.stats.OnLoadRequest()

	if req.SyncWith == Async {
		return handle.Invalid(), asserr.New(asserr.NotSupported, "acquire: async mode is reserved", "")
	}

	m.stats.OnCatalogLookup()
	entry, ok := m.catalog.Lookup(id)
	if !ok {
		m.stats.OnCatalogMiss()
		return handle.Invalid(), asserr.New(asserr.InvalidCatalogEntry, "acquire: unknown asset id", id.String())
	}

	if req.UseTypeHint && !req.ExpectedType.Equal(entry.Type) {
		return handle.Invalid(), asserr.New(asserr.TypeMismatch, "acquire: catalog type does not match request's type hint", id.String())
	}

	resolvedPath := entry.ResolvedPath
	if req.OverridePath != "" {
		resolvedPath = req.OverridePath
	}

	record := m.storage.GetOrCreate(entry.Id, entry.Type, resolvedPath)

	record.Lock()
	alreadyReady := record.State() == storage.Ready && req.Mode != ForceReload
	record.Unlock()

	now := m.clock.Frame()
	m.lifetime.Touch(id, now)
	if req.Pin {
		m.lifetime.Pin(id)
	}
	if req.KeepAliveFramesOverride != 0 {
		m.lifetime.SetKeepAliveOverride(id, req.KeepAliveFramesOverride)
	}

	if alreadyReady {
		m.stats.OnCacheHit(id)
		return handle.AssetHandle{Id: id, Generation: record.Generation()}, nil
	}
	m.stats.OnCacheMiss()

	return m.load(record, req, now, resolvedPath)
}

func (m *Manager) load(record *storage.Record, req AssetRequest, now uint64, resolvedPath string) (handle.AssetHandle, error) {
	record.Lock()
	record.SetState(storage.Loading)
	record.Unlock()
	m.stats.OnLoadStart()

	result, err := m.pipeline.Load(loader.LoadContext{Type: record.Type, ResolvedPath: resolvedPath})

	record.Lock()
	defer record.Unlock()

	if err != nil {
		record.SetState(storage.Failed)
		record.SetError(err)
		if req.Fallback != KeepOldIfAny {
			record.SetPayload(anyasset.AnyAsset{})
		}
		m.stats.OnLoadFailure(record.Id, now)
		if m.logger != nil {
			m.logger.With("id", record.Id.String(), "path", resolvedPath, "tag", req.Tag).Error("asset load failed", "err", err)
		}
		return handle.Invalid(), err
	}

	record.SetState(storage.Ready)
	record.SetPayload(result.Asset)
	record.SetError(nil)
	gen := record.BumpGeneration()
	m.lifetime.OnLoaded(record.Id, now)
	m.stats.OnLoadSuccess(record.Id, uint64(result.BytesRead), uint64(result.BytesRead), now)

	return handle.AssetHandle{Id: record.Id, Generation: gen}, nil
}

// Get performs a typed read-back of h's payload, yielding nothing on a
// stale handle or a type mismatch.
func Get[T any](m *Manager, h handle.AssetHandle, want assetid.TypeId) (T, bool) {
	var zero T
	record, ok := m.storage.Get(h.Id)
	if !ok {
		return zero, false
	}
	record.Lock()
	defer record.Unlock()
	if h.IsStale(record.Generation()) {
		return zero, false
	}
	return anyasset.Get[T](record.Payload(), want)
}

// Touch refreshes h's lifetime info without touching its payload.
func (m *Manager) Touch(h handle.AssetHandle) {
	m.lifetime.Touch(h.Id, m.clock.Frame())
}

// Tick advances the manager's own frame counter by one and returns the
// new value. A caller drives this once per simulation frame so Acquire
// and Touch stamp lifetime info against a moving "now" rather than a
// clock frozen at construction time.
func (m *Manager) Tick() uint64 {
	return m.clock.Tick()
}

// Release decrements h's reference count. Never evicts synchronously;
// eviction is Trim's job.
func (m *Manager) Release(h handle.AssetHandle) {
	record, ok := m.storage.Get(h.Id)
	if !ok {
		return
	}
	record.Lock()
	record.ReleaseRef()
	record.Unlock()
}

// Trim sweeps storage, evicting every record the cache policy and
// lifetime agree is evictable. Under Budgeted mode, it then keeps
// evicting least-recently-used records that are merely unreferenced and
// unpinned, not necessarily keep-alive-expired, until
// CachePolicy.ShouldTrim reports the count/resident-byte caps are
// satisfied or no further candidate remains.
func (m *Manager) Trim(nowFrame uint64) {
	for _, record := range m.storage.All() {
		record.Lock()
		evictable := m.cache.IsEvictable(record, m.lifetime, nowFrame)
		record.Unlock()
		if !evictable {
			continue
		}
		m.evictRecord(record)
	}

	if m.cache.Options().Mode != policy.Budgeted {
		return
	}

	for {
		records := m.storage.All()
		if !m.cache.ShouldTrim(len(records), m.residentBytes(records)) {
			return
		}
		victim := m.lruBudgetVictim(records)
		if victim == nil {
			return
		}
		m.evictRecord(victim)
	}
}

func (m *Manager) evictRecord(record *storage.Record) {
	m.lifetime.OnEvicted(record.Id)
	m.stats.OnEvict()
	m.storage.EraseIf(record.Id, true)
}

// residentBytes sums the last successfully read byte count across every
// currently resident record, approximating AssetCachePolicy's
// residentBytes budget input from AssetStatistics' per-id counters.
func (m *Manager) residentBytes(records []*storage.Record) uint64 {
	var total uint64
	for _, r := range records {
		if p, ok := m.stats.PerAsset(r.Id); ok {
			total += p.LastBytesRead
		}
	}
	return total
}

// lruBudgetVictim picks the least-recently-accessed record that may be
// evicted to satisfy a Budgeted cap, ignoring the keep-alive TTL that
// IsEvictable otherwise requires. Only refcount and pin state still
// apply.
func (m *Manager) lruBudgetVictim(records []*storage.Record) *storage.Record {
	var victim *storage.Record
	var oldest uint64
	for _, r := range records {
		r.Lock()
		loading := r.State() == storage.Loading
		refCount := r.RefCount()
		r.Unlock()
		if loading || refCount != 0 || m.lifetime.IsPinned(r.Id) {
			continue
		}
		frame, _ := m.lifetime.LastAccessFrame(r.Id)
		if victim == nil || frame < oldest {
			victim = r
			oldest = frame
		}
	}
	return victim
}

// ApplyHotReload queues every changed, catalog-resolvable id on
// pendingReload and then drains it, re-acquiring each with
// Mode::ForceReload and Fallback::KeepOldIfAny. Routing through the
// bounded queue rather than iterating changes directly absorbs a burst
// of watcher events without allocating; once the queue is full, each
// further change in the burst is dropped and logged.
func (m *Manager) ApplyHotReload(changes []watcher.AssetChange, nowFrame uint64) {
	for _, ch := range changes {
		if _, ok := m.catalog.Lookup(ch.Id); !ok {
			continue
		}
		if err := m.pendingReload.Enqueue(ch.Id); err != nil {
			if m.logger != nil {
				m.logger.With("id", ch.Id.String()).Warn("hot reload queue full, dropping change")
			}
			continue
		}
	}

	for !m.pendingReload.IsEmpty() {
		id, err := m.pendingReload.Dequeue()
		if err != nil {
			break
		}
		m.stats.OnReload()
		if _, err := m.Acquire(id, AssetRequest{Mode: ForceReload, Fallback: KeepOldIfAny}); err != nil && m.logger != nil {
			m.logger.With("id", id.String()).Warn("hot reload failed", "err", err)
		}
	}
}

// AcquireRef acquires id and then bumps its reference count (two steps,
// not one atomic operation), the usual entry point for gameplay code that wants to hold a handle
// past the current frame.
func (m *Manager) AcquireRef(id assetid.AssetId, req AssetRequest) (handle.AssetHandle, error) {
	h, err := m.Acquire(id, req)
	if err != nil {
		return h, err
	}
	record, ok := m.storage.Get(id)
	if ok {
		record.Lock()
		record.AddRef()
		record.Unlock()
	}
	return h, nil
}
