/*
This is a demo application exercising the asset subsystem end to end:
mount a native directory, load a catalog, acquire a few assets, and
watch the mounted tree for hot-reload changes.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/animavault/engine/asset/catalog"
	"github.com/spaghettifunk/animavault/engine/asset/handle"
	"github.com/spaghettifunk/animavault/engine/asset/loader"
	"github.com/spaghettifunk/animavault/engine/asset/loader/loaders"
	"github.com/spaghettifunk/animavault/engine/asset/manager"
	"github.com/spaghettifunk/animavault/engine/asset/policy"
	"github.com/spaghettifunk/animavault/engine/asset/resolver"
	"github.com/spaghettifunk/animavault/engine/asset/storage"
	"github.com/spaghettifunk/animavault/engine/asset/watcher"
	"github.com/spaghettifunk/animavault/engine/core"
	"github.com/spaghettifunk/animavault/engine/ioext/path"
	"github.com/spaghettifunk/animavault/engine/iofs"
	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/animavault/internal/assetlog"
)

func defaultConfig() manager.Config {
	return manager.Config{
		AssetsRoot: "assets",
		Mounts: []manager.MountConfig{
			{Name: "root", Priority: 0, RootUri: "/"},
		},
		CachePolicy:  policy.Options{Mode: policy.KeepWhileReferenced, KeepAliveFrames: 600},
		Watcher:      watcher.DefaultOptions(),
		MaxReadBytes: loader.DefaultMaxReadBytes,
	}
}

func loadConfig(configPath string) (manager.Config, error) {
	cfg := defaultConfig()
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// vfsProber adapts a Vfs to the watcher.Prober interface, for the demo's
// poll-based hot-reload loop.
type vfsProber struct {
	vfs *iofs.Vfs
}

func (p vfsProber) Probe(resolvedPath string) (bool, int64, error) {
	uri := path.ParseUriLoose(resolvedPath)
	fi, err := p.vfs.Stat(uri)
	if err != nil {
		return false, 0, nil
	}
	return true, fi.ModTime.UnixNano(), nil
}

// demo composes one run of the asset subsystem, mirroring the
// construct → initialize → run → shutdown lifecycle the engine's own
// entry point follows.
type demo struct {
	cfg     manager.Config
	logger  *assetlog.Logger
	vfs     *iofs.Vfs
	cat     *catalog.AssetCatalog
	mgr     *manager.Manager
	watcher *watcher.AssetWatcher
	handles map[uint64]handle.AssetHandle
	stopCh  chan struct{}
}

func newDemo(cfg manager.Config) (*demo, error) {
	logger := assetlog.New(assetlog.Options{Level: log.InfoLevel})

	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	vfs := iofs.NewVfs()
	mounts := cfg.Mounts
	if len(mounts) == 0 {
		mounts = []manager.MountConfig{{Name: "root", Priority: 0, RootUri: "/"}}
	}
	for _, mc := range mounts {
		rootUri := mc.RootUri
		if !filepath.IsAbs(rootUri) {
			rootUri = filepath.Join(wd, rootUri)
		}
		if err := vfs.Mount(iofs.MountPoint{
			Name:        mc.Name,
			Priority:    mc.Priority,
			ReadOnly:    mc.ReadOnly,
			PreferWrite: mc.PreferWrite,
			MountUri:    mc.MountUri,
			RootUri:     rootUri,
			Fs:          iofs.NewNativeFileSystem(),
		}); err != nil {
			return nil, err
		}
	}

	// The root mount is rooted at "/" by default, so resolved paths must
	// be absolute; mirrors the engine's own wd-relative assets root.
	assetsRoot := cfg.AssetsRoot
	if !filepath.IsAbs(assetsRoot) {
		assetsRoot = filepath.Join(wd, assetsRoot)
	}

	res := resolver.New(resolver.Options{
		AssetsRoot:            assetsRoot,
		AllowAbsolutePath:     cfg.AllowAbsolutePath,
		AllowEscapeAssetsRoot: cfg.AllowEscapeAssetsRoot,
	})

	catalogPath := path.JoinRootAndRelative(assetsRoot, "catalog.json")
	data, err := os.ReadFile(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("demo: reading catalog at %s: %w", catalogPath, err)
	}
	raw, err := catalog.ParseCatalog(data)
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Build(raw, res)
	if err != nil {
		return nil, err
	}

	registry := loader.NewRegistry()
	for _, l := range []loader.IAssetLoader{
		loaders.TextLoader{},
		loaders.BinaryLoader{},
		loaders.TextureLoader{},
		loaders.FontLoader{},
		loaders.BitmapFontLoader{},
	} {
		if err := registry.Register(l); err != nil {
			return nil, err
		}
	}
	pipeline := loader.NewPipeline(registry, vfs, cfg.MaxReadBytes)

	mgr := manager.New(
		cat,
		storage.New(),
		pipeline,
		policy.New(cfg.CachePolicy),
		policy.NewLifetime(),
		policy.NewStatistics(),
		core.NewFrameClock(),
		logger,
	)

	return &demo{
		cfg:     cfg,
		logger:  logger,
		vfs:     vfs,
		cat:     cat,
		mgr:     mgr,
		watcher: watcher.New(cfg.Watcher, vfsProber{vfs: vfs}),
		handles: make(map[uint64]handle.AssetHandle),
		stopCh:  make(chan struct{}),
	}, nil
}

// initialize acquires every catalog entry once and starts watching its
// resolved path for changes.
func (d *demo) initialize() error {
	for _, entry := range d.cat.All() {
		h, err := d.mgr.AcquireRef(entry.Id, manager.DefaultRequest())
		if err != nil {
			d.logger.With("id", entry.Id.String()).Error("initial acquire failed", "err", err)
			continue
		}
		d.handles[entry.Id.Hash()] = h
		d.watcher.Watch(entry.Id, entry.ResolvedPath)
		d.logger.With("id", entry.Id.String(), "type", entry.Type.String()).Info("asset acquired")
	}
	return nil
}

// run polls the watcher for hot-reload changes and periodically trims
// the cache until shutdown is requested, ticking once per frame.
func (d *demo) run() error {
	start := time.Now()

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-d.stopCh:
			return nil
		case <-ticker.C:
			frame := d.mgr.Tick()
			nowNs := time.Since(start).Nanoseconds()

			batch := d.watcher.Poll(nowNs)
			if len(batch.Changes) > 0 {
				d.logger.With("correlation_id", batch.CorrelationId.String(), "count", len(batch.Changes)).Info("hot reload batch")
				d.mgr.ApplyHotReload(batch.Changes, frame)
			}

			if frame%600 == 0 {
				d.mgr.Trim(frame)
			}
		}
	}
}

func (d *demo) shutdown() error {
	close(d.stopCh)
	for _, h := range d.handles {
		d.mgr.Release(h)
	}
	return nil
}

func main() {
	configPath := flag.String("config", "", "path to an animavault.toml config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	d, err := newDemo(cfg)
	if err != nil {
		panic(err)
	}

	if err := d.initialize(); err != nil {
		panic(err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		_ = d.shutdown()
	}()

	if err := d.run(); err != nil {
		panic(err)
	}
}
