package iofs

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/animavault/engine/ioerr"
)

// fsnotifyWatcher implements IFileWatcher over fsnotify, the native watch
// primitive NativeFileSystem exposes through CreateWatcher.
type fsnotifyWatcher struct {
	mu      sync.Mutex
	inner   *fsnotify.Watcher
	ids     watchIdAllocator
	byPath  map[string]WatchId
	byId    map[WatchId]string
	pending []WatchEvent
}

func newFsnotifyWatcher() (*fsnotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, ioerr.New(ioerr.InternalError, "create fsnotify watcher failed", err.Error())
	}
	return &fsnotifyWatcher{
		inner:  w,
		byPath: make(map[string]WatchId),
		byId:   make(map[WatchId]string),
	}, nil
}

func (w *fsnotifyWatcher) AddWatch(nativePath string) (WatchId, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id, ok := w.byPath[nativePath]; ok {
		return id, nil
	}
	if err := w.inner.Add(nativePath); err != nil {
		return 0, ioerr.New(ioerr.InternalError, "add watch failed", err.Error())
	}
	id := w.ids.acquire()
	w.byPath[nativePath] = id
	w.byId[id] = nativePath
	return id, nil
}

func (w *fsnotifyWatcher) RemoveWatch(id WatchId) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.byId[id]
	if !ok {
		return ioerr.New(ioerr.NotFound, "watch id not registered", "")
	}
	if err := w.inner.Remove(p); err != nil {
		return ioerr.New(ioerr.InternalError, "remove watch failed", err.Error())
	}
	delete(w.byId, id)
	delete(w.byPath, p)
	return w.ids.release(id)
}

// Poll drains every fsnotify event queued since the last call, translating
// each to a WatchEvent tagged with its registered WatchId. Events for paths
// no longer registered are dropped, since RemoveWatch may race a pending
// OS notification.
func (w *fsnotifyWatcher) Poll() ([]WatchEvent, error) {
	w.drainNonBlocking()

	w.mu.Lock()
	defer w.mu.Unlock()

	out := w.pending
	w.pending = nil
	return out, nil
}

func (w *fsnotifyWatcher) drainNonBlocking() {
	for {
		select {
		case ev, ok := <-w.inner.Events:
			if !ok {
				return
			}
			w.mu.Lock()
			id, known := w.byPath[ev.Name]
			if known {
				w.pending = append(w.pending, WatchEvent{WatchId: id, Path: ev.Name, Kind: translateOp(ev.Op)})
			}
			w.mu.Unlock()
		case _, ok := <-w.inner.Errors:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func translateOp(op fsnotify.Op) WatchEventKind {
	switch {
	case op&fsnotify.Create != 0:
		return WatchAdded
	case op&fsnotify.Remove != 0, op&fsnotify.Rename != 0:
		return WatchRemoved
	default:
		return WatchModified
	}
}

func (w *fsnotifyWatcher) Flush() error {
	w.drainNonBlocking()
	return nil
}

func (w *fsnotifyWatcher) Close() error {
	if err := w.inner.Close(); err != nil {
		return ioerr.New(ioerr.InternalError, "close fsnotify watcher failed", err.Error())
	}
	return nil
}
