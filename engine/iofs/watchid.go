package iofs

import "fmt"

// WatchId identifies one registered watch within an IFileWatcher.
type WatchId uint32

// watchIdAllocator hands out WatchId values from a recycled free list, the
// same first-free-slot scheme the engine's identifier pool used for
// generic owner handles, specialized here to watch registrations.
type watchIdAllocator struct {
	owners []bool
}

func (a *watchIdAllocator) acquire() WatchId {
	for i, taken := range a.owners {
		if !taken {
			a.owners[i] = true
			return WatchId(i)
		}
	}
	a.owners = append(a.owners, true)
	return WatchId(len(a.owners) - 1)
}

func (a *watchIdAllocator) release(id WatchId) error {
	if int(id) >= len(a.owners) {
		return fmt.Errorf("watchid: id %d out of range (max=%d)", id, len(a.owners))
	}
	a.owners[id] = false
	return nil
}
