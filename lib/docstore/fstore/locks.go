package fstore

import (
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
)

// pathLocks serializes operations per resolved file path. The store
// rewrites whole files on every mutation, so two concurrent operations
// on the same file would otherwise lose updates or observe a truncated
// file mid-write. Operations on different files never block each other.
type pathLocks struct {
	locks *xsync.MapOf[string, *sync.Mutex]
}

func newPathLocks() *pathLocks {
	return &pathLocks{locks: xsync.NewMapOf[string, *sync.Mutex]()}
}

// lock acquires the mutex for path and returns the matching unlock
// function. Mutexes are created on first use and kept for the lifetime
// of the store; the set of file paths is small and bounded by usage.
func (p *pathLocks) lock(path string) (unlock func()) {
	mu, _ := p.locks.LoadOrCompute(path, func() *sync.Mutex {
		return &sync.Mutex{}
	})
	mu.Lock()
	return mu.Unlock
}
