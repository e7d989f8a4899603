package concurrency

import (
	"sort"
	"sync"
)

// LockManager handles named locks. The propagation engine uses one lock
// per bettable during result cascades and one per user around statistics
// writes, so two cascades touching the same rows serialize in-process.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

// GetLock returns a mutex for the given key
func (lm *LockManager) GetLock(key string) *sync.Mutex {
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// LockOrdered acquires every named lock in sorted key order and returns a
// release func that unlocks in reverse. Sorting gives all callers the same
// acquisition order, which rules out deadlock between overlapping key sets.
// Duplicate keys are collapsed.
func (lm *LockManager) LockOrdered(keys ...string) func() {
	unique := make([]string, 0, len(keys))
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if !seen[k] {
			seen[k] = true
			unique = append(unique, k)
		}
	}
	sort.Strings(unique)

	locks := make([]*sync.Mutex, len(unique))
	for i, k := range unique {
		locks[i] = lm.GetLock(k)
		locks[i].Lock()
	}

	return func() {
		for i := len(locks) - 1; i >= 0; i-- {
			locks[i].Unlock()
		}
	}
}
