package session

import "sync"

// lockRegistry hands out one mutex per session ID so question generation for
// a session is strictly serialized: two requests racing for the same "next"
// index take the lock in turn, and the loser finds the question already
// stored. Entries are never removed; sessions are capped at a handful of
// questions and the registry stays small for the life of the process.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newLockRegistry() *lockRegistry {
	return &lockRegistry{locks: make(map[uint]*sync.Mutex)}
}

func (r *lockRegistry) get(sessionID uint) *sync.Mutex {
	r.mu.Lock()
	defer r.mu.Unlock()

	lock, exists := r.locks[sessionID]
	if !exists {
		lock = &sync.Mutex{}
		r.locks[sessionID] = lock
	}
	return lock
}
