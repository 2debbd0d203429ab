package services

import "sync"

// requestLockRegistry hands out one mutex per quotation request so that
// quote submission, acceptance and cancellation against the same request are
// mutually exclusive. Locks are never removed: the per-request footprint is
// a single mutex, and reusing the same mutex for the lifetime of the process
// keeps the serialization point stable.
type requestLockRegistry struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

var requestLocks = &requestLockRegistry{locks: make(map[uint]*sync.Mutex)}

// lock acquires the mutex for the given request id, creating it on first
// use, and returns it so the caller can defer Unlock.
func (r *requestLockRegistry) lock(requestID uint) *sync.Mutex {
	r.mu.Lock()
	m, ok := r.locks[requestID]
	if !ok {
		m = &sync.Mutex{}
		r.locks[requestID] = m
	}
	r.mu.Unlock()

	m.Lock()
	return m
}
