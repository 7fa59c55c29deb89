package storage

import "sync"

// KeyedMutex serializes read-modify-write sequences against one named
// slot. The store itself only guarantees atomicity of a single save;
// without the per-key lock, "load current sequence, mutate, save" is a
// lost-update race between concurrent requests for the same session.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Lock acquires the mutex for key, creating it on first use.
// It returns the matching unlock function.
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()

	l.Lock()
	return l.Unlock
}
