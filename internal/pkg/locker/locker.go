package locker

import "sync"

// KeyedLocker serializes operations that share a key, e.g. all attendance
// mutations for one (employee, date) pair. Operations on different keys
// proceed independently.
type KeyedLocker struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

func New() *KeyedLocker {
	return &KeyedLocker{locks: make(map[string]*entry)}
}

// Lock acquires the lock for key. The returned func releases it.
func (l *KeyedLocker) Lock(key string) func() {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}
