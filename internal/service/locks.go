package service

import "sync"

// accountLocks serialises read-modify-write sequences per account number, so
// two concurrent transactions against the same account cannot lose an update.
// Accounts that were never touched cost nothing; locks are created on first use.
type accountLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLocks() *accountLocks {
	return &accountLocks{locks: make(map[string]*sync.Mutex)}
}

// acquire locks the mutex for key and returns its unlock function.
func (l *accountLocks) acquire(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
