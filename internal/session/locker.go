package session

import (
	"sync"

	"healthbot/internal/domain"
)

type userLock struct {
	mu   sync.Mutex
	refs int
}

// Locker hands out one mutex per user. Entries are dropped once nobody holds or waits on them.
type Locker struct {
	mu    sync.Mutex
	locks map[domain.UserID]*userLock
}

// NewLocker creates an empty locker
func NewLocker() *Locker {
	return &Locker{locks: make(map[domain.UserID]*userLock)}
}

// Lock blocks until the user's lock is held and returns the release function
func (l *Locker) Lock(userID domain.UserID) func() {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	ul.refs++
	l.mu.Unlock()

	ul.mu.Lock()

	return func() {
		ul.mu.Unlock()

		l.mu.Lock()
		ul.refs--
		if ul.refs == 0 {
			delete(l.locks, userID)
		}
		l.mu.Unlock()
	}
}

func (l *Locker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
