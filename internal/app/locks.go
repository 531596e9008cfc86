package app

import (
	"sync"

	"github.com/govind927/Chit-Chat-Real-Time-Chat-App/internal/domain"
)

// roomLocks serializes event handling per room code. Holding a room's
// lock across mutate+broadcast guarantees every client sees snapshots
// in the order the events were applied. Entries are refcounted so a
// dismissed or reaped room leaves nothing behind.
type roomLocks struct {
	mu    sync.Mutex
	locks map[domain.RoomCode]*roomLock
}

type roomLock struct {
	sync.Mutex
	refs int
}

func newRoomLocks() *roomLocks {
	return &roomLocks{locks: make(map[domain.RoomCode]*roomLock)}
}

// Acquire blocks until the room's lock is held and returns the release.
func (l *roomLocks) Acquire(code domain.RoomCode) func() {
	l.mu.Lock()
	e, ok := l.locks[code]
	if !ok {
		e = &roomLock{}
		l.locks[code] = e
	}
	e.refs++
	l.mu.Unlock()

	e.Lock()
	return func() {
		e.Unlock()
		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, code)
		}
		l.mu.Unlock()
	}
}
