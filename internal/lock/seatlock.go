// Package lock provides the per-(event, seat) mutual exclusion the
// reservation engine is built on.  Each seat is guarded by a
// channel-backed mutex so that a purchase waiting for a contended seat
// suspends its goroutine instead of spinning, and so that acquisition
// can be abandoned cleanly when a context deadline fires.  Lock entries
// are created on first touch and live for the process lifetime; the key
// space is bounded by the total seat count fixed at catalog load, so
// entries are never reclaimed.
package lock

import (
	"context"
	"errors"
	"sort"
	"sync"
)

// ErrAcquireTimeout is returned when the context expires before every
// requested seat lock could be taken.  Any locks taken so far have been
// released; nothing was mutated.  Handlers should translate this into
// an HTTP 408 response.
var ErrAcquireTimeout = errors.New("seat lock acquisition timed out")

// Key identifies one seat lock.
type Key struct {
	EventID uint64
	SeatID  uint64
}

// SeatLock is the arena of per-seat mutexes.  A mutex here is a channel
// of capacity one: sending acquires, receiving releases.  Goroutines
// blocked on a full channel are queued by the runtime and woken in
// arrival order, which is what makes "exactly one wins" per seat well
// defined under load.
type SeatLock struct {
	mu    sync.Mutex
	locks map[Key]chan struct{}
}

// New returns an empty lock arena.
func New() *SeatLock {
	return &SeatLock{locks: make(map[Key]chan struct{})}
}

// slot returns the mutex channel for a key, creating it on first touch.
func (l *SeatLock) slot(k Key) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.locks[k]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[k] = ch
	}
	return ch
}

// Guard holds exclusive ownership of a set of seat locks.  Release is
// idempotent and must be called on every exit path, typically via defer.
type Guard struct {
	once sync.Once
	held []chan struct{}
}

// Release gives back every held lock.  All locks are released together;
// reverse order is not required for correctness but costs nothing.
func (g *Guard) Release() {
	g.once.Do(func() {
		for i := len(g.held) - 1; i >= 0; i-- {
			<-g.held[i]
		}
	})
}

// Acquire takes the locks for the given seats of one event and returns a
// Guard owning all of them.  Seat ids are deduplicated and sorted
// ascending before any lock is taken, and locks are taken strictly in
// that order, one at a time, waiting as needed.  Two purchases that
// share seats but list them in different input orders therefore contend
// on the shared prefix in the same order and cannot deadlock.
//
// If ctx is cancelled or its deadline passes while waiting, every lock
// taken so far is released and ErrAcquireTimeout is returned.
func (l *SeatLock) Acquire(ctx context.Context, eventID uint64, seatIDs []uint64) (*Guard, error) {
	ids := SortedUnique(seatIDs)
	g := &Guard{held: make([]chan struct{}, 0, len(ids))}
	for _, id := range ids {
		ch := l.slot(Key{EventID: eventID, SeatID: id})
		select {
		case ch <- struct{}{}:
			g.held = append(g.held, ch)
		case <-ctx.Done():
			g.Release()
			return nil, ErrAcquireTimeout
		}
	}
	return g, nil
}

// SortedUnique returns a copy of ids sorted ascending with duplicates
// removed.  The input is left untouched.
func SortedUnique(ids []uint64) []uint64 {
	out := make([]uint64, 0, len(ids))
	seen := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
