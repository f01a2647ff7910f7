package model

import "sync/atomic"

// Seat is a single sellable unit within an event.  The sold flag is the
// only mutable field in the whole catalog and it moves one way: false to
// true, exactly once, inside a reservation that holds the seat's lock.
// The flag is atomic so that catalog readers (seat listings) never race
// the reservation writer.
type Seat struct {
	ID     uint64 // unique within the owning event
	Number string // display label, e.g. "A7"

	sold atomic.Bool
}

// NewSeat returns an unsold seat with the given id and display label.
func NewSeat(id uint64, number string) *Seat {
	return &Seat{ID: id, Number: number}
}

// Sold reports whether the seat has been sold.
func (s *Seat) Sold() bool {
	return s.sold.Load()
}

// MarkSold flips the seat to sold.  Callers must hold the seat's lock;
// the transition is never reversed.
func (s *Seat) MarkSold() {
	s.sold.Store(true)
}
