package repository

import (
	"fmt"
	"sort"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Catalog is the read-only registry of events and their seats, the ground
// truth for existence checks.  Both maps are populated once at
// construction and never mutated afterwards, so reads need no locking.
// The seats themselves carry the only mutable bit (the sold flag), which
// is flipped exclusively by the reservation service while it holds the
// seat's lock.
type Catalog struct {
	events map[uint64]*model.Event
	seats  map[uint64][]*model.Seat          // event id -> seats in display order
	byID   map[uint64]map[uint64]*model.Seat // event id -> seat id -> seat
}

// NewCatalog builds a catalog from the given events and their seat lists.
// The order of the seats slice is preserved for listings.
func NewCatalog(events []*model.Event, seats map[uint64][]*model.Seat) *Catalog {
	c := &Catalog{
		events: make(map[uint64]*model.Event, len(events)),
		seats:  make(map[uint64][]*model.Seat, len(seats)),
		byID:   make(map[uint64]map[uint64]*model.Seat, len(seats)),
	}
	for _, ev := range events {
		c.events[ev.ID] = ev
	}
	for evID, list := range seats {
		c.seats[evID] = list
		idx := make(map[uint64]*model.Seat, len(list))
		for _, s := range list {
			idx[s.ID] = s
		}
		c.byID[evID] = idx
	}
	return c
}

// DefaultCatalog returns the demo catalog the server boots with: two
// events with fixed seat maps.  State is volatile, so every restart
// starts from this unsold layout.
func DefaultCatalog() *Catalog {
	events := []*model.Event{
		{ID: 1, Name: "Rock Concert"},
		{ID: 2, Name: "Jazz Night"},
	}
	seats := map[uint64][]*model.Seat{
		1: seatRow("A", 20),
		2: seatRow("B", 15),
	}
	return NewCatalog(events, seats)
}

// seatRow builds n unsold seats labelled prefix1..prefixN with ids 1..n.
func seatRow(prefix string, n int) []*model.Seat {
	out := make([]*model.Seat, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, model.NewSeat(uint64(i), fmt.Sprintf("%s%d", prefix, i)))
	}
	return out
}

// Events returns all events ordered by id.
func (c *Catalog) Events() []*model.Event {
	out := make([]*model.Event, 0, len(c.events))
	for _, ev := range c.events {
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Event returns a single event by id or ErrEventNotFound.
func (c *Catalog) Event(eventID uint64) (*model.Event, error) {
	ev, ok := c.events[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return ev, nil
}

// HasEvent reports whether the event id exists.
func (c *Catalog) HasEvent(eventID uint64) bool {
	_, ok := c.events[eventID]
	return ok
}

// Seats returns the seats of an event in display order, or
// ErrEventNotFound when the event id is unknown.
func (c *Catalog) Seats(eventID uint64) ([]*model.Seat, error) {
	list, ok := c.seats[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	return list, nil
}

// FindSeat resolves a single seat within an event.  It returns
// ErrEventNotFound when the event is unknown and ErrSeatNotFound when
// the seat id does not exist in that event.
func (c *Catalog) FindSeat(eventID, seatID uint64) (*model.Seat, error) {
	idx, ok := c.byID[eventID]
	if !ok {
		return nil, ErrEventNotFound
	}
	s, ok := idx[seatID]
	if !ok {
		return nil, ErrSeatNotFound
	}
	return s, nil
}
