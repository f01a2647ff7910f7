// Package service contains the reservation engine's orchestration: the
// purchase path that turns a validated request into an atomically
// committed order plus its best-effort side effects.
package service

import (
	"context"
	"log"
	"time"

	"github.com/iliyamo/event-ticketing/internal/hub"
	"github.com/iliyamo/event-ticketing/internal/lock"
	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// Reservation orchestrates purchases.  It is the only component that
// mutates seat state, and it does so exclusively while holding every
// requested seat's lock.
//
// Hub and Publish are optional; when nil the corresponding side effect
// is skipped.  AcquireTimeout bounds how long a purchase may wait for
// contended seat locks; zero means wait indefinitely, which is the
// reference behavior.
type Reservation struct {
	Catalog *repository.Catalog
	Ledger  *repository.Ledger
	Locks   *lock.SeatLock
	Hub     *hub.Hub

	// Publish sends an OrderCreatedEvent to the broker.  Wired to
	// queue.PublishOrderCreated in main; tests leave it nil or swap in
	// a recorder.
	Publish func(ctx context.Context, event queue.OrderCreatedEvent) error

	AcquireTimeout time.Duration
}

// NewReservation builds a Reservation with the broker publisher wired.
func NewReservation(catalog *repository.Catalog, ledger *repository.Ledger, locks *lock.SeatLock, h *hub.Hub, acquireTimeout time.Duration) *Reservation {
	return &Reservation{
		Catalog:        catalog,
		Ledger:         ledger,
		Locks:          locks,
		Hub:            h,
		Publish:        queue.PublishOrderCreated,
		AcquireTimeout: acquireTimeout,
	}
}

// Purchase attempts to atomically claim the given seats of an event and
// returns the resulting order.
//
// The steps, in order: validate the event exists; deduplicate and sort
// the seat ids ascending; acquire every seat lock in that order; while
// holding all locks run a pure validation pass (unknown seat ->
// repository.ErrSeatNotFound, already-sold seat ->
// repository.ErrSeatSold, in both cases nothing is mutated); only after
// every seat passes are all of them flipped to sold; append the order to
// the ledger; release the locks; broadcast the sold seat ids and publish
// the broker event.  The flip and the append are irrevocable once
// executed; the broadcast and publish are best effort and cannot fail
// the already-committed purchase.
//
// A lock wait that outlives AcquireTimeout (when set) or ctx fails with
// lock.ErrAcquireTimeout after releasing any partially taken locks.
func (r *Reservation) Purchase(ctx context.Context, eventID uint64, seatIDs []uint64) (*model.Order, error) {
	if !r.Catalog.HasEvent(eventID) {
		return nil, repository.ErrEventNotFound
	}
	ids := lock.SortedUnique(seatIDs)

	acquireCtx := ctx
	if r.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		acquireCtx, cancel = context.WithTimeout(ctx, r.AcquireTimeout)
		defer cancel()
	}
	guard, err := r.Locks.Acquire(acquireCtx, eventID, ids)
	if err != nil {
		return nil, err
	}
	defer guard.Release()

	// Pure validation pass: resolve every seat before touching any.
	seats := make([]*model.Seat, 0, len(ids))
	for _, id := range ids {
		seat, err := r.Catalog.FindSeat(eventID, id)
		if err != nil {
			return nil, err
		}
		if seat.Sold() {
			return nil, repository.ErrSeatSold
		}
		seats = append(seats, seat)
	}
	for _, seat := range seats {
		seat.MarkSold()
	}
	order := r.Ledger.Append(eventID, ids)

	// Committed.  Release before fan-out so subscribers reacting to the
	// notification never queue behind this purchase's locks.
	guard.Release()

	if r.Hub != nil {
		r.Hub.Broadcast(eventID, hub.SeatsUpdated{Type: "seats_updated", SeatIDs: ids})
	}
	if r.Publish != nil {
		name := ""
		if ev, err := r.Catalog.Event(eventID); err == nil {
			name = ev.Name
		}
		evt := queue.OrderCreatedEvent{
			OrderID:   order.ID,
			EventID:   eventID,
			EventName: name,
			SeatIDs:   ids,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := r.Publish(pubCtx, evt); err != nil {
				log.Printf("reservation: publish order %d: %v", order.ID, err)
			}
		}()
	}
	return order, nil
}
