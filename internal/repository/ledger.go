package repository

import (
	"sync"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// Ledger is the append-only store of completed orders.  Ids are dense and
// strictly increasing, minted under the same mutex as the append so no
// two callers can ever observe the same id.  The mutex is the ledger's
// own: callers of Append already hold the relevant seat locks, which
// serialize orders touching the same seats, but orders for disjoint
// seats may append concurrently and must not serialize on anything
// coarser than this counter.
type Ledger struct {
	mu     sync.Mutex
	orders []*model.Order
	byID   map[uint64]*model.Order
	nextID uint64
}

// NewLedger returns an empty ledger whose first order will get id 1.
func NewLedger() *Ledger {
	return &Ledger{byID: make(map[uint64]*model.Order), nextID: 1}
}

// Append creates an order for the given event and seat ids, assigns the
// next id and stores it.  seatIDs must already be sorted, deduplicated
// and validated by the caller; the slice is not copied, so the caller
// must not mutate it afterwards.
func (l *Ledger) Append(eventID uint64, seatIDs []uint64) *model.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	o := &model.Order{ID: l.nextID, EventID: eventID, SeatIDs: seatIDs}
	l.nextID++
	l.orders = append(l.orders, o)
	l.byID[o.ID] = o
	return o
}

// Get returns the order with the given id or ErrOrderNotFound.
func (l *Ledger) Get(orderID uint64) (*model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	o, ok := l.byID[orderID]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

// List returns all orders in creation order.  The returned slice is a
// copy; the orders themselves are immutable.
func (l *Ledger) List() []*model.Order {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*model.Order, len(l.orders))
	copy(out, l.orders)
	return out
}
