// Package hub implements the per-event registry of live subscribers and
// the broadcast fan-out fired after every committed purchase.  Delivery
// is best effort and fire-and-forget per subscriber: each subscriber has
// a bounded buffer, a full buffer drops the message for that subscriber
// only, and a dead subscriber never blocks the broadcaster or its
// siblings.  Subscribers come and go concurrently with broadcasts.
package hub

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
)

// DefaultBuffer is the per-subscriber queue depth used by NewHub.
const DefaultBuffer = 16

// SeatsUpdated is the message pushed to every subscriber of an event
// when a purchase on that event commits.
type SeatsUpdated struct {
	Type    string   `json:"type"` // always "seats_updated"
	SeatIDs []uint64 `json:"seat_ids"`
}

// Subscriber is one live connection's view of the hub.  Messages arrive
// on C as marshalled JSON; done is closed exactly once when the
// subscriber is removed, which is how a broadcast in progress learns to
// stop sending to it.
type Subscriber struct {
	ID      string // handle for logs
	EventID uint64

	ch   chan []byte
	done chan struct{}
}

// C returns the subscriber's receive channel.  The channel is never
// closed; consumers should select on C and Done together.
func (s *Subscriber) C() <-chan []byte { return s.ch }

// Done is closed when the subscriber has been removed from the hub.
func (s *Subscriber) Done() <-chan struct{} { return s.done }

// Hub is the process-wide subscriber registry.  Like the rest of the
// engine state it is volatile: a restart starts with zero subscribers.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]map[*Subscriber]struct{} // event id -> subscriber set
	buffer int
}

// NewHub returns a hub whose subscribers buffer up to DefaultBuffer
// pending messages each.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]map[*Subscriber]struct{}), buffer: DefaultBuffer}
}

// Subscribe registers a new subscriber for one event and returns its
// handle.  No credential is required and the event id is not checked
// against the catalog; anonymous observation of any id is permitted.
func (h *Hub) Subscribe(eventID uint64) *Subscriber {
	sub := &Subscriber{
		ID:      uuid.NewString(),
		EventID: eventID,
		ch:      make(chan []byte, h.buffer),
		done:    make(chan struct{}),
	}
	h.mu.Lock()
	set, ok := h.subs[eventID]
	if !ok {
		set = make(map[*Subscriber]struct{})
		h.subs[eventID] = set
	}
	set[sub] = struct{}{}
	h.mu.Unlock()
	return sub
}

// Unsubscribe removes the subscriber from the registry and closes its
// done channel.  Safe to call more than once and safe to call while a
// broadcast is iterating.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.subs[sub.EventID]
	if !ok {
		return
	}
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	close(sub.done)
}

// Count reports the number of live subscribers for an event.
func (h *Hub) Count(eventID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[eventID])
}

// Broadcast marshals payload once and hands it to every subscriber of
// the event currently registered.  The subscriber set is snapshotted
// under the read lock, then sends happen without any lock held so a
// slow consumer cannot stall registry changes.  A subscriber whose
// buffer is full has this message dropped; a subscriber removed
// mid-iteration is skipped via its done channel.  Failures are logged
// and never surfaced to the caller: by the time a broadcast runs the
// purchase has already committed.
func (h *Hub) Broadcast(eventID uint64, payload any) {
	msg, err := json.Marshal(payload)
	if err != nil {
		log.Printf("hub: marshal broadcast for event %d: %v", eventID, err)
		return
	}

	h.mu.RLock()
	set := h.subs[eventID]
	snapshot := make([]*Subscriber, 0, len(set))
	for sub := range set {
		snapshot = append(snapshot, sub)
	}
	h.mu.RUnlock()

	for _, sub := range snapshot {
		select {
		case <-sub.done:
			// removed since the snapshot, skip
		case sub.ch <- msg:
		default:
			log.Printf("hub: dropping message for slow subscriber %s (event %d)", sub.ID, eventID)
		}
	}
}
