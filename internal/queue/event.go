// Package queue defines the message payloads exchanged over the broker
// and the background consumer that records them.  Publishing is a
// best-effort side effect of a committed purchase; a missing or slow
// broker never fails a sale.
package queue

// OrderCreatedEvent is published when a purchase commits.  It carries
// enough for downstream consumers to log or notify without reading the
// engine's in-memory state.
type OrderCreatedEvent struct {
	OrderID   uint64   `json:"order_id"`
	EventID   uint64   `json:"event_id"`
	EventName string   `json:"event_name"`
	SeatIDs   []uint64 `json:"seat_ids"`
	CreatedAt string   `json:"created_at"` // RFC3339 UTC
}
