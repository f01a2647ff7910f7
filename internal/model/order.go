package model

// Order records one successful multi-seat purchase.  Orders are created
// fully formed by the ledger and never change afterwards; there are no
// cancelled or refunded states.
//
// SeatIDs is sorted ascending and free of duplicates, all ids belonging
// to EventID.
type Order struct {
	ID      uint64   `json:"id"`       // dense, strictly increasing, assigned at append
	EventID uint64   `json:"event_id"` // owning event
	SeatIDs []uint64 `json:"seat_ids"` // sorted unique seat ids
}
