package model

// Event is a sellable happening with a fixed set of seats.  Events are
// immutable after the catalog is constructed; there is no admin surface
// that creates or edits them at runtime.
type Event struct {
	ID   uint64 `json:"id"`   // catalog-wide identifier
	Name string `json:"name"` // display name, e.g. "Rock Concert"
}
