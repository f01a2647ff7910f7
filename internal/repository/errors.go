// Package repository holds the in-memory stores the engine runs on: the
// read-only event catalog and the append-only order ledger.  This file
// defines the sentinel errors shared by those stores so that higher
// layers such as handlers can distinguish failure scenarios with
// errors.Is.  All state here is volatile; a restart reinitializes the
// catalog and empties the ledger.
package repository

import "errors"

// ErrEventNotFound is returned when an event id does not exist in the
// catalog.  Handlers should translate this into an HTTP 404 response.
var ErrEventNotFound = errors.New("event not found")

// ErrSeatNotFound is returned when a seat id does not resolve within its
// event.  Handlers should translate this into an HTTP 404 response.
var ErrSeatNotFound = errors.New("seat not found")

// ErrOrderNotFound is returned when an order lookup yields nothing.
var ErrOrderNotFound = errors.New("order not found")

// ErrSeatSold is returned when a purchase references a seat that is
// already sold.  The entire order is aborted with no partial effect;
// handlers should translate this into an HTTP 409 response.
var ErrSeatSold = errors.New("seat already sold")
