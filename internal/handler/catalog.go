package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/repository"
)

// CatalogHandler serves the read-only browse endpoints.  No
// authentication is required; seat listings reflect sold flags at read
// time and may be stale the moment they are produced.
type CatalogHandler struct {
	Catalog *repository.Catalog
}

// EventView is an event as exposed over HTTP.
type EventView struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// SeatView is a seat as exposed over HTTP, with the sold flag resolved
// at serialization time.
type SeatView struct {
	ID     uint64 `json:"id"`
	Number string `json:"number"`
	Sold   bool   `json:"sold"`
}

// GetEvents handles GET /api/events and returns all events ordered by id.
func (h *CatalogHandler) GetEvents(c echo.Context) error {
	events := h.Catalog.Events()
	out := make([]EventView, 0, len(events))
	for _, ev := range events {
		out = append(out, EventView{ID: ev.ID, Name: ev.Name})
	}
	return c.JSON(http.StatusOK, out)
}

// GetSeats handles GET /api/events/:id/seats.  It returns the event's
// seats in display order or 404 when the event id is unknown.
func (h *CatalogHandler) GetSeats(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || eventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	seats, err := h.Catalog.Seats(eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load seats"})
	}
	out := make([]SeatView, 0, len(seats))
	for _, s := range seats {
		out = append(out, SeatView{ID: s.ID, Number: s.Number, Sold: s.Sold()})
	}
	return c.JSON(http.StatusOK, out)
}
