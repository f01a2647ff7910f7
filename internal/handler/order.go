package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/lock"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// OrderHandler exposes purchase and order listing.  CreateOrder sits
// behind the bearer-token middleware; listing is open.
type OrderHandler struct {
	Service *service.Reservation
	Ledger  *repository.Ledger
}

// CreateOrder handles POST /api/orders.  The body is JSON
// {event_id, seat_ids}.  The entire order succeeds or fails as a unit:
// 200 with {order_id} when every requested seat was claimed, 404 when
// the event or any seat is unknown, 409 when any seat is already sold,
// 408 when the seat locks could not be taken within the configured
// budget.  No partial effect ever leaks from a failed request.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var body struct {
		EventID uint64   `json:"event_id"`
		SeatIDs []uint64 `json:"seat_ids"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.EventID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "event_id is required"})
	}
	if len(body.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids is required"})
	}

	order, err := h.Service.Purchase(c.Request().Context(), body.EventID, body.SeatIDs)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		case errors.Is(err, repository.ErrSeatNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found"})
		case errors.Is(err, repository.ErrSeatSold):
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat already sold"})
		case errors.Is(err, lock.ErrAcquireTimeout):
			return c.JSON(http.StatusRequestTimeout, echo.Map{"error": "seat locks busy, try again"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "purchase failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"order_id": order.ID})
}

// ListOrders handles GET /api/orders and returns every created order in
// creation order.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Ledger.List())
}
