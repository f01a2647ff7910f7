package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/utils"
)

// TicketHandler renders QR tickets for completed orders.
type TicketHandler struct {
	Ledger *repository.Ledger
	Secret string
}

// QRCode handles GET /tickets/:id/qrcode.png.  It returns a PNG whose
// QR payload is the order signed as a JWT, so a scanner holding the
// shared secret can verify the ticket without calling back.  404 when
// the order id is unknown.
func (h *TicketHandler) QRCode(c echo.Context) error {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid order id"})
	}
	order, err := h.Ledger.Get(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load order"})
	}
	token, err := utils.SignOrder(h.Secret, order)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to sign ticket"})
	}
	png, err := qrcode.Encode(token, qrcode.Medium, 256)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to render qr code"})
	}
	return c.Blob(http.StatusOK, "image/png", png)
}
