package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-ticketing/internal/hub"
)

// upgrader accepts any origin: the seat feed is anonymous by design and
// carries nothing a subscriber could not fetch from the seat listing.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler serves the live seat-update feed.
type WSHandler struct {
	Hub *hub.Hub
}

// Subscribe handles GET /ws/events/:id.  It upgrades the connection,
// registers the subscriber with the hub and pumps broadcasts to the
// client until either side goes away.  Unknown event ids are accepted;
// such subscribers simply never receive anything.  Client frames are
// read and discarded, serving only to detect disconnection.
func (h *WSHandler) Subscribe(c echo.Context) error {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the error response.
		return nil
	}
	defer conn.Close()

	sub := h.Hub.Subscribe(eventID)
	defer h.Hub.Unsubscribe(sub)

	// Writer: hub messages out to the socket.  Stops when the
	// subscriber is removed or the write fails.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case msg := <-sub.C():
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-sub.Done():
				return
			}
		}
	}()

	// Reader: drain until the client disconnects.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.Hub.Unsubscribe(sub)
	<-done
	return nil
}
