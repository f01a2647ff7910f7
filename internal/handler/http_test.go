package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/hub"
	"github.com/iliyamo/event-ticketing/internal/lock"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/service"
)

// newServer wires the full HTTP surface over a fresh in-memory engine,
// with no redis and no broker.
func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		AccessTTLMin: 5,
		BcryptCost:   4, // MinCost region, keeps tests fast
		DemoEmail:    "demo@example.com",
		DemoPassword: "demo",
	}
	catalog := repository.DefaultCatalog()
	ledger := repository.NewLedger()
	notifier := hub.NewHub()
	svc := &service.Reservation{
		Catalog: catalog,
		Ledger:  ledger,
		Locks:   lock.New(),
		Hub:     notifier,
	}
	auth, err := handler.NewAuthHandler(cfg)
	require.NoError(t, err)

	e := echo.New()
	router.Register(e, cfg, router.Handlers{
		Auth:    auth,
		Catalog: &handler.CatalogHandler{Catalog: catalog},
		Orders:  &handler.OrderHandler{Service: svc, Ledger: ledger},
		Tickets: &handler.TicketHandler{Ledger: ledger, Secret: cfg.JWTSecret},
		WS:      &handler.WSHandler{Hub: notifier},
	})
	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var rd *strings.Reader
	if body == "" {
		rd = strings.NewReader("")
	} else {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) string {
	t.Helper()
	rec := doJSON(e, http.MethodPost, "/api/login", `{"email":"demo@example.com","password":"demo"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, "bearer", out.TokenType)
	require.NotEmpty(t, out.AccessToken)
	return out.AccessToken
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newServer(t)
	rec := doJSON(e, http.MethodPost, "/api/login", `{"email":"demo@example.com","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetEvents(t *testing.T) {
	e := newServer(t)
	rec := doJSON(e, http.MethodGet, "/api/events", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var events []handler.EventView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 2)
	assert.Equal(t, "Rock Concert", events[0].Name)
}

func TestGetSeats(t *testing.T) {
	e := newServer(t)

	rec := doJSON(e, http.MethodGet, "/api/events/1/seats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var seats []handler.SeatView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
	require.Len(t, seats, 20)
	assert.Equal(t, "A1", seats[0].Number)
	assert.False(t, seats[0].Sold)

	rec = doJSON(e, http.MethodGet, "/api/events/99/seats", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateOrderRequiresToken(t *testing.T) {
	e := newServer(t)
	rec := doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[5]}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[5]}`, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPurchaseFlow(t *testing.T) {
	e := newServer(t)
	token := login(t, e)

	// First purchase wins.
	rec := doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[5,3]}`, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var out struct {
		OrderID uint64 `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, uint64(1), out.OrderID)

	// Same seat again conflicts.
	rec = doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[3]}`, token)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Unknown event and unknown seat are 404.
	rec = doJSON(e, http.MethodPost, "/api/orders", `{"event_id":9,"seat_ids":[1]}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[999]}`, token)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Empty seat set is a bad request.
	rec = doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[]}`, token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Sold flags visible in the listing.
	rec = doJSON(e, http.MethodGet, "/api/events/1/seats", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var seats []handler.SeatView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &seats))
	sold := map[uint64]bool{}
	for _, s := range seats {
		sold[s.ID] = s.Sold
	}
	assert.True(t, sold[3])
	assert.True(t, sold[5])
	assert.False(t, sold[4])

	// Order listing shows the one committed order, sorted seat ids.
	rec = doJSON(e, http.MethodGet, "/api/orders", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var orders []struct {
		ID      uint64   `json:"id"`
		EventID uint64   `json:"event_id"`
		SeatIDs []uint64 `json:"seat_ids"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	assert.Equal(t, []uint64{3, 5}, orders[0].SeatIDs)
}

func TestTicketQRCode(t *testing.T) {
	e := newServer(t)
	token := login(t, e)

	rec := doJSON(e, http.MethodPost, "/api/orders", `{"event_id":2,"seat_ids":[1]}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodGet, "/tickets/1/qrcode.png", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.NotEmpty(t, rec.Body.Bytes())

	rec = doJSON(e, http.MethodGet, "/tickets/99/qrcode.png", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWebSocketReceivesSeatUpdates(t *testing.T) {
	e := newServer(t)
	srv := httptest.NewServer(e)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events/1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Give the handler a moment to register the subscription after the
	// upgrade handshake returns.
	time.Sleep(50 * time.Millisecond)

	token := login(t, e)
	rec := doJSON(e, http.MethodPost, "/api/orders", `{"event_id":1,"seat_ids":[7,2]}`, token)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got struct {
		Type    string   `json:"type"`
		SeatIDs []uint64 `json:"seat_ids"`
	}
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, "seats_updated", got.Type)
	assert.Equal(t, []uint64{2, 7}, got.SeatIDs)
}
