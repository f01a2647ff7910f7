// Package router wires the HTTP surface onto an Echo instance: which
// handler serves which path and which middleware wraps which route.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/middleware"
)

// Handlers bundles everything Register needs.  All fields must be
// non-nil except Redis, which may be nil to run without rate limiting
// and response caching.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Orders  *handler.OrderHandler
	Tickets *handler.TicketHandler
	WS      *handler.WSHandler
	Redis   *redis.Client
}

// Register mounts every route.  Only order creation requires a bearer
// token; browsing, order listing, tickets and the seat feed are open,
// and the login endpoint is throttled per client IP.
func Register(e *echo.Echo, cfg config.Config, h Handlers) {
	e.GET("/healthz", handler.Health)

	api := e.Group("/api")
	api.POST("/login", h.Auth.Login, middleware.RateLimit(config.LoadRateLimitConfig(), h.Redis))
	api.GET("/events", h.Catalog.GetEvents, middleware.ResponseCache(config.LoadCacheConfig(), h.Redis))
	api.GET("/events/:id/seats", h.Catalog.GetSeats)
	api.POST("/orders", h.Orders.CreateOrder, middleware.JWTAuth(cfg.JWTSecret))
	api.GET("/orders", h.Orders.ListOrders)

	e.GET("/tickets/:id/qrcode.png", h.Tickets.QRCode)
	e.GET("/ws/events/:id", h.WS.Subscribe)

	// Optional static frontend, served from the filesystem when
	// configured.  Registered last so API routes take precedence.
	if cfg.FrontendDir != "" {
		e.Static("/", cfg.FrontendDir)
	}
}
