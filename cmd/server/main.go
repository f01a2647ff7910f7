package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/event-ticketing/internal/config"
	"github.com/iliyamo/event-ticketing/internal/handler"
	"github.com/iliyamo/event-ticketing/internal/hub"
	"github.com/iliyamo/event-ticketing/internal/lock"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
	"github.com/iliyamo/event-ticketing/internal/router"
	"github.com/iliyamo/event-ticketing/internal/service"
)

func main() {
	// Load .env for local runs; absent files are fine.
	_ = godotenv.Load()
	cfg := config.Load()

	// All engine state is in memory and volatile: a restart reseeds the
	// catalog unsold, empties the ledger and drops every subscriber.
	catalog := repository.DefaultCatalog()
	ledger := repository.NewLedger()
	locks := lock.New()
	notifier := hub.NewHub()
	reservations := service.NewReservation(catalog, ledger, locks, notifier, cfg.LockWaitTimeout)

	auth, err := handler.NewAuthHandler(cfg)
	if err != nil {
		log.Fatalf("hash demo credential: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; rate limiting and response cache disabled")
	}
	router.Register(e, cfg, router.Handlers{
		Auth:    auth,
		Catalog: &handler.CatalogHandler{Catalog: catalog},
		Orders:  &handler.OrderHandler{Service: reservations, Ledger: ledger},
		Tickets: &handler.TicketHandler{Ledger: ledger, Secret: cfg.JWTSecret},
		WS:      &handler.WSHandler{Hub: notifier},
		Redis:   rdb,
	})

	// Best-effort order log writer; reconnects forever in the background.
	go queue.StartOrderConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
