package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cinebook/seathub/internal/config"     // Internal config loader
	"github.com/cinebook/seathub/internal/database"   // MySQL connection to the booking store
	"github.com/cinebook/seathub/internal/handler"    // HTTP and WebSocket handlers
	"github.com/cinebook/seathub/internal/hub"        // Seat-hold coordinator
	"github.com/cinebook/seathub/internal/middleware" // Rate limiting
	"github.com/cinebook/seathub/internal/queue"      // Broker consumer for status events
	"github.com/cinebook/seathub/internal/repository" // Show seat reads
	"github.com/cinebook/seathub/internal/router"     // Route registration
	status_publisher "github.com/cinebook/seathub/internal/service"
	"github.com/cinebook/seathub/internal/worker" // Optional hold sweeper
	"github.com/cinebook/seathub/internal/ws"     // WebSocket hub
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set env directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Wire the coordinator: the ws hub delivers its pushes, the show_seats
	// table is its authoritative cross-check.
	connHub := ws.NewHub()
	seatStore := repository.NewShowSeatRepo(db)
	coord := hub.New(connHub, seatStore)

	// Authoritative status changes arrive over the broker; the consumer
	// applies them to the coordinator for as long as the process lives.
	go queue.StartStatusConsumer(coord)

	if cfg.HoldSweepEnabled {
		sweeper := worker.NewHoldSweeper(coord, connHub, cfg.HoldSweepInterval)
		sweeper.Start()
		defer sweeper.Stop()
		log.Printf("hold sweeper enabled (interval=%s)", cfg.HoldSweepInterval)
	}

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterRealtime(e, handler.NewRealtimeHandler(connHub, coord, cfg.JWTSecret))

	// Rate limiting degrades to a pass-through when Redis is unreachable.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting disabled")
	}
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	seatHandler := handler.NewSeatHandler(coord, seatStore, status_publisher.PublishSeatStatusChanged)
	router.RegisterSeats(e, seatHandler, cfg.JWTSecret, rateLimit)

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
