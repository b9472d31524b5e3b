package main // Entry point package

import (
    "context" // Context for startup deadlines
    "log"     // Logging library
    "time"    // Timeout durations

    "github.com/joho/godotenv"    // Loads .env files into the environment
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/gicinemas/seat-booking/internal/booking"
    "github.com/gicinemas/seat-booking/internal/clock"
    "github.com/gicinemas/seat-booking/internal/config"
    "github.com/gicinemas/seat-booking/internal/database"
    "github.com/gicinemas/seat-booking/internal/handler"
    "github.com/gicinemas/seat-booking/internal/queue"
    "github.com/gicinemas/seat-booking/internal/repository"
    "github.com/gicinemas/seat-booking/internal/router"
    queuepublisher "github.com/gicinemas/seat-booking/internal/service"
)

func main() {
    // Load .env best-effort; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load() // Load environment config

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    if err := database.EnsureSchema(ctx, db); err != nil {
        log.Fatalf("schema: %v", err)
    }

    // Redis is optional: a nil client disables caching and rate limiting.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable, cache and rate limiting disabled")
    }

    store := repository.NewStore(db)
    svc := booking.NewService(store, clock.NewSystem(),
        booking.WithHoldTTL(cfg.HoldTTL),
        booking.WithPublisher(queuepublisher.New()),
    )

    // Consume booking.confirmed events in the background and append
    // them to the booking log. Reconnects on broker failure.
    go queue.StartBookingConsumer()

    e := echo.New()
    router.RegisterRoutes(e)
    router.RegisterSeating(e, handler.NewSeatingHandler(svc), config.LoadCacheConfig(), rdb)
    router.RegisterBookings(e, handler.NewBookingHandler(svc), config.LoadRateLimitConfig(), rdb)

    addr := ":" + cfg.Port                                // Address string with port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

    if err := e.Start(addr); err != nil { // Start HTTP server
        log.Fatal(err) // Log and exit if server fails
    }
}
