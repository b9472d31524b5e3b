package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4" // import the Echo web framework to handle routing
    "github.com/redis/go-redis/v9"

    "github.com/gicinemas/seat-booking/internal/config"
    "github.com/gicinemas/seat-booking/internal/handler"
    "github.com/gicinemas/seat-booking/internal/middleware"
)

// RegisterRoutes registers the health check endpoint on the provided
// Echo instance.  Load balancers and monitoring systems use it to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterSeating registers the seating layout endpoints.  The
// availability read is the only cached route: it is a pure lookup, so
// serving a slightly stale free-seat count is acceptable.  Booking
// reads are side-effecting (lazy expiry) and must never be cached.
func RegisterSeating(e *echo.Echo, h *handler.SeatingHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
    e.POST("/v1/seating", h.Create)
    e.GET("/v1/seating", h.Availability, middleware.NewRedisCache(cacheCfg, rdb))
}

// RegisterBookings registers the booking lifecycle endpoints.  The
// token-bucket rate limiter guards all of them; no authentication is
// applied because bookings are addressed by their unguessable-enough
// public code alone.
func RegisterBookings(e *echo.Echo, h *handler.BookingHandler, rateCfg config.RateLimitConfig, rdb *redis.Client) {
    g := e.Group("/v1/bookings", middleware.NewTokenBucket(rateCfg, rdb))
    // Reserve seats: creates a PENDING hold and returns the booking code.
    g.POST("", h.Reserve)
    // Check a booking: own confirmed seats plus everyone else's held seats.
    g.GET("/:code", h.Check)
    // Re-plan held seats from a chosen anchor seat.
    g.POST("/:code/seats", h.ChangeSeats)
    // Finalize the hold.
    g.POST("/:code/confirm", h.Confirm)
    // Abandon a pending hold and free its seats.
    g.DELETE("/:code", h.Cancel)
}
