package booking

import (
    "time"

    "github.com/gicinemas/seat-booking/internal/model"
)

// evaluateExpiry is the pure half of lazy expiry: it decides whether a
// booking's hold window has lapsed at the given instant. Callers that
// get true are responsible for the mutation (mark EXPIRED, release
// seats) through the store. Only PENDING bookings with an expiry
// timestamp can lapse.
func evaluateExpiry(b model.Booking, now time.Time) bool {
    if b.Status != model.StatusPending || b.ExpiresAt == nil {
        return false
    }
    return b.ExpiresAt.Before(now)
}
