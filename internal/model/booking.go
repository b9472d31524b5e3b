package model

import "time"

// BookingStatus enumerates the lifecycle states of a booking. A booking
// starts PENDING and moves to exactly one of the terminal states:
// CONFIRMED via an explicit confirmation, EXPIRED when its hold window
// lapses, or CANCELLED via an explicit release.
type BookingStatus string

const (
    StatusPending   BookingStatus = "PENDING"
    StatusConfirmed BookingStatus = "CONFIRMED"
    StatusExpired   BookingStatus = "EXPIRED"
    StatusCancelled BookingStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed out of
// the status. Only PENDING bookings can change state.
func (s BookingStatus) Terminal() bool {
    return s != StatusPending
}

// Holding reports whether seats owned by a booking in this status count
// as occupied. PENDING and CONFIRMED bookings block their seats; the
// seats of expired and cancelled bookings are released.
func (s BookingStatus) Holding() bool {
    return s == StatusPending || s == StatusConfirmed
}

// Booking records a group of seats reserved under a single public code.
//
// Fields:
//  ID        – primary key identifier.
//  Code      – human-readable booking code (e.g. "GIC0001"), unique.
//  LayoutID  – seating layout the booking belongs to.
//  Status    – current lifecycle state.
//  ExpiresAt – end of the hold window; set only while PENDING.
//  CreatedAt – creation timestamp.
type Booking struct {
    ID        uint64        // bookings.id
    Code      string        // bookings.code
    LayoutID  uint64        // bookings.layout_id
    Status    BookingStatus // bookings.status
    ExpiresAt *time.Time    // bookings.expires_at (nullable)
    CreatedAt time.Time     // bookings.created_at
}
