package booking

import (
    "context"
    "errors"
    "time"

    "github.com/gicinemas/seat-booking/internal/model"
)

// Store errors surfaced by implementations. The service maps them onto
// the package's public error types.
var (
    // ErrStoreSeatTaken is returned by atomic seat inserts when the
    // unique (layout, row, seat) key is violated by a concurrent
    // booking.
    ErrStoreSeatTaken = errors.New("store: seat already taken")

    // ErrStoreNotFound is returned by lookups that match no row.
    ErrStoreNotFound = errors.New("store: not found")
)

// Store is the occupancy store the lifecycle engine runs against. The
// allocator only plans over an in-memory snapshot; every correctness
// guarantee against concurrent double-booking lives behind this
// interface, in the store's atomic insert-or-fail commit.
type Store interface {
    // FindOrCreateLayout returns the layout for the identifying
    // triple, creating it when absent. Concurrent first-time creation
    // must resolve to a single stored layout with losers re-reading
    // the winner.
    FindOrCreateLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error)

    // FindLayout returns an existing layout or ErrStoreNotFound. It
    // never creates.
    FindLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error)

    // LayoutByID returns the layout with the given id or
    // ErrStoreNotFound.
    LayoutByID(ctx context.Context, id uint64) (model.Layout, error)

    // BookingByCode returns the booking with the given public code or
    // ErrStoreNotFound.
    BookingByCode(ctx context.Context, code string) (model.Booking, error)

    // NextBookingCode returns a monotonically distinct human-readable
    // booking code. Distinctness must hold across processes.
    NextBookingCode(ctx context.Context) (string, error)

    // OccupiedSeats lists seats of the layout held by bookings in a
    // holding status (PENDING or CONFIRMED). A non-zero
    // excludeBookingID drops that booking's own seats from the result.
    OccupiedSeats(ctx context.Context, layoutID, excludeBookingID uint64) ([]model.Seat, error)

    // SeatsByLayout lists every seat record for the layout together
    // with its owning booking and that booking's status.
    SeatsByLayout(ctx context.Context, layoutID uint64) ([]model.OccupiedSeat, error)

    // SeatsByBooking lists the seats currently attached to a booking.
    SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error)

    // CreateBookingWithSeats atomically creates a PENDING booking and
    // attaches the planned seats. A uniqueness conflict on any seat
    // fails the whole operation with ErrStoreSeatTaken.
    CreateBookingWithSeats(ctx context.Context, code string, layoutID uint64, expiresAt time.Time, seats []model.Seat) (model.Booking, error)

    // ReplaceSeats atomically deletes the booking's seat records,
    // inserts the new set and rolls the hold window forward. A
    // uniqueness conflict fails with ErrStoreSeatTaken and leaves the
    // previous seats in place.
    ReplaceSeats(ctx context.Context, bookingID uint64, seats []model.Seat, expiresAt time.Time) error

    // ConfirmBooking sets the booking CONFIRMED and clears its expiry.
    ConfirmBooking(ctx context.Context, bookingID uint64) error

    // ExpireBooking sets the booking EXPIRED and releases its seats.
    ExpireBooking(ctx context.Context, bookingID uint64) error

    // CancelBooking sets the booking CANCELLED and releases its seats.
    CancelBooking(ctx context.Context, bookingID uint64) error
}
