package booking

import (
    "errors"
    "fmt"

    "github.com/gicinemas/seat-booking/internal/model"
)

// Sentinel errors for validation failures that carry no extra state.
// Handlers translate these into HTTP statuses; nothing in this package
// is ever swallowed silently.
var (
    // ErrInvalidLayout is returned when the layout title is blank or
    // the grid dimensions fall outside 1..26 rows by 1..50 seats.
    ErrInvalidLayout = errors.New("invalid seating layout")

    // ErrInvalidTicketCount is returned when a reserve request asks
    // for zero or a negative number of tickets.
    ErrInvalidTicketCount = errors.New("ticket count must be positive")

    // ErrLayoutNotFound is returned by availability lookups that do
    // not create missing layouts.
    ErrLayoutNotFound = errors.New("seating layout not found")

    // ErrSeatJustTaken signals a commit-time uniqueness conflict:
    // another booking took one of the planned seats between snapshot
    // and commit. The whole operation should be retried against a
    // fresh snapshot.
    ErrSeatJustTaken = errors.New("seat just taken by another booking")

    // ErrNoHeldSeats is returned when a seat change is requested for a
    // booking that holds no seats.
    ErrNoHeldSeats = errors.New("booking holds no seats")
)

// NotFoundError reports that no booking exists for the given code.
type NotFoundError struct {
    Code string
}

func (e *NotFoundError) Error() string {
    return fmt.Sprintf("booking %s not found", e.Code)
}

// NotPendingError reports an operation that requires a PENDING booking
// applied to one in a terminal state.
type NotPendingError struct {
    Code   string
    Status model.BookingStatus
}

func (e *NotPendingError) Error() string {
    return fmt.Sprintf("booking %s is %s, not PENDING", e.Code, e.Status)
}

// ExpiredError reports that the booking's hold window lapsed. By the
// time the caller sees this error the booking has already been marked
// EXPIRED and its seats released.
type ExpiredError struct {
    Code string
}

func (e *ExpiredError) Error() string {
    return fmt.Sprintf("booking %s has expired", e.Code)
}
