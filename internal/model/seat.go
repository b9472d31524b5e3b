package model

import "fmt"

// Seat identifies a single seat within a layout by row letter and
// 1-based seat number. The zero value is not a valid seat.
type Seat struct {
    RowLabel   string `json:"row_label"`   // "A".."Z"
    SeatNumber int    `json:"seat_number"` // 1..SeatsPerRow
}

// String renders the seat in the conventional "A03" form.
func (s Seat) String() string {
    return fmt.Sprintf("%s%02d", s.RowLabel, s.SeatNumber)
}

// OccupiedSeat is a seat record as reported by the occupancy store,
// carrying the owning booking and its status so callers can separate
// their own seats from everyone else's.
type OccupiedSeat struct {
    Seat
    BookingID uint64
    Status    BookingStatus
}
