// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingConfirmedEvent is published when a booking is successfully
// confirmed. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type BookingConfirmedEvent struct {
    BookingCode string   `json:"booking_code"`
    MovieTitle  string   `json:"movie_title"`
    RowCount    int      `json:"row_count"`
    SeatsPerRow int      `json:"seats_per_row"`
    SeatLabels  []string `json:"seats"`
    ConfirmedAt string   `json:"confirmed_at"`
}
