package model

import "time"

// MaxRowCount and MaxSeatsPerRow bound the size of a seating layout.
// Rows are labelled with a single uppercase letter, which caps the row
// count at 26; fifty seats per row matches the widest supported hall.
const (
    MaxRowCount    = 26
    MaxSeatsPerRow = 50
)

// Layout describes the fixed seating grid used for a movie showing.
// A layout is identified by the triple (movie title, row count, seats
// per row) and is immutable once created. Layouts are created on first
// use and never deleted.
//
// Fields:
//  ID          – primary key identifier.
//  MovieTitle  – title shown for this layout; trimmed before storage.
//  RowCount    – number of rows, 1..26 (row A is the front row).
//  SeatsPerRow – seats in every row, 1..50, numbered from 1.
//  CreatedAt   – creation timestamp.
type Layout struct {
    ID          uint64    // layouts.id
    MovieTitle  string    // layouts.movie_title
    RowCount    int       // layouts.row_count
    SeatsPerRow int       // layouts.seats_per_row
    CreatedAt   time.Time // layouts.created_at
}

// TotalSeats returns the seat capacity of the layout.
func (l Layout) TotalSeats() int {
    return l.RowCount * l.SeatsPerRow
}
