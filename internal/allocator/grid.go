// Package allocator implements the seat placement rules: a per-row
// occupancy bitmap over the layout grid and the pure allocation
// algorithms that pick seats for a ticket request. Nothing in this
// package touches persistent state; callers commit the returned plan
// through the store and retry on conflict.
package allocator

import (
    "errors"
    "fmt"
    "strings"

    "github.com/gicinemas/seat-booking/internal/model"
)

// ErrInvalidCoordinate is returned when an occupied-seat record refers
// to a row or seat outside the layout grid.
var ErrInvalidCoordinate = errors.New("seat coordinate out of bounds")

// SeatMap is a dense occupancy snapshot of a layout: one bitmask per
// row, bit (seatNumber-1) set when the seat is taken. SeatsPerRow is
// capped at 50 by the layout rules so a single uint64 per row suffices.
type SeatMap struct {
    rowCount    int
    seatsPerRow int
    rows        []uint64
}

// NewSeatMap returns an empty seat map for the given grid dimensions.
func NewSeatMap(rowCount, seatsPerRow int) (*SeatMap, error) {
    if rowCount <= 0 || rowCount > model.MaxRowCount {
        return nil, fmt.Errorf("%w: row count %d", ErrInvalidCoordinate, rowCount)
    }
    if seatsPerRow <= 0 || seatsPerRow > model.MaxSeatsPerRow {
        return nil, fmt.Errorf("%w: seats per row %d", ErrInvalidCoordinate, seatsPerRow)
    }
    return &SeatMap{
        rowCount:    rowCount,
        seatsPerRow: seatsPerRow,
        rows:        make([]uint64, rowCount),
    }, nil
}

// BuildSeatMap builds an occupancy snapshot from the currently occupied
// coordinates. Every coordinate must fall inside the grid; a blank or
// out-of-range row label or seat number fails with ErrInvalidCoordinate.
func BuildSeatMap(rowCount, seatsPerRow int, occupied []model.Seat) (*SeatMap, error) {
    m, err := NewSeatMap(rowCount, seatsPerRow)
    if err != nil {
        return nil, err
    }
    for _, s := range occupied {
        r, err := RowIndex(s.RowLabel, rowCount)
        if err != nil {
            return nil, err
        }
        if s.SeatNumber < 1 || s.SeatNumber > seatsPerRow {
            return nil, fmt.Errorf("%w: seat number %d", ErrInvalidCoordinate, s.SeatNumber)
        }
        m.rows[r] |= 1 << uint(s.SeatNumber-1)
    }
    return m, nil
}

// RowCount returns the number of rows in the map.
func (m *SeatMap) RowCount() int { return m.rowCount }

// SeatsPerRow returns the row width of the map.
func (m *SeatMap) SeatsPerRow() int { return m.seatsPerRow }

// Taken reports whether the 0-based (rowIdx, seatIdx) position is occupied.
func (m *SeatMap) Taken(rowIdx, seatIdx int) bool {
    return m.rows[rowIdx]&(1<<uint(seatIdx)) != 0
}

// mark flags a 0-based position as occupied.
func (m *SeatMap) mark(rowIdx, seatIdx int) {
    m.rows[rowIdx] |= 1 << uint(seatIdx)
}

// FreeSeats returns how many seats remain unoccupied.
func (m *SeatMap) FreeSeats() int {
    free := 0
    for r := 0; r < m.rowCount; r++ {
        for c := 0; c < m.seatsPerRow; c++ {
            if !m.Taken(r, c) {
                free++
            }
        }
    }
    return free
}

// RowIndex converts a row letter to its 0-based index (A=0, B=1, ...).
// The label must be a single letter resolving inside [0, rowCount).
func RowIndex(label string, rowCount int) (int, error) {
    label = strings.TrimSpace(label)
    if label == "" {
        return 0, fmt.Errorf("%w: blank row label", ErrInvalidCoordinate)
    }
    c := label[0]
    if c >= 'a' && c <= 'z' {
        c -= 'a' - 'A'
    }
    idx := int(c) - 'A'
    if idx < 0 || idx >= rowCount {
        return 0, fmt.Errorf("%w: row label %q", ErrInvalidCoordinate, label)
    }
    return idx, nil
}

// RowLabel converts a 0-based row index to its letter (0="A", 1="B", ...).
func RowLabel(index, rowCount int) (string, error) {
    if index < 0 || index >= rowCount {
        return "", fmt.Errorf("%w: row index %d", ErrInvalidCoordinate, index)
    }
    return string(rune('A' + index)), nil
}
