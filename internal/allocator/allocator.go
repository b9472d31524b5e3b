package allocator

import (
    "errors"
    "fmt"

    "github.com/gicinemas/seat-booking/internal/model"
)

// ErrInvalidStartSeat is returned when the caller-supplied anchor seat
// falls outside the layout grid.
var ErrInvalidStartSeat = errors.New("start seat out of bounds")

// InsufficientSeatsError reports that a request could not be met in
// full. Available carries how many seats could have been found; no
// partial allocation is ever produced.
type InsufficientSeatsError struct {
    Requested int
    Available int
}

func (e *InsufficientSeatsError) Error() string {
    return fmt.Sprintf("only %d seat(s) available, requested %d", e.Available, e.Requested)
}

// AllocateDefault picks tickets seats starting at row A and filling
// each row outward from its center before overflowing to the next row.
// The plan is computed without touching the map; the chosen seats are
// marked occupied only once the full request is satisfied, so a failed
// request leaves the snapshot untouched.
func AllocateDefault(m *SeatMap, tickets int) ([]model.Seat, error) {
    if tickets <= 0 {
        return nil, nil
    }

    picked := make([]model.Seat, 0, tickets)
    for r := 0; r < m.rowCount && len(picked) < tickets; r++ {
        label, err := RowLabel(r, m.rowCount)
        if err != nil {
            return nil, err
        }
        for _, n := range pickFromCenter(m, r, tickets-len(picked)) {
            picked = append(picked, model.Seat{RowLabel: label, SeatNumber: n})
        }
    }

    if len(picked) < tickets {
        return nil, &InsufficientSeatsError{Requested: tickets, Available: len(picked)}
    }

    commit(m, picked)
    return picked, nil
}

// AllocateFromStart picks tickets seats anchored at start: every free
// seat from the anchor rightward to the end of its row (gaps are
// skipped, not blockers), then subsequent rows center-outward. Rows
// before the anchor row are never considered.
func AllocateFromStart(m *SeatMap, tickets int, start model.Seat) ([]model.Seat, error) {
    if tickets <= 0 {
        return nil, nil
    }

    startRow, err := RowIndex(start.RowLabel, m.rowCount)
    if err != nil {
        return nil, fmt.Errorf("%w: %q", ErrInvalidStartSeat, start.RowLabel)
    }
    startCol := start.SeatNumber - 1
    if startCol < 0 || startCol >= m.seatsPerRow {
        return nil, fmt.Errorf("%w: seat number %d", ErrInvalidStartSeat, start.SeatNumber)
    }

    picked := make([]model.Seat, 0, tickets)

    // Anchor row: greedy rightward scan.
    startLabel, err := RowLabel(startRow, m.rowCount)
    if err != nil {
        return nil, err
    }
    for c := startCol; c < m.seatsPerRow && len(picked) < tickets; c++ {
        if m.Taken(startRow, c) {
            continue
        }
        picked = append(picked, model.Seat{RowLabel: startLabel, SeatNumber: c + 1})
    }

    // Overflow rows, toward increasing row index.
    for r := startRow + 1; r < m.rowCount && len(picked) < tickets; r++ {
        label, err := RowLabel(r, m.rowCount)
        if err != nil {
            return nil, err
        }
        for _, n := range pickFromCenter(m, r, tickets-len(picked)) {
            picked = append(picked, model.Seat{RowLabel: label, SeatNumber: n})
        }
    }

    if len(picked) < tickets {
        return nil, &InsufficientSeatsError{Requested: tickets, Available: len(picked)}
    }

    commit(m, picked)
    return picked, nil
}

// pickFromCenter selects up to need free 1-based seat numbers in row r,
// expanding outward from the horizontal center. For an odd row width
// the true center seat comes first; otherwise the center-left candidate
// is preferred over the center-right one at every step.
func pickFromCenter(m *SeatMap, r, need int) []int {
    picks := make([]int, 0, need)
    left := (m.seatsPerRow - 1) / 2
    right := m.seatsPerRow / 2

    for len(picks) < need && (left >= 0 || right < m.seatsPerRow) {
        if left == right && !m.Taken(r, left) {
            picks = append(picks, left+1)
            left--
            right++
            continue
        }
        if left >= 0 && !m.Taken(r, left) && len(picks) < need {
            picks = append(picks, left+1)
        }
        if right < m.seatsPerRow && !m.Taken(r, right) && len(picks) < need {
            picks = append(picks, right+1)
        }
        left--
        right++
    }
    return picks
}

// commit marks a validated plan as occupied in the snapshot.
func commit(m *SeatMap, seats []model.Seat) {
    for _, s := range seats {
        r, _ := RowIndex(s.RowLabel, m.rowCount)
        m.mark(r, s.SeatNumber-1)
    }
}
