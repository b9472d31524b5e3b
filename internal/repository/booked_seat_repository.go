package repository

import (
    "context"
    "database/sql"

    "github.com/gicinemas/seat-booking/internal/model"
)

// BookedSeatRepo provides data access to the booked_seats table. A row
// exists only while its booking is PENDING or CONFIRMED; expiry and
// cancellation delete the rows, so the unique key on
// (layout_id, row_label, seat_number) is exactly the set of seats that
// cannot be sold twice.
type BookedSeatRepo struct {
    db *sql.DB
}

// NewBookedSeatRepo returns a new BookedSeatRepo bound to the given database.
func NewBookedSeatRepo(db *sql.DB) *BookedSeatRepo { return &BookedSeatRepo{db: db} }

// OccupiedByLayout returns every seat currently held in a layout,
// optionally excluding one booking's own seats (pass 0 to exclude
// nothing). Used to build the occupancy map before planning an
// allocation.
func (r *BookedSeatRepo) OccupiedByLayout(ctx context.Context, layoutID, excludeBookingID uint64) ([]model.Seat, error) {
    const q = `SELECT row_label, seat_number FROM booked_seats
               WHERE layout_id = ? AND booking_id <> ?
               ORDER BY row_label, seat_number`
    rows, err := r.db.QueryContext(ctx, q, layoutID, excludeBookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(&s.RowLabel, &s.SeatNumber); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}

// AllByLayout returns every held seat in a layout together with the
// owning booking and its status. Used to render a seat map that
// distinguishes the caller's seats from everyone else's.
func (r *BookedSeatRepo) AllByLayout(ctx context.Context, layoutID uint64) ([]model.OccupiedSeat, error) {
    const q = `SELECT bs.row_label, bs.seat_number, bs.booking_id, b.status
               FROM booked_seats bs
               JOIN bookings b ON b.id = bs.booking_id
               WHERE bs.layout_id = ?
               ORDER BY bs.row_label, bs.seat_number`
    rows, err := r.db.QueryContext(ctx, q, layoutID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.OccupiedSeat
    for rows.Next() {
        var s model.OccupiedSeat
        if err := rows.Scan(&s.RowLabel, &s.SeatNumber, &s.BookingID, &s.Status); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}

// ByBooking returns the seats held by a single booking.
func (r *BookedSeatRepo) ByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
    const q = `SELECT row_label, seat_number FROM booked_seats
               WHERE booking_id = ?
               ORDER BY row_label, seat_number`
    rows, err := r.db.QueryContext(ctx, q, bookingID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var seats []model.Seat
    for rows.Next() {
        var s model.Seat
        if err := rows.Scan(&s.RowLabel, &s.SeatNumber); err != nil {
            return nil, err
        }
        seats = append(seats, s)
    }
    return seats, rows.Err()
}

// InsertBulkTx inserts all seats for a booking in a single statement
// within the provided transaction. A unique-key violation means
// another booking claimed one of the seats between planning and
// commit; it is reported as ErrDuplicate so the caller can retry.
// Passing an empty slice has no effect and returns nil.
func (r *BookedSeatRepo) InsertBulkTx(ctx context.Context, tx *sql.Tx, bookingID, layoutID uint64, seats []model.Seat) error {
    if len(seats) == 0 {
        return nil
    }
    query := `INSERT INTO booked_seats (booking_id, layout_id, row_label, seat_number) VALUES `
    args := make([]interface{}, 0, len(seats)*4)
    for i, s := range seats {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, bookingID, layoutID, s.RowLabel, s.SeatNumber)
    }
    if _, err := tx.ExecContext(ctx, query, args...); err != nil {
        if isDuplicateKey(err) {
            return ErrDuplicate
        }
        return err
    }
    return nil
}

// DeleteByBookingTx releases all seats held by a booking within the
// provided transaction.
func (r *BookedSeatRepo) DeleteByBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM booked_seats WHERE booking_id = ?`, bookingID)
    return err
}
