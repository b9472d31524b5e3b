package repository

import (
    "context"
    "database/sql"
    "errors"
    "fmt"
    "time"

    "github.com/gicinemas/seat-booking/internal/model"
)

// BookingRepo provides data access to the bookings table and the
// booking_codes sequence table. Booking codes are "GIC" followed by a
// zero-padded number taken from an auto-increment column, so codes
// stay unique and monotonic across restarts and replicas.
type BookingRepo struct {
    db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

const bookingColumns = `id, code, layout_id, status, expires_at, created_at`

func scanBooking(row *sql.Row) (model.Booking, error) {
    var b model.Booking
    var expiresAt sql.NullTime
    err := row.Scan(&b.ID, &b.Code, &b.LayoutID, &b.Status, &expiresAt, &b.CreatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return model.Booking{}, ErrNotFound
    }
    if err != nil {
        return model.Booking{}, err
    }
    if expiresAt.Valid {
        t := expiresAt.Time.UTC()
        b.ExpiresAt = &t
    }
    return b, nil
}

// ByCode returns the booking with the given code, or ErrNotFound.
func (r *BookingRepo) ByCode(ctx context.Context, code string) (model.Booking, error) {
    const q = `SELECT ` + bookingColumns + ` FROM bookings WHERE code = ?`
    return scanBooking(r.db.QueryRowContext(ctx, q, code))
}

// NextCode reserves the next booking code by inserting into the
// booking_codes sequence table and formatting the generated ID.
func (r *BookingRepo) NextCode(ctx context.Context) (string, error) {
    res, err := r.db.ExecContext(ctx, `INSERT INTO booking_codes () VALUES ()`)
    if err != nil {
        return "", err
    }
    n, err := res.LastInsertId()
    if err != nil {
        return "", err
    }
    return fmt.Sprintf("GIC%04d", n), nil
}

// CreateTx inserts a new pending booking within the scope of an
// existing transaction and returns the row as stored, timestamps
// included. The caller must commit or roll back the transaction.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, code string, layoutID uint64, expiresAt time.Time) (model.Booking, error) {
    const q = `INSERT INTO bookings (code, layout_id, status, expires_at) VALUES (?, ?, ?, ?)`
    res, err := tx.ExecContext(ctx, q, code, layoutID, model.StatusPending, expiresAt)
    if err != nil {
        return model.Booking{}, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return model.Booking{}, err
    }
    const sel = `SELECT ` + bookingColumns + ` FROM bookings WHERE id = ?`
    return scanBooking(tx.QueryRowContext(ctx, sel, id))
}

// SetStatusTx transitions the booking to the given status within an
// existing transaction. Clearing the expiry is the caller's choice:
// confirmation drops the deadline while expiry and cancellation keep
// it for the audit trail.
func (r *BookingRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, bookingID uint64, status model.BookingStatus, clearExpiry bool) error {
    q := `UPDATE bookings SET status = ? WHERE id = ?`
    if clearExpiry {
        q = `UPDATE bookings SET status = ?, expires_at = NULL WHERE id = ?`
    }
    res, err := tx.ExecContext(ctx, q, status, bookingID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrNotFound
    }
    return nil
}

// RollExpiryTx pushes the booking's expiry to the provided deadline
// within an existing transaction.
func (r *BookingRepo) RollExpiryTx(ctx context.Context, tx *sql.Tx, bookingID uint64, expiresAt time.Time) error {
    _, err := tx.ExecContext(ctx, `UPDATE bookings SET expires_at = ? WHERE id = ?`, expiresAt, bookingID)
    return err
}
