package repository

import (
    "context"
    "database/sql"
    "errors"
    "time"

    "github.com/gicinemas/seat-booking/internal/booking"
    "github.com/gicinemas/seat-booking/internal/model"
)

// Store composes the individual repositories into the occupancy store
// the booking service runs against. Multi-step writes (booking plus
// seats, seat replacement, status transitions that release seats) run
// inside a single transaction so a conflict rolls everything back.
type Store struct {
    db      *sql.DB
    layouts *LayoutRepo
    books   *BookingRepo
    seats   *BookedSeatRepo
}

// NewStore returns a Store bound to the given database.
func NewStore(db *sql.DB) *Store {
    return &Store{
        db:      db,
        layouts: NewLayoutRepo(db),
        books:   NewBookingRepo(db),
        seats:   NewBookedSeatRepo(db),
    }
}

var _ booking.Store = (*Store)(nil)

// mapErr translates repository sentinels into the store errors the
// booking service understands.
func mapErr(err error) error {
    switch {
    case err == nil:
        return nil
    case errors.Is(err, ErrNotFound):
        return booking.ErrStoreNotFound
    case errors.Is(err, ErrDuplicate):
        return booking.ErrStoreSeatTaken
    default:
        return err
    }
}

func (s *Store) FindOrCreateLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    l, err := s.layouts.FindOrCreate(ctx, title, rowCount, seatsPerRow)
    return l, mapErr(err)
}

func (s *Store) FindLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    l, err := s.layouts.Find(ctx, title, rowCount, seatsPerRow)
    return l, mapErr(err)
}

func (s *Store) LayoutByID(ctx context.Context, id uint64) (model.Layout, error) {
    l, err := s.layouts.ByID(ctx, id)
    return l, mapErr(err)
}

func (s *Store) BookingByCode(ctx context.Context, code string) (model.Booking, error) {
    b, err := s.books.ByCode(ctx, code)
    return b, mapErr(err)
}

func (s *Store) NextBookingCode(ctx context.Context) (string, error) {
    return s.books.NextCode(ctx)
}

func (s *Store) OccupiedSeats(ctx context.Context, layoutID, excludeBookingID uint64) ([]model.Seat, error) {
    return s.seats.OccupiedByLayout(ctx, layoutID, excludeBookingID)
}

func (s *Store) SeatsByLayout(ctx context.Context, layoutID uint64) ([]model.OccupiedSeat, error) {
    return s.seats.AllByLayout(ctx, layoutID)
}

func (s *Store) SeatsByBooking(ctx context.Context, bookingID uint64) ([]model.Seat, error) {
    return s.seats.ByBooking(ctx, bookingID)
}

// withTx runs fn inside a transaction, committing on success and
// rolling back on error or panic.
func (s *Store) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
    tx, err := s.db.BeginTx(ctx, nil)
    if err != nil {
        return err
    }
    defer tx.Rollback()
    if err := fn(tx); err != nil {
        return err
    }
    return tx.Commit()
}

func (s *Store) CreateBookingWithSeats(ctx context.Context, code string, layoutID uint64, expiresAt time.Time, seats []model.Seat) (model.Booking, error) {
    var created model.Booking
    err := s.withTx(ctx, func(tx *sql.Tx) error {
        b, err := s.books.CreateTx(ctx, tx, code, layoutID, expiresAt)
        if err != nil {
            return err
        }
        if err := s.seats.InsertBulkTx(ctx, tx, b.ID, layoutID, seats); err != nil {
            return err
        }
        created = b
        return nil
    })
    if err != nil {
        return model.Booking{}, mapErr(err)
    }
    return created, nil
}

func (s *Store) ReplaceSeats(ctx context.Context, bookingID uint64, seats []model.Seat, expiresAt time.Time) error {
    err := s.withTx(ctx, func(tx *sql.Tx) error {
        var layoutID uint64
        err := tx.QueryRowContext(ctx, `SELECT layout_id FROM bookings WHERE id = ?`, bookingID).Scan(&layoutID)
        if errors.Is(err, sql.ErrNoRows) {
            return ErrNotFound
        }
        if err != nil {
            return err
        }
        if err := s.seats.DeleteByBookingTx(ctx, tx, bookingID); err != nil {
            return err
        }
        if err := s.seats.InsertBulkTx(ctx, tx, bookingID, layoutID, seats); err != nil {
            return err
        }
        return s.books.RollExpiryTx(ctx, tx, bookingID, expiresAt)
    })
    return mapErr(err)
}

func (s *Store) ConfirmBooking(ctx context.Context, bookingID uint64) error {
    err := s.withTx(ctx, func(tx *sql.Tx) error {
        return s.books.SetStatusTx(ctx, tx, bookingID, model.StatusConfirmed, true)
    })
    return mapErr(err)
}

func (s *Store) ExpireBooking(ctx context.Context, bookingID uint64) error {
    return s.release(ctx, bookingID, model.StatusExpired)
}

func (s *Store) CancelBooking(ctx context.Context, bookingID uint64) error {
    return s.release(ctx, bookingID, model.StatusCancelled)
}

// release moves a booking into a terminal status and frees its seats
// in one transaction.
func (s *Store) release(ctx context.Context, bookingID uint64, status model.BookingStatus) error {
    err := s.withTx(ctx, func(tx *sql.Tx) error {
        if err := s.books.SetStatusTx(ctx, tx, bookingID, status, false); err != nil {
            return err
        }
        return s.seats.DeleteByBookingTx(ctx, tx, bookingID)
    })
    return mapErr(err)
}
