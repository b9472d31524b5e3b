// Package booking implements the booking lifecycle: a PENDING hold
// created by reserve, seat replacement anchored at a chosen seat,
// confirmation, cancellation and lazy expiry. The allocator plans over
// an occupancy snapshot that may go stale; the store's atomic commit is
// the only line of defence against concurrent double-booking, and a
// conflict there surfaces as the retryable ErrSeatJustTaken.
package booking

import (
    "context"
    "errors"
    "fmt"
    "log"
    "strings"
    "time"

    "github.com/gicinemas/seat-booking/internal/allocator"
    "github.com/gicinemas/seat-booking/internal/clock"
    "github.com/gicinemas/seat-booking/internal/model"
    "github.com/gicinemas/seat-booking/internal/queue"
)

// DefaultHoldTTL is how long a PENDING booking keeps its seats before
// it lapses.
const DefaultHoldTTL = 5 * time.Minute

// Publisher emits domain events after a booking is confirmed. Failures
// are logged and never fail the confirmation.
type Publisher interface {
    PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// Service coordinates the allocator, the occupancy store and the hold
// window. It is safe for concurrent use; all shared state lives in the
// store.
type Service struct {
    store   Store
    clock   clock.Clock
    holdTTL time.Duration
    events  Publisher
}

// Option customizes a Service.
type Option func(*Service)

// WithHoldTTL overrides the default hold window for new and changed
// bookings.
func WithHoldTTL(d time.Duration) Option {
    return func(s *Service) {
        if d > 0 {
            s.holdTTL = d
        }
    }
}

// WithPublisher attaches an event publisher for confirmed bookings.
func WithPublisher(p Publisher) Option {
    return func(s *Service) {
        s.events = p
    }
}

// NewService builds a booking service over the given store and clock.
func NewService(store Store, clk clock.Clock, opts ...Option) *Service {
    s := &Service{
        store:   store,
        clock:   clk,
        holdTTL: DefaultHoldTTL,
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// ReserveInput identifies the layout and the number of tickets for a
// new booking.
type ReserveInput struct {
    MovieTitle  string
    RowCount    int
    SeatsPerRow int
    Tickets     int
}

// ReserveResult describes a freshly held (or re-held) booking: the
// seats now attached to it and the seats other bookings already held
// when the plan was made.
type ReserveResult struct {
    Code      string
    Status    model.BookingStatus
    Seats     []model.Seat
    Taken     []model.Seat
    ExpiresAt time.Time
}

// ConfirmResult reports a confirmed booking and its final seats.
type ConfirmResult struct {
    Code  string
    Seats []model.Seat
}

// CheckResult reports a booking's own confirmed seats separated from
// seats held by other bookings on the same layout. Other bookings'
// identities are not exposed.
type CheckResult struct {
    Code   string
    Status model.BookingStatus
    Seats  []model.Seat
    Others []model.Seat
}

// Availability reports how many seats of a layout are still free.
type Availability struct {
    MovieTitle  string
    RowCount    int
    SeatsPerRow int
    Available   int
}

// Reserve creates a PENDING booking with seats chosen by the default
// center-outward allocation. The returned booking expires after the
// hold window unless confirmed. When the atomic commit hits a seat
// taken by a concurrent booking the whole operation fails with
// ErrSeatJustTaken and should be retried from scratch: the snapshot
// the plan was computed over is stale.
func (s *Service) Reserve(ctx context.Context, in ReserveInput) (ReserveResult, error) {
    title := strings.TrimSpace(in.MovieTitle)
    if err := validateLayout(title, in.RowCount, in.SeatsPerRow); err != nil {
        return ReserveResult{}, err
    }
    if in.Tickets <= 0 {
        return ReserveResult{}, ErrInvalidTicketCount
    }

    layout, err := s.store.FindOrCreateLayout(ctx, title, in.RowCount, in.SeatsPerRow)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("find or create layout: %w", err)
    }

    taken, err := s.store.OccupiedSeats(ctx, layout.ID, 0)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("list occupied seats: %w", err)
    }
    seatMap, err := allocator.BuildSeatMap(layout.RowCount, layout.SeatsPerRow, taken)
    if err != nil {
        return ReserveResult{}, err
    }
    seats, err := allocator.AllocateDefault(seatMap, in.Tickets)
    if err != nil {
        return ReserveResult{}, err
    }

    code, err := s.store.NextBookingCode(ctx)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("next booking code: %w", err)
    }

    expiresAt := s.clock.Now().Add(s.holdTTL)
    created, err := s.store.CreateBookingWithSeats(ctx, code, layout.ID, expiresAt, seats)
    if err != nil {
        if errors.Is(err, ErrStoreSeatTaken) {
            return ReserveResult{}, ErrSeatJustTaken
        }
        return ReserveResult{}, fmt.Errorf("create booking: %w", err)
    }

    return ReserveResult{
        Code:      created.Code,
        Status:    created.Status,
        Seats:     seats,
        Taken:     taken,
        ExpiresAt: expiresAt,
    }, nil
}

// ChangeSeats replaces a PENDING booking's seats with a new allocation
// anchored at the given seat and rolls the hold window forward. The
// booking's own current seats do not count as occupied for the new
// plan.
func (s *Service) ChangeSeats(ctx context.Context, code string, start model.Seat) (ReserveResult, error) {
    now := s.clock.Now()
    b, err := s.loadPending(ctx, code, now)
    if err != nil {
        return ReserveResult{}, err
    }

    held, err := s.store.SeatsByBooking(ctx, b.ID)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("list held seats: %w", err)
    }
    if len(held) == 0 {
        return ReserveResult{}, ErrNoHeldSeats
    }

    layout, err := s.store.LayoutByID(ctx, b.LayoutID)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("load layout: %w", err)
    }

    taken, err := s.store.OccupiedSeats(ctx, layout.ID, b.ID)
    if err != nil {
        return ReserveResult{}, fmt.Errorf("list occupied seats: %w", err)
    }
    if available := layout.TotalSeats() - len(taken); available < len(held) {
        return ReserveResult{}, &allocator.InsufficientSeatsError{
            Requested: len(held),
            Available: available,
        }
    }

    seatMap, err := allocator.BuildSeatMap(layout.RowCount, layout.SeatsPerRow, taken)
    if err != nil {
        return ReserveResult{}, err
    }
    seats, err := allocator.AllocateFromStart(seatMap, len(held), start)
    if err != nil {
        return ReserveResult{}, err
    }

    expiresAt := now.Add(s.holdTTL)
    if err := s.store.ReplaceSeats(ctx, b.ID, seats, expiresAt); err != nil {
        if errors.Is(err, ErrStoreSeatTaken) {
            return ReserveResult{}, ErrSeatJustTaken
        }
        return ReserveResult{}, fmt.Errorf("replace seats: %w", err)
    }

    return ReserveResult{
        Code:      b.Code,
        Status:    model.StatusPending,
        Seats:     seats,
        Taken:     taken,
        ExpiresAt: expiresAt,
    }, nil
}

// Confirm transitions a PENDING booking to CONFIRMED and clears its
// expiry. A booking.confirmed event is published best-effort when a
// publisher is attached.
func (s *Service) Confirm(ctx context.Context, code string) (ConfirmResult, error) {
    now := s.clock.Now()
    b, err := s.loadPending(ctx, code, now)
    if err != nil {
        return ConfirmResult{}, err
    }

    if err := s.store.ConfirmBooking(ctx, b.ID); err != nil {
        return ConfirmResult{}, fmt.Errorf("confirm booking: %w", err)
    }
    seats, err := s.store.SeatsByBooking(ctx, b.ID)
    if err != nil {
        return ConfirmResult{}, fmt.Errorf("list held seats: %w", err)
    }

    if s.events != nil {
        s.publishConfirmed(ctx, b, seats, now)
    }

    return ConfirmResult{Code: b.Code, Seats: seats}, nil
}

// Cancel releases a PENDING booking's seats and marks it CANCELLED.
func (s *Service) Cancel(ctx context.Context, code string) error {
    now := s.clock.Now()
    b, err := s.loadPending(ctx, code, now)
    if err != nil {
        return err
    }
    if err := s.store.CancelBooking(ctx, b.ID); err != nil {
        return fmt.Errorf("cancel booking: %w", err)
    }
    return nil
}

// Check returns the booking's current state: its own seats (only while
// CONFIRMED) and the seats held by every other booking on the same
// layout. Reading an overdue PENDING booking expires it as a side
// effect, so the reported status is always current.
func (s *Service) Check(ctx context.Context, code string) (CheckResult, error) {
    b, err := s.store.BookingByCode(ctx, code)
    if err != nil {
        if errors.Is(err, ErrStoreNotFound) {
            return CheckResult{}, &NotFoundError{Code: code}
        }
        return CheckResult{}, fmt.Errorf("load booking: %w", err)
    }

    if evaluateExpiry(b, s.clock.Now()) {
        if err := s.store.ExpireBooking(ctx, b.ID); err != nil {
            return CheckResult{}, fmt.Errorf("expire booking: %w", err)
        }
        b.Status = model.StatusExpired
    }

    records, err := s.store.SeatsByLayout(ctx, b.LayoutID)
    if err != nil {
        return CheckResult{}, fmt.Errorf("list layout seats: %w", err)
    }

    result := CheckResult{Code: b.Code, Status: b.Status}
    for _, r := range records {
        if r.BookingID == b.ID {
            if b.Status == model.StatusConfirmed {
                result.Seats = append(result.Seats, r.Seat)
            }
            continue
        }
        if r.Status.Holding() {
            result.Others = append(result.Others, r.Seat)
        }
    }
    return result, nil
}

// FindOrCreateLayout resolves (or creates) a layout and reports its
// current availability.
func (s *Service) FindOrCreateLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (Availability, error) {
    title = strings.TrimSpace(title)
    if err := validateLayout(title, rowCount, seatsPerRow); err != nil {
        return Availability{}, err
    }
    layout, err := s.store.FindOrCreateLayout(ctx, title, rowCount, seatsPerRow)
    if err != nil {
        return Availability{}, fmt.Errorf("find or create layout: %w", err)
    }
    return s.availability(ctx, layout)
}

// Availability reports the free seat count of an existing layout. It
// never creates a layout; an unknown triple fails with
// ErrLayoutNotFound.
func (s *Service) Availability(ctx context.Context, title string, rowCount, seatsPerRow int) (Availability, error) {
    title = strings.TrimSpace(title)
    if err := validateLayout(title, rowCount, seatsPerRow); err != nil {
        return Availability{}, err
    }
    layout, err := s.store.FindLayout(ctx, title, rowCount, seatsPerRow)
    if err != nil {
        if errors.Is(err, ErrStoreNotFound) {
            return Availability{}, ErrLayoutNotFound
        }
        return Availability{}, fmt.Errorf("find layout: %w", err)
    }
    return s.availability(ctx, layout)
}

func (s *Service) availability(ctx context.Context, layout model.Layout) (Availability, error) {
    occupied, err := s.store.OccupiedSeats(ctx, layout.ID, 0)
    if err != nil {
        return Availability{}, fmt.Errorf("list occupied seats: %w", err)
    }
    return Availability{
        MovieTitle:  layout.MovieTitle,
        RowCount:    layout.RowCount,
        SeatsPerRow: layout.SeatsPerRow,
        Available:   layout.TotalSeats() - len(occupied),
    }, nil
}

// loadPending fetches a booking and applies the shared existence,
// expiry and status checks. An overdue booking is expired and its
// seats released before ExpiredError is returned, so callers must not
// assume the booking is untouched after an error.
func (s *Service) loadPending(ctx context.Context, code string, now time.Time) (model.Booking, error) {
    b, err := s.store.BookingByCode(ctx, code)
    if err != nil {
        if errors.Is(err, ErrStoreNotFound) {
            return model.Booking{}, &NotFoundError{Code: code}
        }
        return model.Booking{}, fmt.Errorf("load booking: %w", err)
    }
    if evaluateExpiry(b, now) {
        if err := s.store.ExpireBooking(ctx, b.ID); err != nil {
            return model.Booking{}, fmt.Errorf("expire booking: %w", err)
        }
        return model.Booking{}, &ExpiredError{Code: code}
    }
    if b.Status != model.StatusPending {
        return model.Booking{}, &NotPendingError{Code: code, Status: b.Status}
    }
    return b, nil
}

func (s *Service) publishConfirmed(ctx context.Context, b model.Booking, seats []model.Seat, now time.Time) {
    layout, err := s.store.LayoutByID(ctx, b.LayoutID)
    if err != nil {
        log.Printf("booking: load layout for event failed: %v", err)
        return
    }
    labels := make([]string, 0, len(seats))
    for _, seat := range seats {
        labels = append(labels, seat.String())
    }
    ev := queue.BookingConfirmedEvent{
        BookingCode: b.Code,
        MovieTitle:  layout.MovieTitle,
        RowCount:    layout.RowCount,
        SeatsPerRow: layout.SeatsPerRow,
        SeatLabels:  labels,
        ConfirmedAt: now.Format(time.RFC3339),
    }
    if err := s.events.PublishBookingConfirmed(ctx, ev); err != nil {
        log.Printf("booking: publish confirmed event failed: %v", err)
    }
}

// validateLayout enforces the layout identity rules: non-blank title
// and grid dimensions within 1..26 rows by 1..50 seats.
func validateLayout(title string, rowCount, seatsPerRow int) error {
    if title == "" {
        return fmt.Errorf("%w: title is required", ErrInvalidLayout)
    }
    if rowCount <= 0 || rowCount > model.MaxRowCount {
        return fmt.Errorf("%w: row count must be 1..%d", ErrInvalidLayout, model.MaxRowCount)
    }
    if seatsPerRow <= 0 || seatsPerRow > model.MaxSeatsPerRow {
        return fmt.Errorf("%w: seats per row must be 1..%d", ErrInvalidLayout, model.MaxSeatsPerRow)
    }
    return nil
}
