package booking

import (
    "context"
    "errors"
    "fmt"
    "sync"
    "testing"
    "time"

    "github.com/gicinemas/seat-booking/internal/allocator"
    "github.com/gicinemas/seat-booking/internal/clock"
    "github.com/gicinemas/seat-booking/internal/model"
)

// fakeStore is an in-memory Store that mirrors the database contract:
// seat uniqueness among holding bookings is checked at insert time and
// surfaces as ErrStoreSeatTaken.
type fakeStore struct {
    mu           sync.Mutex
    layouts      map[uint64]model.Layout
    bookings     map[uint64]model.Booking
    seats        map[uint64][]model.Seat // booking id -> seats
    nextLayoutID uint64
    nextID       uint64
    sequence     int

    // beforeCreate, when set, runs once just before the next
    // CreateBookingWithSeats commit. Used to interleave a competing
    // booking between planning and commit.
    beforeCreate func()
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        layouts:  make(map[uint64]model.Layout),
        bookings: make(map[uint64]model.Booking),
        seats:    make(map[uint64][]model.Seat),
    }
}

func (f *fakeStore) FindOrCreateLayout(_ context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    for _, l := range f.layouts {
        if l.MovieTitle == title && l.RowCount == rowCount && l.SeatsPerRow == seatsPerRow {
            return l, nil
        }
    }
    f.nextLayoutID++
    l := model.Layout{ID: f.nextLayoutID, MovieTitle: title, RowCount: rowCount, SeatsPerRow: seatsPerRow}
    f.layouts[l.ID] = l
    return l, nil
}

func (f *fakeStore) FindLayout(_ context.Context, title string, rowCount, seatsPerRow int) (model.Layout, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    for _, l := range f.layouts {
        if l.MovieTitle == title && l.RowCount == rowCount && l.SeatsPerRow == seatsPerRow {
            return l, nil
        }
    }
    return model.Layout{}, ErrStoreNotFound
}

func (f *fakeStore) LayoutByID(_ context.Context, id uint64) (model.Layout, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    l, ok := f.layouts[id]
    if !ok {
        return model.Layout{}, ErrStoreNotFound
    }
    return l, nil
}

func (f *fakeStore) BookingByCode(_ context.Context, code string) (model.Booking, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    for _, b := range f.bookings {
        if b.Code == code {
            return b, nil
        }
    }
    return model.Booking{}, ErrStoreNotFound
}

func (f *fakeStore) NextBookingCode(_ context.Context) (string, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    f.sequence++
    return fmt.Sprintf("GIC%04d", f.sequence), nil
}

func (f *fakeStore) OccupiedSeats(_ context.Context, layoutID, excludeBookingID uint64) ([]model.Seat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var out []model.Seat
    for id, b := range f.bookings {
        if b.LayoutID != layoutID || !b.Status.Holding() || id == excludeBookingID {
            continue
        }
        out = append(out, f.seats[id]...)
    }
    return out, nil
}

func (f *fakeStore) SeatsByLayout(_ context.Context, layoutID uint64) ([]model.OccupiedSeat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    var out []model.OccupiedSeat
    for id, b := range f.bookings {
        if b.LayoutID != layoutID {
            continue
        }
        for _, s := range f.seats[id] {
            out = append(out, model.OccupiedSeat{Seat: s, BookingID: id, Status: b.Status})
        }
    }
    return out, nil
}

func (f *fakeStore) SeatsByBooking(_ context.Context, bookingID uint64) ([]model.Seat, error) {
    f.mu.Lock()
    defer f.mu.Unlock()
    return append([]model.Seat(nil), f.seats[bookingID]...), nil
}

// conflicts reports whether any of seats is already held by a holding
// booking other than exclude.
func (f *fakeStore) conflicts(seats []model.Seat, exclude uint64) bool {
    held := make(map[string]bool)
    for id, b := range f.bookings {
        if id == exclude || !b.Status.Holding() {
            continue
        }
        for _, s := range f.seats[id] {
            held[s.String()] = true
        }
    }
    for _, s := range seats {
        if held[s.String()] {
            return true
        }
    }
    return false
}

func (f *fakeStore) CreateBookingWithSeats(_ context.Context, code string, layoutID uint64, expiresAt time.Time, seats []model.Seat) (model.Booking, error) {
    if hook := f.beforeCreate; hook != nil {
        f.beforeCreate = nil
        hook()
    }
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.conflicts(seats, 0) {
        return model.Booking{}, ErrStoreSeatTaken
    }
    f.nextID++
    b := model.Booking{
        ID:        f.nextID,
        Code:      code,
        LayoutID:  layoutID,
        Status:    model.StatusPending,
        ExpiresAt: &expiresAt,
    }
    f.bookings[b.ID] = b
    f.seats[b.ID] = append([]model.Seat(nil), seats...)
    return b, nil
}

func (f *fakeStore) ReplaceSeats(_ context.Context, bookingID uint64, seats []model.Seat, expiresAt time.Time) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    if f.conflicts(seats, bookingID) {
        return ErrStoreSeatTaken
    }
    f.seats[bookingID] = append([]model.Seat(nil), seats...)
    b := f.bookings[bookingID]
    b.ExpiresAt = &expiresAt
    f.bookings[bookingID] = b
    return nil
}

func (f *fakeStore) setStatus(bookingID uint64, status model.BookingStatus, clearExpiry, releaseSeats bool) error {
    f.mu.Lock()
    defer f.mu.Unlock()
    b, ok := f.bookings[bookingID]
    if !ok {
        return ErrStoreNotFound
    }
    b.Status = status
    if clearExpiry {
        b.ExpiresAt = nil
    }
    f.bookings[bookingID] = b
    if releaseSeats {
        delete(f.seats, bookingID)
    }
    return nil
}

func (f *fakeStore) ConfirmBooking(_ context.Context, id uint64) error {
    return f.setStatus(id, model.StatusConfirmed, true, false)
}

func (f *fakeStore) ExpireBooking(_ context.Context, id uint64) error {
    return f.setStatus(id, model.StatusExpired, false, true)
}

func (f *fakeStore) CancelBooking(_ context.Context, id uint64) error {
    return f.setStatus(id, model.StatusCancelled, false, true)
}

var testNow = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)

func newTestService(store *fakeStore) *Service {
    return NewService(store, clock.NewFixed(testNow), WithHoldTTL(5*time.Minute))
}

func labels(seats []model.Seat) []string {
    out := make([]string, 0, len(seats))
    for _, s := range seats {
        out = append(out, s.String())
    }
    return out
}

func hasSeat(seats []model.Seat, label string) bool {
    for _, s := range seats {
        if s.String() == label {
            return true
        }
    }
    return false
}

func TestServiceReserve(t *testing.T) {
    t.Run("creates a pending hold with center seats", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        res, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Inception", RowCount: 4, SeatsPerRow: 8, Tickets: 4,
        })
        if err != nil {
            t.Fatalf("unexpected error: %v", err)
        }
        if res.Code != "GIC0001" {
            t.Fatalf("code = %q, want GIC0001", res.Code)
        }
        if res.Status != model.StatusPending {
            t.Fatalf("status = %s, want PENDING", res.Status)
        }
        if want := testNow.Add(5 * time.Minute); !res.ExpiresAt.Equal(want) {
            t.Fatalf("expires_at = %v, want %v", res.ExpiresAt, want)
        }
        for _, want := range []string{"A03", "A04", "A05", "A06"} {
            if !hasSeat(res.Seats, want) {
                t.Fatalf("missing %s in %v", want, labels(res.Seats))
            }
        }
    })

    t.Run("trims the title and reuses the layout", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        if _, err := svc.Reserve(context.Background(), ReserveInput{MovieTitle: "Dune", RowCount: 2, SeatsPerRow: 4, Tickets: 1}); err != nil {
            t.Fatalf("first reserve: %v", err)
        }
        if _, err := svc.Reserve(context.Background(), ReserveInput{MovieTitle: "  Dune  ", RowCount: 2, SeatsPerRow: 4, Tickets: 1}); err != nil {
            t.Fatalf("second reserve: %v", err)
        }
        if len(store.layouts) != 1 {
            t.Fatalf("expected a single layout, got %d", len(store.layouts))
        }
    })

    t.Run("rejects invalid layouts and ticket counts", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        cases := []ReserveInput{
            {MovieTitle: "", RowCount: 4, SeatsPerRow: 4, Tickets: 1},
            {MovieTitle: "X", RowCount: 0, SeatsPerRow: 4, Tickets: 1},
            {MovieTitle: "X", RowCount: 27, SeatsPerRow: 4, Tickets: 1},
            {MovieTitle: "X", RowCount: 4, SeatsPerRow: 51, Tickets: 1},
        }
        for _, in := range cases {
            if _, err := svc.Reserve(context.Background(), in); !errors.Is(err, ErrInvalidLayout) {
                t.Fatalf("input %+v: got %v, want ErrInvalidLayout", in, err)
            }
        }
        if _, err := svc.Reserve(context.Background(), ReserveInput{MovieTitle: "X", RowCount: 4, SeatsPerRow: 4, Tickets: 0}); !errors.Is(err, ErrInvalidTicketCount) {
            t.Fatalf("got %v, want ErrInvalidTicketCount", err)
        }
    })

    t.Run("fails with InsufficientSeats once the layout is full", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        in := ReserveInput{MovieTitle: "Alien", RowCount: 1, SeatsPerRow: 2, Tickets: 2}
        if _, err := svc.Reserve(context.Background(), in); err != nil {
            t.Fatalf("first reserve: %v", err)
        }
        _, err := svc.Reserve(context.Background(), in)
        var insufficient *allocator.InsufficientSeatsError
        if !errors.As(err, &insufficient) {
            t.Fatalf("got %v, want InsufficientSeatsError", err)
        }
        if insufficient.Available != 0 {
            t.Fatalf("available = %d, want 0", insufficient.Available)
        }
    })

    t.Run("concurrent reserve for the last seat: one wins, one gets SeatJustTaken", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        // Between this reserve's planning and commit, a competing
        // reserve grabs the only seat.
        store.beforeCreate = func() {
            if _, err := svc.Reserve(context.Background(), ReserveInput{
                MovieTitle: "Heat", RowCount: 1, SeatsPerRow: 1, Tickets: 1,
            }); err != nil {
                t.Errorf("competing reserve failed: %v", err)
            }
        }
        _, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Heat", RowCount: 1, SeatsPerRow: 1, Tickets: 1,
        })
        if !errors.Is(err, ErrSeatJustTaken) {
            t.Fatalf("got %v, want ErrSeatJustTaken", err)
        }
        if len(store.bookings) != 1 {
            t.Fatalf("expected exactly one surviving booking, got %d", len(store.bookings))
        }
    })
}

func TestServiceChangeSeats(t *testing.T) {
    reserve := func(t *testing.T, svc *Service, tickets int) ReserveResult {
        t.Helper()
        res, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Arrival", RowCount: 4, SeatsPerRow: 4, Tickets: tickets,
        })
        if err != nil {
            t.Fatalf("reserve: %v", err)
        }
        return res
    }

    t.Run("re-anchors the hold and rolls the window forward", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res := reserve(t, svc, 4)

        changed, err := svc.ChangeSeats(context.Background(), res.Code, model.Seat{RowLabel: "A", SeatNumber: 3})
        if err != nil {
            t.Fatalf("unexpected error: %v", err)
        }
        for _, want := range []string{"A03", "A04", "B02", "B03"} {
            if !hasSeat(changed.Seats, want) {
                t.Fatalf("missing %s in %v", want, labels(changed.Seats))
            }
        }
        if want := testNow.Add(5 * time.Minute); !changed.ExpiresAt.Equal(want) {
            t.Fatalf("expires_at = %v, want %v", changed.ExpiresAt, want)
        }
    })

    t.Run("own seats do not block the new plan", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res := reserve(t, svc, 16) // whole 4x4 grid

        changed, err := svc.ChangeSeats(context.Background(), res.Code, model.Seat{RowLabel: "A", SeatNumber: 1})
        if err != nil {
            t.Fatalf("unexpected error: %v", err)
        }
        if len(changed.Seats) != 16 {
            t.Fatalf("got %d seats, want 16", len(changed.Seats))
        }
    })

    t.Run("rejects bad anchors and unknown bookings", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res := reserve(t, svc, 2)

        if _, err := svc.ChangeSeats(context.Background(), res.Code, model.Seat{RowLabel: "Z", SeatNumber: 1}); !errors.Is(err, allocator.ErrInvalidStartSeat) {
            t.Fatalf("got %v, want ErrInvalidStartSeat", err)
        }
        var notFound *NotFoundError
        if _, err := svc.ChangeSeats(context.Background(), "GIC9999", model.Seat{RowLabel: "A", SeatNumber: 1}); !errors.As(err, &notFound) {
            t.Fatalf("got %v, want NotFoundError", err)
        }
    })

    t.Run("expired booking is released and reported", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Arrival", RowCount: 2, SeatsPerRow: 2, Tickets: 1,
        })
        if err != nil {
            t.Fatalf("reserve: %v", err)
        }

        // Same store, clock past the hold deadline.
        later := NewService(store, clock.NewFixed(testNow.Add(10*time.Minute)), WithHoldTTL(5*time.Minute))
        var expired *ExpiredError
        if _, err := later.ChangeSeats(context.Background(), res.Code, model.Seat{RowLabel: "A", SeatNumber: 1}); !errors.As(err, &expired) {
            t.Fatalf("got %v, want ExpiredError", err)
        }
        b, err := store.BookingByCode(context.Background(), res.Code)
        if err != nil {
            t.Fatalf("lookup: %v", err)
        }
        if b.Status != model.StatusExpired {
            t.Fatalf("status = %s, want EXPIRED", b.Status)
        }
        if seats, _ := store.SeatsByBooking(context.Background(), b.ID); len(seats) != 0 {
            t.Fatalf("expected released seats, still holding %v", labels(seats))
        }
    })

    t.Run("confirmed booking cannot change seats", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res := reserve(t, svc, 1)
        if _, err := svc.Confirm(context.Background(), res.Code); err != nil {
            t.Fatalf("confirm: %v", err)
        }
        var notPending *NotPendingError
        if _, err := svc.ChangeSeats(context.Background(), res.Code, model.Seat{RowLabel: "A", SeatNumber: 1}); !errors.As(err, &notPending) {
            t.Fatalf("got %v, want NotPendingError", err)
        }
    })
}

func TestServiceConfirm(t *testing.T) {
    t.Run("confirms and clears the expiry", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Tenet", RowCount: 2, SeatsPerRow: 4, Tickets: 2,
        })
        if err != nil {
            t.Fatalf("reserve: %v", err)
        }

        confirmed, err := svc.Confirm(context.Background(), res.Code)
        if err != nil {
            t.Fatalf("unexpected error: %v", err)
        }
        if len(confirmed.Seats) != 2 {
            t.Fatalf("got %d seats, want 2", len(confirmed.Seats))
        }
        b, _ := store.BookingByCode(context.Background(), res.Code)
        if b.Status != model.StatusConfirmed {
            t.Fatalf("status = %s, want CONFIRMED", b.Status)
        }
        if b.ExpiresAt != nil {
            t.Fatalf("expiry not cleared: %v", b.ExpiresAt)
        }
    })

    t.Run("double confirm reports not pending", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res, _ := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Tenet", RowCount: 2, SeatsPerRow: 4, Tickets: 1,
        })
        if _, err := svc.Confirm(context.Background(), res.Code); err != nil {
            t.Fatalf("confirm: %v", err)
        }
        var notPending *NotPendingError
        if _, err := svc.Confirm(context.Background(), res.Code); !errors.As(err, &notPending) {
            t.Fatalf("got %v, want NotPendingError", err)
        }
    })
}

func TestServiceCancel(t *testing.T) {
    store := newFakeStore()
    svc := newTestService(store)
    res, err := svc.Reserve(context.Background(), ReserveInput{
        MovieTitle: "Up", RowCount: 1, SeatsPerRow: 4, Tickets: 2,
    })
    if err != nil {
        t.Fatalf("reserve: %v", err)
    }

    if err := svc.Cancel(context.Background(), res.Code); err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    b, _ := store.BookingByCode(context.Background(), res.Code)
    if b.Status != model.StatusCancelled {
        t.Fatalf("status = %s, want CANCELLED", b.Status)
    }
    if seats, _ := store.SeatsByBooking(context.Background(), b.ID); len(seats) != 0 {
        t.Fatalf("expected released seats, still holding %v", labels(seats))
    }

    // Cancelled seats are free for the next hold.
    again, err := svc.Reserve(context.Background(), ReserveInput{
        MovieTitle: "Up", RowCount: 1, SeatsPerRow: 4, Tickets: 2,
    })
    if err != nil {
        t.Fatalf("re-reserve: %v", err)
    }
    for _, want := range []string{"A02", "A03"} {
        if !hasSeat(again.Seats, want) {
            t.Fatalf("missing %s in %v", want, labels(again.Seats))
        }
    }
}

func TestServiceCheck(t *testing.T) {
    t.Run("separates own confirmed seats from everyone else's", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)

        mine, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Her", RowCount: 2, SeatsPerRow: 4, Tickets: 2,
        })
        if err != nil {
            t.Fatalf("reserve mine: %v", err)
        }
        if _, err := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Her", RowCount: 2, SeatsPerRow: 4, Tickets: 1,
        }); err != nil {
            t.Fatalf("reserve other: %v", err)
        }
        if _, err := svc.Confirm(context.Background(), mine.Code); err != nil {
            t.Fatalf("confirm: %v", err)
        }

        check, err := svc.Check(context.Background(), mine.Code)
        if err != nil {
            t.Fatalf("check: %v", err)
        }
        if check.Status != model.StatusConfirmed {
            t.Fatalf("status = %s, want CONFIRMED", check.Status)
        }
        // Round-trip: reserved seats come back exactly.
        if len(check.Seats) != len(mine.Seats) {
            t.Fatalf("got %v, want %v", labels(check.Seats), labels(mine.Seats))
        }
        for _, s := range mine.Seats {
            if !hasSeat(check.Seats, s.String()) {
                t.Fatalf("missing %s in %v", s, labels(check.Seats))
            }
        }
        if len(check.Others) != 1 {
            t.Fatalf("others = %v, want the other booking's single seat", labels(check.Others))
        }
    })

    t.Run("pending booking shows no own seats", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res, _ := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Her", RowCount: 2, SeatsPerRow: 4, Tickets: 2,
        })
        check, err := svc.Check(context.Background(), res.Code)
        if err != nil {
            t.Fatalf("check: %v", err)
        }
        if check.Status != model.StatusPending || len(check.Seats) != 0 {
            t.Fatalf("got status=%s seats=%v, want PENDING with no seats", check.Status, labels(check.Seats))
        }
    })

    t.Run("reading an overdue booking expires it", func(t *testing.T) {
        store := newFakeStore()
        svc := newTestService(store)
        res, _ := svc.Reserve(context.Background(), ReserveInput{
            MovieTitle: "Her", RowCount: 2, SeatsPerRow: 4, Tickets: 2,
        })

        later := NewService(store, clock.NewFixed(testNow.Add(10*time.Minute)), WithHoldTTL(5*time.Minute))
        check, err := later.Check(context.Background(), res.Code)
        if err != nil {
            t.Fatalf("check: %v", err)
        }
        if check.Status != model.StatusExpired {
            t.Fatalf("status = %s, want EXPIRED", check.Status)
        }
        b, _ := store.BookingByCode(context.Background(), res.Code)
        if seats, _ := store.SeatsByBooking(context.Background(), b.ID); len(seats) != 0 {
            t.Fatalf("expected released seats, still holding %v", labels(seats))
        }
    })

    t.Run("unknown code reports not found", func(t *testing.T) {
        svc := newTestService(newFakeStore())
        var notFound *NotFoundError
        if _, err := svc.Check(context.Background(), "GIC0042"); !errors.As(err, &notFound) {
            t.Fatalf("got %v, want NotFoundError", err)
        }
    })
}

func TestServiceAvailability(t *testing.T) {
    store := newFakeStore()
    svc := newTestService(store)

    t.Run("lookup never creates", func(t *testing.T) {
        if _, err := svc.Availability(context.Background(), "Akira", 3, 5); !errors.Is(err, ErrLayoutNotFound) {
            t.Fatalf("got %v, want ErrLayoutNotFound", err)
        }
        if len(store.layouts) != 0 {
            t.Fatalf("availability lookup created a layout")
        }
    })

    t.Run("find-or-create is idempotent and counts free seats", func(t *testing.T) {
        first, err := svc.FindOrCreateLayout(context.Background(), "Akira", 3, 5)
        if err != nil {
            t.Fatalf("find-or-create: %v", err)
        }
        if first.Available != 15 {
            t.Fatalf("available = %d, want 15", first.Available)
        }
        if _, err := svc.FindOrCreateLayout(context.Background(), "Akira", 3, 5); err != nil {
            t.Fatalf("second find-or-create: %v", err)
        }
        if len(store.layouts) != 1 {
            t.Fatalf("expected one layout, got %d", len(store.layouts))
        }

        if _, err := svc.Reserve(context.Background(), ReserveInput{MovieTitle: "Akira", RowCount: 3, SeatsPerRow: 5, Tickets: 4}); err != nil {
            t.Fatalf("reserve: %v", err)
        }
        after, err := svc.Availability(context.Background(), "Akira", 3, 5)
        if err != nil {
            t.Fatalf("availability: %v", err)
        }
        if after.Available != 11 {
            t.Fatalf("available = %d, want 11", after.Available)
        }
    })
}

func TestEvaluateExpiry(t *testing.T) {
    past := testNow.Add(-time.Minute)
    future := testNow.Add(time.Minute)

    cases := []struct {
        name string
        b    model.Booking
        want bool
    }{
        {"pending and overdue", model.Booking{Status: model.StatusPending, ExpiresAt: &past}, true},
        {"pending within window", model.Booking{Status: model.StatusPending, ExpiresAt: &future}, false},
        {"pending without expiry", model.Booking{Status: model.StatusPending}, false},
        {"confirmed never lapses", model.Booking{Status: model.StatusConfirmed, ExpiresAt: &past}, false},
        {"cancelled never lapses", model.Booking{Status: model.StatusCancelled, ExpiresAt: &past}, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            if got := evaluateExpiry(tc.b, testNow); got != tc.want {
                t.Fatalf("evaluateExpiry = %v, want %v", got, tc.want)
            }
        })
    }
}
