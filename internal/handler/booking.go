package handler

import (
    "context"  // service method contexts
    "errors"   // for errors.Is / errors.As comparisons
    "net/http" // HTTP status codes
    "strings"  // path parameter normalization
    "time"     // formatting expiry timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/gicinemas/seat-booking/internal/allocator"
    "github.com/gicinemas/seat-booking/internal/booking"
    "github.com/gicinemas/seat-booking/internal/model"
)

// BookingAPI is the slice of the booking service the HTTP layer needs.
// Declaring it here keeps handlers testable with a fake. It is
// implemented by *booking.Service.
type BookingAPI interface {
    Reserve(ctx context.Context, in booking.ReserveInput) (booking.ReserveResult, error)
    ChangeSeats(ctx context.Context, code string, start model.Seat) (booking.ReserveResult, error)
    Confirm(ctx context.Context, code string) (booking.ConfirmResult, error)
    Cancel(ctx context.Context, code string) error
    Check(ctx context.Context, code string) (booking.CheckResult, error)
}

// BookingHandler exposes the booking lifecycle over HTTP. It owns no
// business rules: every decision is delegated to the service and only
// translated into status codes here.
type BookingHandler struct {
    svc BookingAPI
}

// NewBookingHandler constructs a BookingHandler. The service must be non-nil.
func NewBookingHandler(svc BookingAPI) *BookingHandler {
    if svc == nil {
        panic("nil service passed to NewBookingHandler")
    }
    return &BookingHandler{svc: svc}
}

// seatLabels renders seat positions as "A03"-style labels for responses.
func seatLabels(seats []model.Seat) []string {
    out := make([]string, 0, len(seats))
    for _, s := range seats {
        out = append(out, s.String())
    }
    return out
}

// writeServiceError maps booking/allocator errors onto HTTP responses:
// invalid input 400, unknown booking or layout 404, wrong state or
// seat conflict 409, lapsed hold 410, not enough free seats 422.
func writeServiceError(c echo.Context, err error) error {
    var (
        notFound     *booking.NotFoundError
        notPending   *booking.NotPendingError
        expired      *booking.ExpiredError
        insufficient *allocator.InsufficientSeatsError
    )
    switch {
    case errors.Is(err, booking.ErrInvalidLayout),
        errors.Is(err, booking.ErrInvalidTicketCount),
        errors.Is(err, booking.ErrNoHeldSeats),
        errors.Is(err, allocator.ErrInvalidStartSeat),
        errors.Is(err, allocator.ErrInvalidCoordinate):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.As(err, &notFound), errors.Is(err, booking.ErrLayoutNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    case errors.As(err, &notPending):
        return c.JSON(http.StatusConflict, echo.Map{
            "error":  err.Error(),
            "status": string(notPending.Status),
        })
    case errors.Is(err, booking.ErrSeatJustTaken):
        return c.JSON(http.StatusConflict, echo.Map{"error": "seats were just taken, please retry"})
    case errors.As(err, &expired):
        return c.JSON(http.StatusGone, echo.Map{"error": err.Error()})
    case errors.As(err, &insufficient):
        return c.JSON(http.StatusUnprocessableEntity, echo.Map{
            "error":     err.Error(),
            "available": insufficient.Available,
            "requested": insufficient.Requested,
        })
    default:
        c.Logger().Errorf("booking: %v", err)
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
    }
}

// holdResponse is the common body for reserve and seat-change replies.
func holdResponse(res booking.ReserveResult) echo.Map {
    return echo.Map{
        "booking_code": res.Code,
        "status":       string(res.Status),
        "seats":        seatLabels(res.Seats),
        "expires_at":   res.ExpiresAt.UTC().Format(time.RFC3339),
    }
}

// Reserve handles POST /v1/bookings. The request body identifies the
// layout and the number of tickets; the response carries the booking
// code, the held seats and the hold deadline.
func (h *BookingHandler) Reserve(c echo.Context) error {
    var body struct {
        MovieTitle  string `json:"movie_title"`
        RowCount    int    `json:"row_count"`
        SeatsPerRow int    `json:"seats_per_row"`
        Tickets     int    `json:"tickets"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.svc.Reserve(c.Request().Context(), booking.ReserveInput{
        MovieTitle:  body.MovieTitle,
        RowCount:    body.RowCount,
        SeatsPerRow: body.SeatsPerRow,
        Tickets:     body.Tickets,
    })
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusCreated, holdResponse(res))
}

// ChangeSeats handles POST /v1/bookings/:code/seats. The body names an
// anchor seat; the booking's seats are re-planned from there and the
// hold window rolls forward.
func (h *BookingHandler) ChangeSeats(c echo.Context) error {
    code := bookingCode(c)
    var body struct {
        RowLabel   string `json:"row_label"`
        SeatNumber int    `json:"seat_number"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    res, err := h.svc.ChangeSeats(c.Request().Context(), code, model.Seat{
        RowLabel:   body.RowLabel,
        SeatNumber: body.SeatNumber,
    })
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, holdResponse(res))
}

// Confirm handles POST /v1/bookings/:code/confirm.
func (h *BookingHandler) Confirm(c echo.Context) error {
    res, err := h.svc.Confirm(c.Request().Context(), bookingCode(c))
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "booking_code": res.Code,
        "status":       string(model.StatusConfirmed),
        "seats":        seatLabels(res.Seats),
    })
}

// Cancel handles DELETE /v1/bookings/:code.
func (h *BookingHandler) Cancel(c echo.Context) error {
    if err := h.svc.Cancel(c.Request().Context(), bookingCode(c)); err != nil {
        return writeServiceError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Check handles GET /v1/bookings/:code. Own seats are listed only once
// the booking is confirmed; other bookings' held seats come back
// anonymously so a client can render the seat map.
func (h *BookingHandler) Check(c echo.Context) error {
    res, err := h.svc.Check(c.Request().Context(), bookingCode(c))
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "booking_code": res.Code,
        "status":       string(res.Status),
        "seats":        seatLabels(res.Seats),
        "other_seats":  seatLabels(res.Others),
    })
}

func bookingCode(c echo.Context) string {
    return strings.ToUpper(strings.TrimSpace(c.Param("code")))
}
