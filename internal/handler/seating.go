package handler

import (
    "context"  // service method contexts
    "net/http" // HTTP status codes
    "strconv"  // parsing query parameters

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/gicinemas/seat-booking/internal/booking"
)

// SeatingAPI is the layout slice of the booking service used by the
// seating endpoints. It is implemented by *booking.Service.
type SeatingAPI interface {
    FindOrCreateLayout(ctx context.Context, title string, rowCount, seatsPerRow int) (booking.Availability, error)
    Availability(ctx context.Context, title string, rowCount, seatsPerRow int) (booking.Availability, error)
}

// SeatingHandler exposes layout creation and availability lookups.
type SeatingHandler struct {
    svc SeatingAPI
}

// NewSeatingHandler constructs a SeatingHandler. The service must be non-nil.
func NewSeatingHandler(svc SeatingAPI) *SeatingHandler {
    if svc == nil {
        panic("nil service passed to NewSeatingHandler")
    }
    return &SeatingHandler{svc: svc}
}

func availabilityResponse(a booking.Availability) echo.Map {
    return echo.Map{
        "movie_title":     a.MovieTitle,
        "row_count":       a.RowCount,
        "seats_per_row":   a.SeatsPerRow,
        "available_seats": a.Available,
    }
}

// Create handles POST /v1/seating. It registers the layout when it is
// new, returns the existing one otherwise, and reports current
// availability either way.
func (h *SeatingHandler) Create(c echo.Context) error {
    var body struct {
        MovieTitle  string `json:"movie_title"`
        RowCount    int    `json:"row_count"`
        SeatsPerRow int    `json:"seats_per_row"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    a, err := h.svc.FindOrCreateLayout(c.Request().Context(), body.MovieTitle, body.RowCount, body.SeatsPerRow)
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, availabilityResponse(a))
}

// Availability handles GET /v1/seating. It is a pure read keyed on the
// movie_title, row_count and seats_per_row query parameters: an
// unknown layout is a 404 and is never created.
func (h *SeatingHandler) Availability(c echo.Context) error {
    title := c.QueryParam("movie_title")
    rowCount, err := strconv.Atoi(c.QueryParam("row_count"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid row_count"})
    }
    seatsPerRow, err := strconv.Atoi(c.QueryParam("seats_per_row"))
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seats_per_row"})
    }
    a, err := h.svc.Availability(c.Request().Context(), title, rowCount, seatsPerRow)
    if err != nil {
        return writeServiceError(c, err)
    }
    return c.JSON(http.StatusOK, availabilityResponse(a))
}
