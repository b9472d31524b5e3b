package cli

import (
    "bytes"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "net/http"
    "net/url"
    "regexp"
    "strconv"
    "strings"
    "time"

    "github.com/gicinemas/seat-booking/internal/model"
)

// ErrBookingNotFound is returned by Check when the server reports 404.
var ErrBookingNotFound = errors.New("booking not found")

// Client talks to the booking service over HTTP.
type Client struct {
    baseURL string
    http    *http.Client
}

// NewClient returns a Client for the given base URL, e.g.
// "http://localhost:8080".
func NewClient(baseURL string) *Client {
    return &Client{
        baseURL: strings.TrimRight(baseURL, "/"),
        http:    &http.Client{Timeout: 10 * time.Second},
    }
}

// Availability mirrors the seating endpoints' response body.
type Availability struct {
    MovieTitle  string `json:"movie_title"`
    RowCount    int    `json:"row_count"`
    SeatsPerRow int    `json:"seats_per_row"`
    Available   int    `json:"available_seats"`
}

// Hold mirrors the reserve and change-seats response bodies.
type Hold struct {
    BookingCode string   `json:"booking_code"`
    Status      string   `json:"status"`
    Seats       []string `json:"seats"`
    ExpiresAt   string   `json:"expires_at"`
}

// BookingView mirrors the check response body.
type BookingView struct {
    BookingCode string   `json:"booking_code"`
    Status      string   `json:"status"`
    Seats       []string `json:"seats"`
    OtherSeats  []string `json:"other_seats"`
}

type apiError struct {
    Error string `json:"error"`
}

// do sends the request and decodes a 2xx JSON body into out. Non-2xx
// responses are turned into errors carrying the server's message.
func (c *Client) do(method, path string, body, out interface{}) (int, error) {
    var rdr io.Reader
    if body != nil {
        bs, err := json.Marshal(body)
        if err != nil {
            return 0, err
        }
        rdr = bytes.NewReader(bs)
    }
    req, err := http.NewRequest(method, c.baseURL+path, rdr)
    if err != nil {
        return 0, err
    }
    if body != nil {
        req.Header.Set("Content-Type", "application/json")
    }
    resp, err := c.http.Do(req)
    if err != nil {
        return 0, err
    }
    defer resp.Body.Close()

    if resp.StatusCode >= 300 {
        var ae apiError
        _ = json.NewDecoder(resp.Body).Decode(&ae)
        if ae.Error == "" {
            ae.Error = resp.Status
        }
        return resp.StatusCode, errors.New(ae.Error)
    }
    if out != nil && resp.StatusCode != http.StatusNoContent {
        if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
            return resp.StatusCode, err
        }
    }
    return resp.StatusCode, nil
}

// CreateLayout registers (or fetches) a layout and returns its
// availability.
func (c *Client) CreateLayout(title string, rowCount, seatsPerRow int) (Availability, error) {
    var out Availability
    _, err := c.do(http.MethodPost, "/v1/seating", map[string]interface{}{
        "movie_title":   title,
        "row_count":     rowCount,
        "seats_per_row": seatsPerRow,
    }, &out)
    return out, err
}

// Availability fetches the free seat count of an existing layout.
func (c *Client) Availability(title string, rowCount, seatsPerRow int) (Availability, error) {
    q := url.Values{}
    q.Set("movie_title", title)
    q.Set("row_count", strconv.Itoa(rowCount))
    q.Set("seats_per_row", strconv.Itoa(seatsPerRow))
    var out Availability
    _, err := c.do(http.MethodGet, "/v1/seating?"+q.Encode(), nil, &out)
    return out, err
}

// Reserve holds tickets and returns the pending booking.
func (c *Client) Reserve(title string, rowCount, seatsPerRow, tickets int) (Hold, error) {
    var out Hold
    _, err := c.do(http.MethodPost, "/v1/bookings", map[string]interface{}{
        "movie_title":   title,
        "row_count":     rowCount,
        "seats_per_row": seatsPerRow,
        "tickets":       tickets,
    }, &out)
    return out, err
}

// ChangeSeats re-plans a pending booking's seats from the anchor seat.
func (c *Client) ChangeSeats(code string, anchor model.Seat) (Hold, error) {
    var out Hold
    _, err := c.do(http.MethodPost, "/v1/bookings/"+url.PathEscape(code)+"/seats", map[string]interface{}{
        "row_label":   anchor.RowLabel,
        "seat_number": anchor.SeatNumber,
    }, &out)
    return out, err
}

// Confirm finalizes a pending booking.
func (c *Client) Confirm(code string) error {
    _, err := c.do(http.MethodPost, "/v1/bookings/"+url.PathEscape(code)+"/confirm", nil, nil)
    return err
}

// Check fetches a booking's own seats and everyone else's held seats.
func (c *Client) Check(code string) (BookingView, error) {
    var out BookingView
    status, err := c.do(http.MethodGet, "/v1/bookings/"+url.PathEscape(code), nil, &out)
    if status == http.StatusNotFound {
        return BookingView{}, ErrBookingNotFound
    }
    return out, err
}

var seatLabelRe = regexp.MustCompile(`^([A-Z])0*([0-9]+)$`)

// ParseSeatLabel turns a label like "B03" (case-insensitive, leading
// zeros allowed) into a seat position.
func ParseSeatLabel(label string) (model.Seat, error) {
    m := seatLabelRe.FindStringSubmatch(strings.ToUpper(strings.TrimSpace(label)))
    if m == nil {
        return model.Seat{}, fmt.Errorf("invalid seat label %q", label)
    }
    n, err := strconv.Atoi(m[2])
    if err != nil || n < 1 {
        return model.Seat{}, fmt.Errorf("invalid seat label %q", label)
    }
    return model.Seat{RowLabel: m[1], SeatNumber: n}, nil
}

// ParseSeatLabels converts a list of labels, skipping any that do not
// parse. Server responses are trusted to be well-formed.
func ParseSeatLabels(labels []string) []model.Seat {
    seats := make([]model.Seat, 0, len(labels))
    for _, l := range labels {
        if s, err := ParseSeatLabel(l); err == nil {
            seats = append(seats, s)
        }
    }
    return seats
}
