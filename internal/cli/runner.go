package cli

import (
    "bufio"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/gicinemas/seat-booking/internal/model"
)

// layout is the seating definition the session works against.
type layout struct {
    movieTitle  string
    rowCount    int
    seatsPerRow int
}

// Runner drives the interactive booking session: define a layout once,
// then loop between booking tickets and checking bookings.
type Runner struct {
    in     *bufio.Scanner
    out    io.Writer
    client *Client
}

// NewRunner wires the prompt loop to the given streams and API client.
func NewRunner(in io.Reader, out io.Writer, client *Client) *Runner {
    return &Runner{
        in:     bufio.NewScanner(in),
        out:    out,
        client: client,
    }
}

// Run is the session entrypoint. It returns when the user exits or
// input is exhausted.
func (r *Runner) Run() error {
    lay, ok := r.promptLayout()
    if !ok {
        return nil
    }
    if _, err := r.client.CreateLayout(lay.movieTitle, lay.rowCount, lay.seatsPerRow); err != nil {
        return fmt.Errorf("create layout: %w", err)
    }
    r.menuLoop(lay)
    return nil
}

func (r *Runner) menuLoop(lay layout) {
    available := 0
    for {
        if a, err := r.client.Availability(lay.movieTitle, lay.rowCount, lay.seatsPerRow); err == nil {
            available = a.Available
        } else {
            fmt.Fprintf(r.out, "(couldn't refresh availability: %v)\n", err)
        }

        fmt.Fprintf(r.out, "\nWelcome to GIC Cinemas\n")
        fmt.Fprintf(r.out, "[1] Book tickets for %s (%d seats available)\n", lay.movieTitle, available)
        fmt.Fprintf(r.out, "[2] Check bookings\n")
        fmt.Fprintf(r.out, "[3] Exit\n")
        fmt.Fprintf(r.out, "Please enter your selection:\n> ")

        line, ok := r.readLine()
        if !ok {
            return
        }
        switch strings.TrimSpace(line) {
        case "1":
            r.handleBooking(lay)
        case "2":
            r.handleCheck(lay)
        case "3":
            fmt.Fprintf(r.out, "\nThank you for using GIC Cinemas system. Bye!\n")
            return
        default:
            fmt.Fprintf(r.out, "Invalid option. Try again:\n")
        }
    }
}

func (r *Runner) handleBooking(lay layout) {
    tickets, ok := r.promptTickets()
    if !ok {
        return
    }

    hold, err := r.client.Reserve(lay.movieTitle, lay.rowCount, lay.seatsPerRow, tickets)
    if err != nil {
        fmt.Fprintf(r.out, "Could not reserve: %v\n", err)
        return
    }

    fmt.Fprintf(r.out, "\nSuccessfully reserved %d %s tickets.\n", tickets, lay.movieTitle)
    fmt.Fprintf(r.out, "Booking id: %s\nSelected seats:\n", hold.BookingCode)
    r.renderHold(lay, hold)

    r.changeLoop(lay, hold)
}

// changeLoop lets the user re-anchor the held seats until they accept
// the selection with a blank line, which confirms the booking.
func (r *Runner) changeLoop(lay layout, hold Hold) {
    for {
        fmt.Fprintf(r.out, "\nEnter blank to accept seat selection, or enter new seating position:\n> ")
        line, ok := r.readLine()
        if !ok {
            return
        }
        line = strings.TrimSpace(line)
        if line == "" {
            if err := r.client.Confirm(hold.BookingCode); err != nil {
                fmt.Fprintf(r.out, "Confirmation failed: %v\n", err)
            } else {
                fmt.Fprintf(r.out, "\nBooking id: %s confirmed.\n", hold.BookingCode)
            }
            return
        }

        anchor, err := ParseSeatLabel(line)
        if err != nil || !withinLayout(anchor, lay) {
            fmt.Fprintf(r.out, "Invalid seat label. Use like B03 (row letter + digits within bounds).\n")
            continue
        }
        next, err := r.client.ChangeSeats(hold.BookingCode, anchor)
        if err != nil {
            fmt.Fprintf(r.out, "Could not update seats. Try another position.\n")
            continue
        }
        hold = next
        fmt.Fprintf(r.out, "\nBooking id: %s\nSelected seats:\n", hold.BookingCode)
        r.renderHold(lay, hold)
    }
}

func (r *Runner) handleCheck(lay layout) {
    for {
        fmt.Fprintf(r.out, "\nEnter booking id, or enter blank to go back to main menu:\n> ")
        line, ok := r.readLine()
        if !ok {
            return
        }
        code := strings.TrimSpace(line)
        if code == "" {
            return
        }

        view, err := r.client.Check(code)
        if err == ErrBookingNotFound {
            fmt.Fprintf(r.out, "\nNo booking found for %s.\n", code)
            continue
        }
        if err != nil {
            fmt.Fprintf(r.out, "Unable to load booking: %v\n", err)
            continue
        }
        fmt.Fprintf(r.out, "\nBooking id: %s\nSelected seats:\n", view.BookingCode)
        fmt.Fprint(r.out, RenderSeatMap(lay.rowCount, lay.seatsPerRow,
            ParseSeatLabels(view.OtherSeats), ParseSeatLabels(view.Seats)))
    }
}

func (r *Runner) renderHold(lay layout, hold Hold) {
    // The reserve response does not echo other bookings' seats; the
    // map distinguishes only the fresh hold.
    fmt.Fprint(r.out, RenderSeatMap(lay.rowCount, lay.seatsPerRow, nil, ParseSeatLabels(hold.Seats)))
}

func (r *Runner) promptLayout() (layout, bool) {
    for {
        fmt.Fprintf(r.out, "\nPlease define movie title and seating map in [Title] [Row] [SeatsPerRow] format:\n> ")
        line, ok := r.readLine()
        if !ok {
            return layout{}, false
        }
        tokens := strings.Fields(line)
        if len(tokens) < 3 {
            fmt.Fprintf(r.out, "Invalid input. Please enter: [Title] [Rows] [SeatsPerRow].\n")
            continue
        }
        rowCount, err1 := strconv.Atoi(tokens[len(tokens)-2])
        seatsPerRow, err2 := strconv.Atoi(tokens[len(tokens)-1])
        if err1 != nil || err2 != nil {
            fmt.Fprintf(r.out, "Rows and Seats must be numbers.\n")
            continue
        }
        if rowCount < 1 || rowCount > model.MaxRowCount || seatsPerRow < 1 || seatsPerRow > model.MaxSeatsPerRow {
            fmt.Fprintf(r.out, "Row must be 1-%d and Seats/Row 1-%d.\n", model.MaxRowCount, model.MaxSeatsPerRow)
            continue
        }
        title := strings.Join(tokens[:len(tokens)-2], " ")
        return layout{movieTitle: title, rowCount: rowCount, seatsPerRow: seatsPerRow}, true
    }
}

func (r *Runner) promptTickets() (int, bool) {
    for {
        fmt.Fprintf(r.out, "\nEnter number of tickets to book, or enter blank to go back to main menu:\n> ")
        line, ok := r.readLine()
        if !ok {
            return 0, false
        }
        line = strings.TrimSpace(line)
        if line == "" {
            return 0, false
        }
        n, err := strconv.Atoi(line)
        if err != nil {
            fmt.Fprintf(r.out, "Please enter a valid integer.\n")
            continue
        }
        if n <= 0 {
            fmt.Fprintf(r.out, "Please enter a positive integer.\n")
            continue
        }
        return n, true
    }
}

func withinLayout(s model.Seat, lay layout) bool {
    if len(s.RowLabel) != 1 {
        return false
    }
    row := int(s.RowLabel[0] - 'A')
    return row >= 0 && row < lay.rowCount && s.SeatNumber >= 1 && s.SeatNumber <= lay.seatsPerRow
}

func (r *Runner) readLine() (string, bool) {
    if !r.in.Scan() {
        return "", false
    }
    return r.in.Text(), true
}
