// Package cli implements the interactive booking client: prompts, an
// API client for the booking service and a seat map renderer.
package cli

import (
    "fmt"
    "strings"

    "github.com/gicinemas/seat-booking/internal/model"
)

const (
    seatGap       = "  " // 2 spaces between seats
    screenBanner  = "S C R E E N"
    rowLabelWidth = 2 // "<row><space>" e.g. "A "
)

// RenderSeatMap draws the hall as text: screen banner on top, far row
// first, '#' for seats taken by others, 'o' for the viewer's own
// seats, '.' for free ones. Own seats win when a label appears in
// both sets.
func RenderSeatMap(rowCount, seatsPerRow int, taken, mine []model.Seat) string {
    others := toLabelSet(taken)
    own := toLabelSet(mine)

    var b strings.Builder
    b.WriteByte('\n')
    renderHeader(&b, seatsPerRow)
    renderGrid(&b, rowCount, seatsPerRow, others, own)
    renderFooter(&b, seatsPerRow)
    return b.String()
}

// seatAreaWidth is the visual width of the seats only: one char per
// seat plus a gap after each but the last.
func seatAreaWidth(seatsPerRow int) int {
    return seatsPerRow + (seatsPerRow-1)*len(seatGap)
}

// screenIndent centers the banner over the seat area.
func screenIndent(seatsPerRow int) int {
    diff := seatAreaWidth(seatsPerRow) - len(screenBanner)
    if diff < 0 {
        diff = 0
    }
    return rowLabelWidth + diff/2
}

// gridExtraIndent pushes the grid right when the banner is wider than
// the seat area.
func gridExtraIndent(seatsPerRow int) int {
    diff := len(screenBanner) - seatAreaWidth(seatsPerRow)
    if diff < 0 {
        diff = 0
    }
    return diff / 2
}

func renderHeader(b *strings.Builder, seatsPerRow int) {
    b.WriteString(strings.Repeat(" ", screenIndent(seatsPerRow)))
    b.WriteString(screenBanner)
    b.WriteByte('\n')

    underlineIndent := rowLabelWidth + gridExtraIndent(seatsPerRow)
    b.WriteString(strings.Repeat(" ", underlineIndent-2))
    b.WriteString("--" + strings.Repeat("-", seatAreaWidth(seatsPerRow)) + "--")
    b.WriteByte('\n')
}

func renderGrid(b *strings.Builder, rowCount, seatsPerRow int, others, own map[string]bool) {
    extra := gridExtraIndent(seatsPerRow)
    for r := rowCount - 1; r >= 0; r-- {
        rowChar := byte('A' + r)
        b.WriteByte(rowChar)
        b.WriteByte(' ')
        b.WriteString(strings.Repeat(" ", extra))
        for c := 1; c <= seatsPerRow; c++ {
            key := fmt.Sprintf("%c%02d", rowChar, c)
            cell := byte('.')
            if others[key] {
                cell = '#'
            }
            if own[key] {
                cell = 'o'
            }
            b.WriteByte(cell)
            if c < seatsPerRow {
                b.WriteString(seatGap)
            }
        }
        b.WriteByte('\n')
    }
}

func renderFooter(b *strings.Builder, seatsPerRow int) {
    b.WriteString(strings.Repeat(" ", rowLabelWidth+gridExtraIndent(seatsPerRow)))

    cellWidth := 1 + len(seatGap) // visual width of one seat column
    for c := 1; c <= seatsPerRow; c++ {
        num := fmt.Sprintf("%d", c)
        b.WriteString(num)
        if c < seatsPerRow {
            if pad := cellWidth - len(num); pad > 0 {
                b.WriteString(strings.Repeat(" ", pad))
            }
        }
    }
    b.WriteByte('\n')
}

func toLabelSet(seats []model.Seat) map[string]bool {
    set := make(map[string]bool, len(seats))
    for _, s := range seats {
        set[strings.ToUpper(s.String())] = true
    }
    return set
}
