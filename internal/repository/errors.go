// Package repository provides MySQL-backed data access for layouts,
// bookings and booked seats. Sentinel errors defined here let higher
// layers distinguish failure scenarios without inspecting driver
// errors themselves. All timestamp fields are stored in UTC.
package repository

import (
    "errors"

    "github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a lookup matches no row. Handlers
// should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique key,
// most importantly the (layout_id, row_label, seat_number) key on
// booked_seats that guards against double booking.
var ErrDuplicate = errors.New("duplicate key")

// isDuplicateKey reports whether err is a MySQL duplicate-entry
// violation (error number 1062).
func isDuplicateKey(err error) bool {
    var me *mysql.MySQLError
    return errors.As(err, &me) && me.Number == 1062
}
