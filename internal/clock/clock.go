// Package clock abstracts time so the booking lifecycle can be tested
// against a fixed instant.
package clock

import "time"

// Clock supplies the current time to services.
type Clock interface {
    Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now in UTC.
func NewSystem() Clock {
    return systemClock{}
}

func (systemClock) Now() time.Time {
    return time.Now().UTC()
}

type fixedClock struct {
    now time.Time
}

// NewFixed returns a clock pinned to the given instant, for tests.
func NewFixed(t time.Time) Clock {
    return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
    return f.now
}
