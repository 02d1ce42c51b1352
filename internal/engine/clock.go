package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Core operations never read the system clock directly: "today" always
// arrives through a Clock owned by the caller.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Today truncates the clock's current time to its calendar date.
func Today(c Clock) Date {
	return DateOf(c.Now())
}
