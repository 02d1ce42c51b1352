package engine

import (
	"errors"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// Date is a calendar date with day granularity and no time zone.
// People records only ever care about the day a thing happened, never the
// time of day, so the zero-cost struct keeps DST and zone offsets out of
// every comparison.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate constructs a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// DateOf truncates a time.Time to its calendar date in that time's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate parses the storage form "2006-01-02".
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(config.DateFormatFullDash, value)
	if err != nil {
		return Date{}, errors.New(config.ErrDateParse)
	}
	return DateOf(t), nil
}

// String returns the storage form "2006-01-02".
func (d Date) String() string {
	return d.Midnight(time.UTC).Format(config.DateFormatFullDash)
}

// Midnight returns the instant at 00:00:00 of this date in the given location.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the date n whole days later.
// Overflow is normalized by the time package (Jan 31 + 1 = Feb 1).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Midnight(time.UTC).AddDate(0, 0, n))
}

// AllDay serializes the date in the provider's all-day basic form (20060102).
func (d Date) AllDay() string {
	return d.Midnight(time.UTC).Format(config.DateFormatAllDay)
}

// MarshalJSON encodes the date as a "2006-01-02" string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON decodes a "2006-01-02" string.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.New(config.ErrDateParse)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DaysBetween returns the count of whole calendar days from a to b.
// Both dates are anchored at midnight UTC before subtracting, so the result
// is immune to daylight-saving transitions and time-of-day noise.
func DaysBetween(a, b Date) int {
	ua := a.Midnight(time.UTC)
	ub := b.Midnight(time.UTC)
	return int(ub.Sub(ua).Hours() / config.HoursPerDay)
}

// TimedUTC serializes an instant in the provider's timed basic form
// (20060102T150405Z), always in UTC.
func TimedUTC(t time.Time) string {
	return t.UTC().Format(config.DateFormatTimedUTC)
}
