package engine

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/tartampluch/go-keepintouch/internal/config"
)

// ErrMissingBirthday is returned when a birthday reminder is requested for a
// person without a birthday. The UI reports it and prompts the user; it is
// never fatal.
var ErrMissingBirthday = errors.New(config.ErrNoBirthday)

// LinkBuilder constructs external calendar-provider event URLs. It is a pure
// component: no side effects, no network access, and identical input always
// yields a byte-identical URL. Opening the link is the caller's job.
type LinkBuilder struct {
	// Location anchors the fixed 10:00 wall time of follow-up events before
	// the UTC serialization. Defaults to the system location.
	Location *time.Location
}

// NewLinkBuilder returns a builder using the system time zone.
func NewLinkBuilder() *LinkBuilder {
	return &LinkBuilder{Location: time.Local}
}

// BirthdayEventURL builds a yearly-recurring all-day event URL for the
// person's birthday. The serialized date keeps the stored birthday's own
// year; the yearly recurrence rule makes the year irrelevant to the provider.
func (b *LinkBuilder) BirthdayEventURL(p Person) (string, error) {
	if p.Birthday == nil {
		return "", ErrMissingBirthday
	}

	day := p.Birthday.AllDay()
	return b.render(url.Values{
		config.CalParamAction:  {config.CalActionTemplate},
		config.CalParamText:    {fmt.Sprintf(config.TitleBirthday, p.FullName())},
		config.CalParamDates:   {day + config.CalDatesSeparator + day},
		config.CalParamDetails: {config.DetailsBirthday},
		config.CalParamRecur:   {config.CalRecurYearly},
	}), nil
}

// FollowUpEventURL builds a single 30-minute event on the next due date
// (LastSeen + MaxDaysBetween), starting at the fixed local follow-up time.
// It returns false when the person carries no cadence data.
func (b *LinkBuilder) FollowUpEventURL(p Person) (string, bool) {
	due, ok := NextDue(p)
	if !ok {
		return "", false
	}

	loc := b.Location
	if loc == nil {
		loc = time.Local
	}
	start := time.Date(due.Year, due.Month, due.Day,
		config.FollowUpHour, config.FollowUpMinute, 0, 0, loc)
	end := start.Add(config.FollowUpDuration)

	return b.render(url.Values{
		config.CalParamAction:  {config.CalActionTemplate},
		config.CalParamText:    {fmt.Sprintf(config.TitleFollowUp, p.FullName())},
		config.CalParamDates:   {TimedUTC(start) + config.CalDatesSeparator + TimedUTC(end)},
		config.CalParamDetails: {config.DetailsFollowUp},
	}), true
}

// render assembles the provider template URL. url.Values encodes parameters
// in sorted key order, which keeps the output deterministic.
func (b *LinkBuilder) render(params url.Values) string {
	return config.CalendarRenderURL + "?" + params.Encode()
}
