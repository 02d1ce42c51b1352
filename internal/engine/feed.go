package engine

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-keepintouch/internal/config"
)

// Generator builds the subscribable iCalendar feed from the people
// collection: yearly birthday events plus one follow-up event per trackable
// person on their next due date.
type Generator struct {
	Clock Clock // Interface for time mocking.

	// FormatSummary and FormatFollowUp let the UI inject localized event
	// titles without the engine importing the i18n layer.
	FormatSummary  func(name string, age int) string
	FormatFollowUp func(name string) string

	// ReminderTrigger, when non-empty, attaches a DISPLAY alarm with this
	// ISO8601 trigger (e.g. "-P1D") to every generated event.
	ReminderTrigger string
}

// Generate renders the feed for the given collection. Malformed entries are
// skipped, never fatal; an empty collection yields a minimal valid calendar.
func (g *Generator) Generate(people []Person) ([]byte, error) {
	start := time.Now()
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Birthdays and due dates are local calendar dates of the person, so all
	// projection happens in local time; only the DTSTAMP is stamped in UTC.
	now := g.Clock.Now()
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	stats := struct{ people, birthdays, followUps int }{len(people), 0, 0}

	for _, p := range people {
		uidBase := feedUID(p)

		if p.Birthday != nil {
			stats.birthdays++
			for _, e := range g.birthdayEvents(p, now, uidBase) {
				e.Props.Set(dtStampProp)
				cal.Children = append(cal.Children, e.Component)
			}
		}

		if e := g.followUpEvent(p, uidBase); e != nil {
			stats.followUps++
			e.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, e.Component)
		}
	}

	if len(cal.Children) == 0 {
		// A bare VCALENDAR keeps subscribed clients from flagging the feed
		// as invalid while the collection is still empty.
		g.logSuccess(stats)
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	log.Debug(config.MsgFeedRebuilt, config.LogKeyDuration, time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func (g *Generator) logSuccess(stats struct{ people, birthdays, followUps int }) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.people),
			slog.Int("birthdays", stats.birthdays),
			slog.Int("follow_ups", stats.followUps),
		),
	)
}

// birthdayEvents generates all-day events for the previous, current and next
// year, so calendar clients scrolling either way see the birthday without an
// immediate refresh. Years before the person was born are skipped.
func (g *Generator) birthdayEvents(p Person, now time.Time, uidBase string) []*ical.Event {
	currentYear := now.Year()
	targetYears := []int{currentYear - 1, currentYear, currentYear + 1}
	loc := now.Location()

	var events []*ical.Event
	for _, y := range targetYears {
		if y < p.Birthday.Year {
			continue
		}

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, y, config.ICalDomain))

		age := y - p.Birthday.Year
		summary := fmt.Sprintf(config.FallbackSummary, p.FullName())
		if g.FormatSummary != nil {
			summary = g.FormatSummary(p.FullName(), age)
		}
		event.Props.SetText(config.PropSummary, summary)

		eventDate := time.Date(y, p.Birthday.Month, p.Birthday.Day, 0, 0, 0, 0, loc)
		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(eventDate)
		event.Props.Set(dtStartProp)

		if g.ReminderTrigger != "" {
			addAlarm(event, g.ReminderTrigger, summary)
		}

		events = append(events, event)
	}
	return events
}

// followUpEvent generates the timed event on the person's next due date, or
// nil when the person carries no cadence data.
func (g *Generator) followUpEvent(p Person, uidBase string) *ical.Event {
	due, ok := NextDue(p)
	if !ok {
		return nil
	}

	loc := g.Clock.Now().Location()
	start := time.Date(due.Year, due.Month, due.Day,
		config.FollowUpHour, config.FollowUpMinute, 0, 0, loc)

	summary := fmt.Sprintf(config.FallbackFollowUp, p.FullName())
	if g.FormatFollowUp != nil {
		summary = g.FormatFollowUp(p.FullName())
	}

	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUIDDue, uidBase, config.ICalDomain))
	event.Props.SetText(config.PropSummary, summary)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDateTime(start)
	event.Props.Set(dtStartProp)

	dtEndProp := ical.NewProp(config.PropDTEnd)
	dtEndProp.SetDateTime(start.Add(config.FollowUpDuration))
	event.Props.Set(dtEndProp)

	if g.ReminderTrigger != "" {
		addAlarm(event, g.ReminderTrigger, summary)
	}
	return event
}

// addAlarm appends a DISPLAY alarm (notification) to the event.
func addAlarm(event *ical.Event, trigger, description string) {
	alarm := ical.NewComponent(config.ICalComponent)
	alarm.Props.SetText(config.PropAction, config.ICalAction)
	alarm.Props.SetText(config.PropDescription, description)

	// Set trigger manually to avoid a "VALUE=TEXT" param.
	triggerProp := ical.NewProp(config.PropTrigger)
	triggerProp.Value = trigger
	alarm.Props.Set(triggerProp)

	event.Children = append(event.Children, alarm)
}

// feedUID derives a stable event UID base from the record identity, so
// subscribed clients keep matching events across refreshes.
func feedUID(p Person) string {
	bday := ""
	if p.Birthday != nil {
		bday = p.Birthday.String()
	}
	input := fmt.Sprintf(config.FormatHashInput, p.ID, bday, config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}
