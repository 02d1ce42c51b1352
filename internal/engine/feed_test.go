package engine_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func TestGenerate_BirthdayYearRange(t *testing.T) {
	// Scenario: events for previous, current and next year, so calendar
	// clients scrolling either way stay populated.
	people := []engine.Person{{
		ID:        1,
		FirstName: "Range",
		LastName:  "Test",
		Birthday:  datePtr(engine.NewDate(1990, time.December, 31)),
	}}

	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	ics, err := gen.Generate(people)
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20241231", "previous year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20251231", "current year")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20261231", "next year")
	assert.Equal(t, 3, strings.Count(icsStr, "BEGIN:VEVENT"))
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Range Test")
}

func TestGenerate_SkipsYearsBeforeBirth(t *testing.T) {
	// Born mid-2025, generating at the start of 2025: no 2024 event.
	people := []engine.Person{{
		ID:        2,
		FirstName: "Baby",
		Birthday:  datePtr(engine.NewDate(2025, time.May, 1)),
	}}

	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		FormatSummary: func(name string, age int) string {
			if age == 0 {
				return "Birthday: " + name + " (Birth)"
			}
			return "Birthday: " + name
		},
	}

	ics, err := gen.Generate(people)
	require.NoError(t, err)

	icsStr := string(ics)
	assert.NotContains(t, icsStr, "DTSTART;VALUE=DATE:20240501", "no event before birth")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20250501")
	assert.Contains(t, icsStr, "DTSTART;VALUE=DATE:20260501")
	assert.Contains(t, icsStr, "SUMMARY:Birthday: Baby (Birth)")
	assert.Equal(t, 2, strings.Count(icsStr, "BEGIN:VEVENT"))
}

func TestGenerate_FollowUpEvent(t *testing.T) {
	// A trackable person yields a timed due-date event: Jan 1 + 30 days at
	// 10:00-10:30.
	people := []engine.Person{{
		ID:             3,
		FirstName:      "Ada",
		LastName:       "Lovelace",
		LastSeen:       datePtr(engine.NewDate(2024, time.January, 1)),
		MaxDaysBetween: intPtr(30),
	}}

	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	ics, err := gen.Generate(people)
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "SUMMARY:Reach out to Ada Lovelace")
	assert.Contains(t, icsStr, "DTSTART:20240131T100000Z")
	assert.Contains(t, icsStr, "DTEND:20240131T103000Z")
	assert.Equal(t, 1, strings.Count(icsStr, "BEGIN:VEVENT"), "no birthday set, only the follow-up")
}

func TestGenerate_NoFollowUpWithoutCadenceData(t *testing.T) {
	people := []engine.Person{{
		ID:        4,
		FirstName: "Charles",
		LastSeen:  datePtr(engine.NewDate(2024, time.January, 1)),
	}}

	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	}

	ics, err := gen.Generate(people)
	require.NoError(t, err)
	assert.NotContains(t, string(ics), "BEGIN:VEVENT")
}

func TestGenerate_WithReminderTrigger(t *testing.T) {
	people := []engine.Person{{
		ID:        5,
		FirstName: "Alarm",
		Birthday:  datePtr(engine.NewDate(1990, time.January, 1)),
	}}

	gen := &engine.Generator{
		Clock:           MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		ReminderTrigger: "-P1D",
	}

	ics, err := gen.Generate(people)
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VALARM")
	assert.Contains(t, icsStr, "TRIGGER:-P1D")
	assert.Contains(t, icsStr, "ACTION:DISPLAY")
}

func TestGenerate_EmptyCollection(t *testing.T) {
	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	ics, err := gen.Generate(nil)
	require.NoError(t, err)

	icsStr := string(ics)
	assert.Contains(t, icsStr, "BEGIN:VCALENDAR", "empty feed is still a valid calendar")
	assert.NotContains(t, icsStr, "BEGIN:VEVENT")
}

func TestGenerate_StableUIDs(t *testing.T) {
	people := []engine.Person{{
		ID:        6,
		FirstName: "Stable",
		Birthday:  datePtr(engine.NewDate(1990, time.June, 15)),
	}}

	gen := &engine.Generator{
		Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
	}

	first, err := gen.Generate(people)
	require.NoError(t, err)
	second, err := gen.Generate(people)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second), "UIDs derive from record identity, not randomness")
}
