package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

// TestNextOccurrence covers the temporal core of the upcoming list: standard
// dates, the end-of-year boundary and leap-day normalization.
func TestNextOccurrence(t *testing.T) {
	// Reference "Now": June 15th, 2025 (non-leap year).
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthday     engine.Date
		expectedDate time.Time
		expectedAge  int
	}{
		{
			name:         "birthday already passed this year",
			birthday:     engine.NewDate(1990, time.January, 1),
			expectedDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  36,
		},
		{
			name:         "birthday still ahead this year",
			birthday:     engine.NewDate(1990, time.December, 31),
			expectedDate: time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "birthday is today",
			birthday:     engine.NewDate(1990, time.June, 15),
			expectedDate: time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC),
			expectedAge:  35,
		},
		{
			name:         "leapling in a non-leap year normalizes to March 1",
			birthday:     engine.NewDate(2000, time.February, 29),
			expectedDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			expectedAge:  26,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, age := engine.NextOccurrence(now, tt.birthday)
			assert.Equal(t, tt.expectedDate, next)
			assert.Equal(t, tt.expectedAge, age)
		})
	}
}

// TestNextOccurrence_LeapYearContext: in a leap year Feb 29 is preserved.
func TestNextOccurrence_LeapYearContext(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	next, _ := engine.NextOccurrence(now, engine.NewDate(2000, time.February, 29))
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), next)
}

func TestUpcomingBirthdays_SortedByOccurrence(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	people := []engine.Person{
		{ID: 1, FirstName: "Past", Birthday: datePtr(engine.NewDate(1990, time.January, 1))},
		{ID: 2, FirstName: "Future", Birthday: datePtr(engine.NewDate(1990, time.December, 31))},
		{ID: 3, FirstName: "Today", Birthday: datePtr(engine.NewDate(1990, time.June, 1))},
		{ID: 4, FirstName: "NoBirthday"},
	}

	rows := engine.UpcomingBirthdays(people, now)

	assert.Len(t, rows, 3, "people without a birthday are excluded")
	assert.Equal(t, int64(3), rows[0].Person.ID, "today sorts first")
	assert.Equal(t, int64(2), rows[1].Person.ID)
	assert.Equal(t, int64(1), rows[2].Person.ID, "already-passed birthday sorts last (next year)")
}
