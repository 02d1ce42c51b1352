package engine_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := engine.ParseDate("1990-12-10")
	require.NoError(t, err)

	assert.Equal(t, engine.NewDate(1990, time.December, 10), d)
	assert.Equal(t, "1990-12-10", d.String())
	assert.Equal(t, "19901210", d.AllDay())
}

func TestParseDate_Invalid(t *testing.T) {
	for _, bad := range []string{"", "not-a-date", "10/12/1990", "1990-13-01"} {
		_, err := engine.ParseDate(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := engine.NewDate(2024, time.February, 29)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-02-29"`, string(data))

	var back engine.Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)
}

func TestDate_AddDays_Normalizes(t *testing.T) {
	d := engine.NewDate(2024, time.January, 31)
	assert.Equal(t, engine.NewDate(2024, time.February, 1), d.AddDays(1))

	// Leap year: Feb 28 + 1 stays in February.
	assert.Equal(t, engine.NewDate(2024, time.February, 29), engine.NewDate(2024, time.February, 28).AddDays(1))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b engine.Date
		want int
	}{
		{"same day", engine.NewDate(2024, time.June, 1), engine.NewDate(2024, time.June, 1), 0},
		{"one day", engine.NewDate(2024, time.June, 1), engine.NewDate(2024, time.June, 2), 1},
		{"across a month", engine.NewDate(2024, time.January, 1), engine.NewDate(2024, time.January, 31), 30},
		{"across a leap day", engine.NewDate(2024, time.February, 28), engine.NewDate(2024, time.March, 1), 2},
		{"across a DST transition", engine.NewDate(2024, time.March, 30), engine.NewDate(2024, time.April, 1), 2},
		{"reversed is negative", engine.NewDate(2024, time.June, 2), engine.NewDate(2024, time.June, 1), -1},
		{"across a year", engine.NewDate(2023, time.December, 31), engine.NewDate(2024, time.January, 1), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, engine.DaysBetween(tt.a, tt.b))
		})
	}
}

func TestTimedUTC(t *testing.T) {
	// A non-UTC instant serializes as its UTC equivalent.
	loc := time.FixedZone("UTC+2", 2*60*60)
	instant := time.Date(2024, 1, 31, 10, 0, 0, 0, loc)

	assert.Equal(t, "20240131T080000Z", engine.TimedUTC(instant))
}
