package engine_test

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-keepintouch/internal/config"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func utcLinkBuilder() *engine.LinkBuilder {
	return &engine.LinkBuilder{Location: time.UTC}
}

func TestBirthdayEventURL(t *testing.T) {
	p := engine.Person{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Birthday:  datePtr(engine.NewDate(1990, time.December, 10)),
	}

	raw, err := utcLinkBuilder().BirthdayEventURL(p)
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "calendar.google.com", parsed.Host)

	q := parsed.Query()
	assert.Equal(t, config.CalActionTemplate, q.Get(config.CalParamAction))
	assert.Equal(t, "🎂 Ada Lovelace's Birthday", q.Get(config.CalParamText))
	assert.Equal(t, "19901210/19901210", q.Get(config.CalParamDates), "stored birthday's own year on both ends")
	assert.Equal(t, config.DetailsBirthday, q.Get(config.CalParamDetails))
	assert.Equal(t, "RRULE:FREQ=YEARLY", q.Get(config.CalParamRecur))
}

func TestBirthdayEventURL_MissingBirthday(t *testing.T) {
	_, err := utcLinkBuilder().BirthdayEventURL(engine.Person{FirstName: "Ada"})

	require.Error(t, err)
	assert.ErrorIs(t, err, engine.ErrMissingBirthday)
}

// TestBirthdayEventURL_NameComposition: empty name components are omitted,
// the remainder joined by a single space; middle names never appear.
func TestBirthdayEventURL_NameComposition(t *testing.T) {
	tests := []struct {
		name      string
		person    engine.Person
		wantTitle string
	}{
		{
			"first and last",
			engine.Person{FirstName: "Ada", LastName: "Lovelace"},
			"🎂 Ada Lovelace's Birthday",
		},
		{
			"first only",
			engine.Person{FirstName: "Ada"},
			"🎂 Ada's Birthday",
		},
		{
			"middle name excluded",
			engine.Person{FirstName: "Ada", MiddleName: "King", LastName: "Lovelace"},
			"🎂 Ada Lovelace's Birthday",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.person.Birthday = datePtr(engine.NewDate(2000, time.January, 2))
			raw, err := utcLinkBuilder().BirthdayEventURL(tt.person)
			require.NoError(t, err)

			parsed, err := url.Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, parsed.Query().Get(config.CalParamText))
		})
	}
}

func TestFollowUpEventURL(t *testing.T) {
	// lastSeen 2024-01-01 + 30 days cadence = due 2024-01-31, 10:00-10:30.
	p := engine.Person{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		LastSeen:       datePtr(engine.NewDate(2024, time.January, 1)),
		MaxDaysBetween: intPtr(30),
	}

	raw, ok := utcLinkBuilder().FollowUpEventURL(p)
	require.True(t, ok)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	q := parsed.Query()
	assert.Equal(t, "Reach out to Ada Lovelace", q.Get(config.CalParamText))
	assert.Equal(t, "20240131T100000Z/20240131T103000Z", q.Get(config.CalParamDates))
	assert.Equal(t, config.DetailsFollowUp, q.Get(config.CalParamDetails))
	assert.Empty(t, q.Get(config.CalParamRecur), "follow-ups do not recur")
}

func TestFollowUpEventURL_LocalTimeSerializedAsUTC(t *testing.T) {
	// The 10:00 start is a local wall time; in UTC+2 it serializes as 08:00Z.
	b := &engine.LinkBuilder{Location: time.FixedZone("UTC+2", 2*60*60)}
	p := engine.Person{
		FirstName:      "Ada",
		LastSeen:       datePtr(engine.NewDate(2024, time.January, 1)),
		MaxDaysBetween: intPtr(30),
	}

	raw, ok := b.FollowUpEventURL(p)
	require.True(t, ok)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "20240131T080000Z/20240131T083000Z", parsed.Query().Get(config.CalParamDates))
}

func TestFollowUpEventURL_MissingInputs(t *testing.T) {
	tests := []struct {
		name   string
		person engine.Person
	}{
		{"no cadence data at all", engine.Person{FirstName: "Ada"}},
		{"missing maxDaysBetween", engine.Person{LastSeen: datePtr(engine.NewDate(2024, time.January, 1))}},
		{"missing lastSeen", engine.Person{MaxDaysBetween: intPtr(30)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := utcLinkBuilder().FollowUpEventURL(tt.person)
			assert.False(t, ok)
		})
	}
}

func TestLinkBuilder_Deterministic(t *testing.T) {
	p := engine.Person{
		FirstName:      "Ada",
		LastName:       "Lovelace",
		Birthday:       datePtr(engine.NewDate(1990, time.December, 10)),
		LastSeen:       datePtr(engine.NewDate(2024, time.January, 1)),
		MaxDaysBetween: intPtr(30),
	}
	b := utcLinkBuilder()

	first, err := b.BirthdayEventURL(p)
	require.NoError(t, err)
	second, err := b.BirthdayEventURL(p)
	require.NoError(t, err)
	assert.Equal(t, first, second, "same input must yield a byte-identical URL")

	fu1, _ := b.FollowUpEventURL(p)
	fu2, _ := b.FollowUpEventURL(p)
	assert.Equal(t, fu1, fu2)
}
