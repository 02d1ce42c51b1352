package engine_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func TestImportVCards(t *testing.T) {
	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:John Ronald Doe
BDAY:1975-03-20
NOTE:Met at the climbing gym
END:VCARD
BEGIN:VCARD
VERSION:4.0
FN:Jane Roe
BDAY:--02-29
END:VCARD`

	repo := engine.NewRepository(newMemStore(), engine.RealClock{})

	imported, err := repo.ImportVCards(strings.NewReader(vcardContent))
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	people := repo.Load()
	require.Len(t, people, 2)

	// Full names split like the add flow: first token, then the rest.
	john := people[0]
	assert.Equal(t, "John", john.FirstName)
	assert.Equal(t, "Ronald Doe", john.LastName)
	require.NotNil(t, john.Birthday)
	assert.Equal(t, engine.NewDate(1975, time.March, 20), *john.Birthday)
	assert.Equal(t, "Met at the climbing gym", john.Notes)

	// Truncated BDAY falls back to the leap-year sentinel so Feb 29 survives.
	jane := people[1]
	require.NotNil(t, jane.Birthday)
	assert.Equal(t, time.February, jane.Birthday.Month)
	assert.Equal(t, 29, jane.Birthday.Day)
}

func TestImportVCards_SkipsKnownNames(t *testing.T) {
	repo := engine.NewRepository(newMemStore(), engine.RealClock{})
	repo.Create("John", "Doe")

	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:John Doe
END:VCARD`

	imported, err := repo.ImportVCards(strings.NewReader(vcardContent))
	require.NoError(t, err)
	assert.Zero(t, imported, "an already-tracked name is not duplicated")
	assert.Len(t, repo.Load(), 1)
}

func TestImportVCards_InvalidBirthdaySkipped(t *testing.T) {
	vcardContent := `BEGIN:VCARD
VERSION:4.0
FN:Bad Date
BDAY:not-a-date
END:VCARD`

	repo := engine.NewRepository(newMemStore(), engine.RealClock{})

	imported, err := repo.ImportVCards(strings.NewReader(vcardContent))
	require.NoError(t, err)
	assert.Equal(t, 1, imported, "the record survives, only the birthday is dropped")
	assert.Nil(t, repo.Load()[0].Birthday)
}

func TestExportVCards(t *testing.T) {
	people := []engine.Person{
		{
			ID:        1,
			FirstName: "Ada",
			LastName:  "Lovelace",
			Birthday:  datePtr(engine.NewDate(1990, time.December, 10)),
			Notes:     "pioneer",
		},
		{ID: 2, FirstName: "Charles", LastName: "Babbage"},
	}

	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCards(&buf, people))

	out := buf.String()
	assert.Contains(t, out, "FN:Ada Lovelace")
	assert.Contains(t, out, "BDAY:1990-12-10")
	assert.Contains(t, out, "NOTE:pioneer")
	assert.Contains(t, out, "FN:Charles Babbage")
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VCARD"))
}

func TestExportImport_RoundTrip(t *testing.T) {
	source := engine.NewRepository(newMemStore(), engine.RealClock{})
	p := source.Create("Ada", "Lovelace")
	source.Update(p.ID, engine.PersonFields{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Birthday:  datePtr(engine.NewDate(1990, time.December, 10)),
	})

	var buf bytes.Buffer
	require.NoError(t, engine.ExportVCards(&buf, source.Load()))

	target := engine.NewRepository(newMemStore(), engine.RealClock{})
	imported, err := target.ImportVCards(&buf)
	require.NoError(t, err)
	require.Equal(t, 1, imported)

	got := target.Load()[0]
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, "Lovelace", got.LastName)
	require.NotNil(t, got.Birthday)
	assert.Equal(t, engine.NewDate(1990, time.December, 10), *got.Birthday)
}
