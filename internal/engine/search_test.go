package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-keepintouch/internal/engine"
)

func searchFixture() []engine.Person {
	return []engine.Person{
		{ID: 1, FirstName: "Ada", LastName: "Lovelace", Notes: "enchantress of numbers"},
		{ID: 2, FirstName: "Charles", LastName: "Babbage"},
		{ID: 3, FirstName: "Grace", MiddleName: "Brewster", LastName: "Hopper"},
	}
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	people := searchFixture()
	got := engine.Filter(people, "")

	assert.Equal(t, people, got, "empty query must return the collection unchanged, in order")
}

// TestFilter_CaseInsensitive: "Ada Lovelace" matches "ada", "LOVE" and her
// own full first or last name.
func TestFilter_CaseInsensitive(t *testing.T) {
	people := searchFixture()

	for _, query := range []string{"ada", "LOVE", "Ada", "lovelace"} {
		got := engine.Filter(people, query)
		assert.Len(t, got, 1, "query %q", query)
		assert.Equal(t, int64(1), got[0].ID, "query %q", query)
	}
}

func TestFilter_FirstOrLastNameOnly(t *testing.T) {
	people := searchFixture()

	// Middle names and notes are not searched.
	assert.Empty(t, engine.Filter(people, "Brewster"))
	assert.Empty(t, engine.Filter(people, "enchantress"))
}

func TestFilter_PreservesOrder(t *testing.T) {
	people := []engine.Person{
		{ID: 1, FirstName: "Anna", LastName: "Graham"},
		{ID: 2, FirstName: "Bob", LastName: "Ann"},
		{ID: 3, FirstName: "Annabel", LastName: "Lee"},
	}

	got := engine.Filter(people, "ann")
	ids := []int64{got[0].ID, got[1].ID, got[2].ID}
	assert.Equal(t, []int64{1, 2, 3}, ids, "matches keep their original positions")
}

func TestFilter_NoMatch(t *testing.T) {
	assert.Empty(t, engine.Filter(searchFixture(), "zz"))
}
