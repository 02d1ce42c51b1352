package engine

import (
	"sort"
	"time"
)

// UpcomingBirthday is a lightweight row for the upcoming-birthdays view,
// decoupling the UI from the full person record.
type UpcomingBirthday struct {
	Person Person

	// NextOccurrence is the birthday's next calendar occurrence relative to
	// "now". It is the primary sorting key of the upcoming list.
	NextOccurrence time.Time

	// AgeNext is the age the person turns at NextOccurrence.
	AgeNext int
}

// NextOccurrence determines when the birthday next occurs relative to now,
// and the age turned then. A birthday earlier today still counts as today.
// Feb 29 birthdays normalize to March 1 in non-leap years, which is what
// time.Date does on its own.
func NextOccurrence(now time.Time, birthday Date) (time.Time, int) {
	loc := now.Location()

	candidate := time.Date(now.Year(), birthday.Month, birthday.Day, 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(now.Year()+1, birthday.Month, birthday.Day, 0, 0, 0, 0, loc)
	}

	return candidate, candidate.Year() - birthday.Year
}

// UpcomingBirthdays projects every person with a birthday onto the upcoming
// view, sorted by next occurrence then name.
func UpcomingBirthdays(people []Person, now time.Time) []UpcomingBirthday {
	rows := make([]UpcomingBirthday, 0, len(people))
	for _, p := range people {
		if p.Birthday == nil {
			continue
		}
		next, age := NextOccurrence(now, *p.Birthday)
		rows = append(rows, UpcomingBirthday{
			Person:         p,
			NextOccurrence: next,
			AgeNext:        age,
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].NextOccurrence.Equal(rows[j].NextOccurrence) {
			return rows[i].Person.FullName() < rows[j].Person.FullName()
		}
		return rows[i].NextOccurrence.Before(rows[j].NextOccurrence)
	})
	return rows
}
