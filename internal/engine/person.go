package engine

import "strings"

// Person is one tracked individual and their contact metadata.
// Field names in the JSON contract are frozen: they are the on-disk schema of
// the persisted collection, and optional fields serialize as explicit null so
// round-trips stay lossless.
type Person struct {
	// ID is assigned at creation and never changes or gets reused.
	ID int64 `json:"id"`

	FirstName  string `json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `json:"lastName"`

	// Birthday and LastSeen are calendar dates, nil when unset.
	Birthday *Date `json:"birthday"`
	LastSeen *Date `json:"lastSeen"`

	// MaxDaysBetween is the contact cadence threshold in days, nil when unset.
	MaxDaysBetween *int `json:"maxDaysBetween"`

	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// FullName joins the non-empty first and last name with a single space.
// The middle name is deliberately excluded from display and event titles.
func (p Person) FullName() string {
	parts := make([]string, 0, 2)
	if p.FirstName != "" {
		parts = append(parts, p.FirstName)
	}
	if p.LastName != "" {
		parts = append(parts, p.LastName)
	}
	return strings.Join(parts, " ")
}

// Trackable reports whether the person carries enough cadence data to be
// evaluated for overdue status or scheduled for a follow-up.
func (p Person) Trackable() bool {
	return p.LastSeen != nil && p.MaxDaysBetween != nil
}

// SplitFullName splits a free-form full name the way the add flow expects:
// the first token becomes the first name, everything after it the last name.
func SplitFullName(full string) (first, last string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
