package engine

// IsOverdue reports whether the person is overdue for contact as of today.
//
// A person with no last-seen date or no cadence threshold is never overdue:
// absence of cadence data means the relationship is not being tracked.
// Otherwise the person is overdue iff the whole calendar days elapsed since
// LastSeen strictly exceed MaxDaysBetween. At exactly the threshold the
// person is not yet overdue.
func IsOverdue(p Person, today Date) bool {
	if !p.Trackable() {
		return false
	}
	return DaysBetween(*p.LastSeen, today) > *p.MaxDaysBetween
}

// OverdueDays returns how many days past the cadence threshold the person is,
// and whether that number is meaningful. Zero or negative means not overdue.
func OverdueDays(p Person, today Date) (int, bool) {
	if !p.Trackable() {
		return 0, false
	}
	return DaysBetween(*p.LastSeen, today) - *p.MaxDaysBetween, true
}

// NextDue returns the date the next contact is due (LastSeen + MaxDaysBetween)
// and false when the person is not trackable.
func NextDue(p Person) (Date, bool) {
	if !p.Trackable() {
		return Date{}, false
	}
	return p.LastSeen.AddDays(*p.MaxDaysBetween), true
}
