package datefmt

import "time"

// ISOWeek returns the ISO-8601 week number of t (1..53). Weeks start on
// Monday and week 1 contains the year's first Thursday, so late December
// dates can fall in week 1 and early January dates in week 52 or 53.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}
