package stream

import "time"

// CalendarOverride identifies a commemoration window during which a fixed
// substitute stream is forced.
type CalendarOverride int

const (
	CalendarNone CalendarOverride = iota
	// CalendarMemorialDay is the National Memorial Day window, Dec 13.
	CalendarMemorialDay
	// CalendarIncidentDay is the September 18th Incident window.
	CalendarIncidentDay
)

// ActiveOverride reports which commemoration window, if any, covers now.
// Each window spans 10:00:00 through 11:00:59 local time on its day. The two
// windows fall in different months, so at most one is active.
func ActiveOverride(now time.Time) CalendarOverride {
	if inCommemorationWindow(now, time.December, 13) {
		return CalendarMemorialDay
	}
	if inCommemorationWindow(now, time.September, 18) {
		return CalendarIncidentDay
	}
	return CalendarNone
}

func inCommemorationWindow(t time.Time, month time.Month, day int) bool {
	if t.Month() != month || t.Day() != day {
		return false
	}
	if t.Hour() == 10 {
		return true
	}
	return t.Hour() == 11 && t.Minute() == 0
}
