package domain

import "time"

// dateLayout is the only accepted input format for calendar dates.
const dateLayout = "2006-01-02"

// renderLayout is the canonical output format, e.g. "Mon Jan 1 2024".
// Consumers compare dates as strings, so this layout is part of the contract.
const renderLayout = "Mon Jan 2 2006"

// ParseDate parses a strict YYYY-MM-DD calendar date. The result is the start
// of that day in UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// Today returns the current calendar day, truncated to midnight UTC.
func Today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// RenderDate formats a date in the canonical calendar-string form.
func RenderDate(t time.Time) string {
	return t.Format(renderLayout)
}

// EndOfDay returns the last representable instant of t's calendar day, so a
// "to" bound includes exercises dated on the bound day itself.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// DateRange is the inclusive [From, To] calendar-date window applied by the
// query engine. A zero bound means unbounded on that side.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls within the window. To is widened to the
// end of its day before comparing.
func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(EndOfDay(r.To)) {
		return false
	}
	return true
}
