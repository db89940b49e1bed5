// Package timefmt renders due dates and creation dates for chat replies.
package timefmt

import "time"

// ForDisplay formats a due date for the user. Extraction emits date-only
// deadlines as midnight UTC, so those render as a bare date (kept in UTC so
// the calendar day never shifts); anything with a time-of-day is shown in
// the user's timezone.
func ForDisplay(t time.Time, loc *time.Location) string {
	u := t.UTC()
	if u.Hour() == 0 && u.Minute() == 0 {
		return u.Format("1/2/2006")
	}
	return t.In(loc).Format("1/2/2006 at 3:04 PM")
}

// DateOnly formats just the calendar date in the user's timezone.
func DateOnly(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("1/2/2006")
}
