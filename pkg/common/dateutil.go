package common

import "time"

// DateKeyLayout matches the browser's Date.prototype.toDateString output
// ("Mon Oct 19 2026"), which seeds the daily mystery pick.
const DateKeyLayout = "Mon Jan 02 2006"

// DateKey returns the mystery-pick seed for the calendar day of t in t's location.
// Every visitor in the same time zone gets the same key for the whole day.
//
// Example:
//   - Input: 2026-10-19 14:23:45 local
//   - Output: "Mon Oct 19 2026"
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// TodayKey returns DateKey for the current local time.
func TodayKey() string {
	return DateKey(time.Now())
}
