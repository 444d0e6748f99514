package ticker

import (
	"context"
	"fmt"
	"time"
)

// CountdownInterval is the refresh rate of the countdown page.
const CountdownInterval = time.Second

// DefaultCountdownTarget is midnight, 1 January 2026, in loc.
func DefaultCountdownTarget(loc *time.Location) time.Time {
	return time.Date(2026, time.January, 1, 0, 0, 0, 0, loc)
}

// Remaining is the time left until a countdown target, split for display.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Mins    int64 `json:"mins"`
	Secs    int64 `json:"secs"`
	Expired bool  `json:"expired"`
}

// String renders the value as "123d 04h 05m 06s".
func (r Remaining) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", r.Days, r.Hours, r.Mins, r.Secs)
}

// Until splits the time from now to target. Sub-second remainders are dropped.
// Once target is reached every field is zero and Expired is set.
func Until(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{Expired: true}
	}

	secs := int64(d / time.Second)
	return Remaining{
		Days:  secs / 86400,
		Hours: secs % 86400 / 3600,
		Mins:  secs % 3600 / 60,
		Secs:  secs % 60,
	}
}

// Countdown emits the remaining time toward target on every tick, ending with
// the first expired value.
func Countdown(ctx context.Context, target time.Time, ticks <-chan time.Time) <-chan Remaining {
	return Stream(ctx, ticks, func(now time.Time) (Remaining, bool) {
		r := Until(target, now)
		return r, r.Expired
	})
}
