// Package dates holds the calendar logic the appointment views depend on:
// display formatting and same-day bucketing against "today"/"tomorrow".
package dates

import (
	"fmt"
	"time"
)

const (
	// DisplayLayout is the table-cell form, e.g. "15 October 2024".
	DisplayLayout = "02 January 2006"
	// ReminderLayout is the form embedded in reminder messages, e.g. "15-October-2024".
	ReminderLayout = "02-January-2006"
	// InputLayout is the HTML date-input form, e.g. "2024-10-15".
	InputLayout = "2006-01-02"
)

// parseLayouts covers every form an appointment date reaches us in: the
// display form written at booking time, the raw date-input form written by a
// reschedule, and RFC3339 timestamps from server-assigned fields.
var parseLayouts = []string{DisplayLayout, InputLayout, time.RFC3339}

// Parse interprets a stored date string, trying each known layout in the
// local timezone.
func Parse(value string) (time.Time, error) {
	for _, layout := range parseLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("dates: unrecognized date %q", value)
}

// Display renders a time in the display form.
func Display(t time.Time) string {
	return t.Format(DisplayLayout)
}

// SameCalendarDay reports whether a stored date string falls on the given
// day. Bucketing is by formatted-string equality in local time, not by
// timestamp range comparison. Unparseable dates never match.
func SameCalendarDay(value string, day time.Time) bool {
	t, err := Parse(value)
	if err != nil {
		return false
	}
	return t.Format(DisplayLayout) == day.Format(DisplayLayout)
}

// Tomorrow returns now shifted by one calendar day.
func Tomorrow(now time.Time) time.Time {
	return now.AddDate(0, 0, 1)
}

// Midnight normalizes a time to 00:00:00 local on the same day.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// IsUpcoming reports whether a stored date string is today or later, using
// the midnight-normalized cutoff the all-appointments view applies.
// Unparseable dates are excluded.
func IsUpcoming(value string, now time.Time) bool {
	t, err := Parse(value)
	if err != nil {
		return false
	}
	return !t.Before(Midnight(now))
}

// UntilMidnight returns the duration from now until the next local midnight.
// The all-appointments view schedules its one-shot refresh with this.
func UntilMidnight(now time.Time) time.Duration {
	next := Midnight(now).AddDate(0, 0, 1)
	return next.Sub(now)
}
