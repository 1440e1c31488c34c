package scheduler

import (
	"fmt"
	"time"

	"github.com/aeobrien/deadline-calendar/internal/domain"
)

// Resolvable dates must stay inside this window; anything else is
// calendar overflow.
const (
	minYear = 1
	maxYear = 9999
)

// Resolve applies an offset to a concrete anchor date. Pure and
// deterministic: identical inputs always yield identical output.
//
// Day adds calendar days, week adds seven calendar days per unit. Month
// adds calendar months keeping the day-of-month, clamped to the last day
// of the target month (Jan 31 + 1 month = Feb 28, or Feb 29 in a leap
// year). Go's AddDate normalizes overflow into the next month instead,
// which is why months are handled explicitly.
func Resolve(off domain.Offset, anchor time.Time) (time.Time, error) {
	var result time.Time
	switch off.Unit {
	case domain.UnitDay:
		result = anchor.AddDate(0, 0, off.Amount)
	case domain.UnitWeek:
		result = anchor.AddDate(0, 0, off.Amount*7)
	case domain.UnitMonth:
		result = addMonthsClamped(anchor, off.Amount)
	default:
		return time.Time{}, fmt.Errorf("unknown offset unit %q", off.Unit)
	}

	if result.Year() < minYear || result.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: %s from %s", domain.ErrCalendarOverflow,
			off, anchor.Format("2006-01-02"))
	}
	return result, nil
}

// addMonthsClamped shifts t by the given number of calendar months,
// clamping the day-of-month when the target month is shorter.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	yearShift := total / 12
	monthIndex := total % 12
	if monthIndex < 0 {
		monthIndex += 12
		yearShift--
	}
	year += yearShift
	target := time.Month(monthIndex + 1)

	if last := daysInMonth(year, target); day > last {
		day = last
	}

	hour, min, sec := t.Clock()
	return time.Date(year, target, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// daysInMonth returns the number of days in the given month. Day zero of
// the following month is the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// TruncateToDay drops the clock portion of a timestamp, keeping the UTC
// calendar day. Sub-deadline dates are day-granular throughout.
func TruncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
