package journal

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
)

// TimeRange is a window relative to the moment a query runs.
type TimeRange string

const (
	RangeDay   TimeRange = "day"
	RangeWeek  TimeRange = "week"
	RangeMonth TimeRange = "month"
	RangeYear  TimeRange = "year"
	RangeAll   TimeRange = "all"
)

var timeRanges = []TimeRange{RangeDay, RangeWeek, RangeMonth, RangeYear, RangeAll}

// TimeRanges returns every range from narrowest to widest.
func TimeRanges() []TimeRange {
	return append([]TimeRange(nil), timeRanges...)
}

func ParseTimeRange(s string) (TimeRange, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range timeRanges {
		if string(r) == s {
			return r, nil
		}
	}
	return "", fmt.Errorf("%w: %q (want one of day, week, month, year, all)", ErrInvalidTimeRange, s)
}

func (r TimeRange) String() string {
	return string(r)
}

// Description is the heading shown next to statistics for the range.
func (r TimeRange) Description() string {
	switch r {
	case RangeDay:
		return "Today"
	case RangeWeek:
		return "This Week"
	case RangeMonth:
		return "This Month"
	case RangeYear:
		return "This Year"
	case RangeAll:
		return "All Time"
	default:
		return string(r)
	}
}

// Start returns the earliest instant inside the window ending at now. The
// second result is false for RangeAll, which has no lower bound. RangeDay
// starts at local midnight.
func (r TimeRange) Start(now time.Time, loc *time.Location) (time.Time, bool) {
	now = now.In(loc)
	switch r {
	case RangeDay:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), true
	case RangeWeek:
		return now.AddDate(0, 0, -7), true
	case RangeMonth:
		return addMonthsClamped(now, -1), true
	case RangeYear:
		return addMonthsClamped(now, -12), true
	default:
		return time.Time{}, false
	}
}

// Contains reports whether t falls inside the window ending at now. Both
// boundary instants are inclusive. RangeDay is a calendar-day match, so later
// instants of today are included too.
func (r TimeRange) Contains(t, now time.Time, loc *time.Location) bool {
	switch r {
	case RangeAll:
		return true
	case RangeDay:
		return SameDay(t, now, loc)
	}
	start, ok := r.Start(now, loc)
	if !ok {
		return false
	}
	return !t.Before(start) && !t.After(now)
}

// SameDay reports whether a and b fall on the same calendar day in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// addMonthsClamped moves t by months, pinning the day to the last day of the
// target month instead of overflowing into the next one.
func addMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	ty, tm, _ := first.Date()
	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	return time.Date(ty, tm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}
