// Package interval holds the time predicates shared by every booking manager:
// half-open overlap on clock times, window containment, and weekday parsing.
package interval

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidClock = errors.New("invalid clock time, expected HH:MM")

// Clock times are zero-padded 24h "HH:MM" strings. Lexicographic order on
// them equals temporal order, so plain string comparison is safe.

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Touching endpoints (aEnd == bStart) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && bStart < aEnd
}

// Contains reports whether the window [winStart, winEnd) fully contains
// [start, end).
func Contains(winStart, winEnd, start, end string) bool {
	return winStart <= start && winEnd >= end
}

// OverlapsAt is the timestamp form of Overlaps, used where schedules are
// stored as instants rather than clock times.
func OverlapsAt(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Clock formats the clock-time component of t.
func Clock(t time.Time) string {
	return t.Format("15:04")
}

// ParseClock validates an "HH:MM" string.
func ParseClock(s string) error {
	if len(s) != 5 || s[2] != ':' {
		return ErrInvalidClock
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return ErrInvalidClock
	}
	return nil
}

// Weekday is a fixed 7-value enumeration, 0=Monday through 6=Sunday.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY", "SATURDAY", "SUNDAY",
}

func (d Weekday) String() string {
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}
	return weekdayNames[d]
}

// Valid reports whether d is one of the seven defined days.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Sunday
}

var ErrInvalidWeekday = errors.New("invalid day of week")

// ParseWeekday accepts the upper-case day name ("MONDAY").
func ParseWeekday(s string) (Weekday, error) {
	for i, name := range weekdayNames {
		if s == name {
			return Weekday(i), nil
		}
	}
	return 0, ErrInvalidWeekday
}

// WeekdayOf maps a timestamp to the Monday-based enumeration.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday is Sunday-based.
	return Weekday((int(t.Weekday()) + 6) % 7)
}
