// Package calendar holds the time primitives shared by the scheduling and
// booking code: clock times within a day, calendar dates, and the half-open
// interval predicates every availability decision is built on.
package calendar

import (
	"fmt"
	"time"
)

// Clock is a time of day expressed as minutes since midnight.
// Slots never span midnight, so a single day's worth of minutes is enough.
type Clock int

// ParseClock parses a "HH:MM" string into a Clock.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: expected HH:MM", s)
	}
	return Clock(t.Hour()*60 + t.Minute()), nil
}

// String formats the clock back to "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// MarshalJSON renders the clock as a "HH:MM" JSON string.
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON accepts a "HH:MM" JSON string.
func (c *Clock) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("parse clock: expected JSON string, got %s", b)
	}
	parsed, err := ParseClock(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Date is a calendar day without a time-of-day component.
// It serialises as "2006-01-02" and compares by day only.
type Date struct {
	time.Time
}

// ParseDate parses a "2006-01-02" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("parse date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

// String formats the date as "2006-01-02".
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// MarshalJSON renders the date as a "2006-01-02" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

// UnmarshalJSON accepts a "2006-01-02" JSON string.
func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("parse date: expected JSON string, got %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Equal reports whether both values name the same calendar day.
func (d Date) Equal(other Date) bool {
	return d.Time.Equal(other.Time)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) share any instant. Touching endpoints do not overlap, so
// back-to-back slots are legal.
func Overlaps(aStart, aEnd, bStart, bEnd Clock) bool {
	return aStart < bEnd && bStart < aEnd
}

// Covers reports whether [outerStart, outerEnd) fully contains
// [innerStart, innerEnd).
func Covers(outerStart, outerEnd, innerStart, innerEnd Clock) bool {
	return outerStart <= innerStart && outerEnd >= innerEnd
}

// ValidRange reports whether start strictly precedes end.
func ValidRange(start, end Clock) bool {
	return start < end
}
