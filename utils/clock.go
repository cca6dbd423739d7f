package utils

import (
	"fmt"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout is the calendar-date format used for boarding_date values and
// report bucketing.
const DateLayout = "2006-01-02"

// Clock produces the fixed-offset wall-clock time used for every timestamp
// and date bucket in the system. This is plain offset arithmetic on top of
// UTC; there is no DST or calendar-rule awareness.
type Clock struct {
	Offset time.Duration
}

// NewClock returns a clock shifted by the given number of hours from UTC.
func NewClock(offsetHours int) Clock {
	return Clock{Offset: time.Duration(offsetHours) * time.Hour}
}

// Now returns the current instant shifted by the configured offset.
func (c Clock) Now() time.Time {
	return time.Now().UTC().Add(c.Offset)
}

// Today returns the current date string under the offset.
func (c Clock) Today() string {
	return DateOf(c.Now())
}

// DateOf returns the date portion of t.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// Weeks start on Monday everywhere in this system.
var mondayWeeks = &now.Config{WeekStartDay: time.Monday}

// WeekStart returns the Monday 00:00 of t's week.
func WeekStart(t time.Time) time.Time {
	return mondayWeeks.With(t).BeginningOfWeek()
}

// MonthStart returns the first day 00:00 of t's month.
func MonthStart(t time.Time) time.Time {
	return mondayWeeks.With(t).BeginningOfMonth()
}

// ISOWeekLabel formats t's ISO week as e.g. "2026-W35".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}
