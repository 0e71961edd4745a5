package core

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed.
var ErrInvalidDate = errors.New("invalid date")

// Date is a calendar date. The embedded time.Time is always UTC midnight so
// that comparisons never drift across timezone or DST boundaries.
type Date struct {
	time.Time
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf strips the time component from t.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseDate parses an ISO date string ("2006-01-02"). Full RFC3339 timestamps
// are accepted too; their time component is discarded. Anything else is an
// error, never a guess.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return DateOf(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return DateOf(t), nil
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// AddDays returns the date n days later (earlier for negative n).
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time.AddDate(0, 0, n))
}

// DaysSince returns the number of whole days from o to d. The difference is
// taken over unix seconds; a nanosecond duration caps out near 292 years and
// would corrupt deltas against anchors centuries away.
func (d Date) DaysSince(o Date) int {
	return int((d.Time.Unix() - o.Time.Unix()) / 86400)
}

// ISO formats the date as "2006-01-02".
func (d Date) ISO() string {
	return d.Time.Format("2006-01-02")
}

// Validate rejects the zero date.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthStart returns the first day of the given month.
func MonthStart(year, month int) Date {
	return NewDate(year, month, 1)
}

// MonthEnd returns the last day of the given month.
func MonthEnd(year, month int) Date {
	return NewDate(year, month, DaysInMonth(year, month))
}
