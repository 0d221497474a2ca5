// Package calendar computes and classifies the 6x7 month grid shown by the
// calendar views, and owns the selection/anchor state behind them.
package calendar

import (
	"fmt"
	"time"
)

const (
	layoutISO   = "2006-01-02"
	layoutMonth = "2006-01"
	layoutLabel = "January 2006"
)

// Date is a calendar day with no time or location attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate builds a Date, normalizing out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Now returns the real-world current date in the local time zone.
func Now() Date {
	return FromTime(time.Now())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		return Date{}, err
	}
	return FromTime(t), nil
}

// Time returns midnight UTC of d.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether d is the zero Date.
func (d Date) IsZero() bool {
	return d == Date{}
}

// AddDays returns d shifted by n days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// AddMonths returns d shifted by n months. The day is clamped to the last day
// of the target month, so Jan 31 + 1 month is Feb 28 (or 29).
func (d Date) AddMonths(n int) Date {
	target := d.YearMonth().AddMonths(n)
	return target.clamp(d.Day)
}

// AddYears returns d shifted by n years, clamping Feb 29 to Feb 28.
func (d Date) AddYears(n int) Date {
	target := YearMonth{Year: d.Year + n, Month: d.Month}
	return target.clamp(d.Day)
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeekday numbers the week Monday=1 through Sunday=7.
func (d Date) ISOWeekday() int {
	wd := int(d.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// FirstOfMonth returns the first day of d's month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// YearMonth returns the month d falls in.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

// Compare returns -1, 0 or +1 following calendar order.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// After reports whether d is later than o.
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// DaysUntil returns the number of days from d to o.
func (d Date) DaysUntil(o Date) int {
	return int(o.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText encodes d as YYYY-MM-DD.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText decodes a YYYY-MM-DD value.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// YearMonth is the (year, month) pair a grid is anchored to.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(layoutMonth, s)
	if err != nil {
		return YearMonth{}, err
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// First returns the first day of the month.
func (m YearMonth) First() Date {
	return Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Last returns the last day of the month.
func (m YearMonth) Last() Date {
	return Date{Year: m.Year, Month: m.Month, Day: m.Days()}
}

// Days returns the number of days in the month.
func (m YearMonth) Days() int {
	return time.Date(m.Year, m.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// AddMonths returns the month n months away.
func (m YearMonth) AddMonths(n int) YearMonth {
	t := time.Date(m.Year, m.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether d falls in the month.
func (m YearMonth) Contains(d Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Label renders the month for a title bar, e.g. "March 2024".
func (m YearMonth) Label() string {
	return m.First().Time().Format(layoutLabel)
}

func (m YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

func (m YearMonth) clamp(day int) Date {
	if last := m.Days(); day > last {
		day = last
	}
	return Date{Year: m.Year, Month: m.Month, Day: day}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
