package calendar

import (
	"fmt"
	"time"
)

// Category is the visual class of a grid cell. A cell has exactly one.
type Category uint8

const (
	Normal Category = iota
	Weekend
	Today
	OutOfMonth
	Selected
)

var categoryNames = [...]string{
	Normal:     "normal",
	Weekend:    "weekend",
	Today:      "today",
	OutOfMonth: "out-of-month",
	Selected:   "selected",
}

func (c Category) String() string {
	if int(c) < len(categoryNames) {
		return categoryNames[c]
	}
	return fmt.Sprintf("Category(%d)", c)
}

// MarshalText encodes the category name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(b []byte) error {
	for i, name := range categoryNames {
		if name == string(b) {
			*c = Category(i)
			return nil
		}
	}
	return fmt.Errorf("calendar: unknown category %q", b)
}

// Classify picks the category of date when month anchor is displayed.
// First match wins: selected, out of month, today, weekend, normal. A
// "today" outside the anchor month renders as out of month.
func Classify(date Date, anchor YearMonth, today, selected Date) Category {
	switch {
	case date == selected:
		return Selected
	case !anchor.Contains(date):
		return OutOfMonth
	case date == today:
		return Today
	case IsWeekend(date):
		return Weekend
	default:
		return Normal
	}
}

// IsWeekend reports whether d is a Saturday or Sunday.
func IsWeekend(d Date) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
