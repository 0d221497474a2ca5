package calendar

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateAddMonthsClampsDay(t *testing.T) {
	tests := []struct {
		name  string
		from  Date
		delta int
		want  Date
	}{
		{"leap february", NewDate(2024, time.January, 31), 1, NewDate(2024, time.February, 29)},
		{"common february", NewDate(2023, time.January, 31), 1, NewDate(2023, time.February, 28)},
		{"back across year", NewDate(2024, time.January, 15), -1, NewDate(2023, time.December, 15)},
		{"thirty day month", NewDate(2024, time.March, 31), -1, NewDate(2024, time.February, 29)},
		{"many months", NewDate(2024, time.May, 31), 13, NewDate(2025, time.June, 30)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.AddMonths(tt.delta); got != tt.want {
				t.Fatalf("%s + %d months: expected %s, got %s", tt.from, tt.delta, tt.want, got)
			}
		})
	}
}

func TestDateAddYearsLeapDay(t *testing.T) {
	got := NewDate(2024, time.February, 29).AddYears(1)
	if want := NewDate(2025, time.February, 28); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	got = NewDate(2024, time.February, 29).AddYears(4)
	if want := NewDate(2028, time.February, 29); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestDateAddDaysNormalizes(t *testing.T) {
	got := NewDate(2024, time.December, 30).AddDays(3)
	if want := NewDate(2025, time.January, 2); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := NewDate(2024, time.March, 0); got != NewDate(2024, time.February, 29) {
		t.Fatalf("expected day 0 to normalize to Feb 29, got %s", got)
	}
}

func TestDateWeekdays(t *testing.T) {
	d := NewDate(2024, time.March, 1)
	if d.Weekday() != time.Friday {
		t.Fatalf("expected Friday, got %s", d.Weekday())
	}
	if d.ISOWeekday() != 5 {
		t.Fatalf("expected ISO weekday 5, got %d", d.ISOWeekday())
	}
	if sun := NewDate(2024, time.March, 3); sun.ISOWeekday() != 7 {
		t.Fatalf("expected Sunday to be 7, got %d", sun.ISOWeekday())
	}
}

func TestDateCompare(t *testing.T) {
	a := NewDate(2023, time.December, 31)
	b := NewDate(2024, time.January, 1)
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Fatalf("expected %s before %s", a, b)
	}
	if a.Compare(a) != 0 {
		t.Fatalf("expected equal dates to compare 0")
	}
	if a.DaysUntil(b) != 1 || b.DaysUntil(a) != -1 {
		t.Fatalf("unexpected day distance %d/%d", a.DaysUntil(b), b.DaysUntil(a))
	}
}

func TestDateTextRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 9)
	b, err := json.Marshal(map[string]Date{"on": d})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"on":"2024-03-09"}` {
		t.Fatalf("unexpected json %s", b)
	}
	var out map[string]Date
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out["on"] != d {
		t.Fatalf("expected %s, got %s", d, out["on"])
	}
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Fatalf("expected error for month 13")
	}
}

func TestYearMonth(t *testing.T) {
	m, err := ParseYearMonth("2024-02")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if m.Days() != 29 {
		t.Fatalf("expected 29 days, got %d", m.Days())
	}
	if m.Label() != "February 2024" {
		t.Fatalf("unexpected label %q", m.Label())
	}
	if m.String() != "2024-02" {
		t.Fatalf("unexpected string %q", m.String())
	}
	if next := m.AddMonths(11); next != (YearMonth{Year: 2025, Month: time.January}) {
		t.Fatalf("unexpected month %s", next)
	}
	if !m.Contains(NewDate(2024, time.February, 29)) || m.Contains(NewDate(2023, time.February, 1)) {
		t.Fatalf("Contains must compare year and month")
	}
	if m.Last() != NewDate(2024, time.February, 29) {
		t.Fatalf("unexpected last day %s", m.Last())
	}
}
