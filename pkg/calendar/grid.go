package calendar

import (
	"strings"
	"time"
)

const (
	// Columns is the number of weekday columns in the grid.
	Columns = 7
	// Rows is the number of week rows in the grid.
	Rows = 6
	// Cells is the fixed number of days a grid shows.
	Cells = Columns * Rows
)

// Cell is one rendered position of the grid.
type Cell struct {
	Date       Date     `json:"date"`
	Category   Category `json:"category"`
	Annotation string   `json:"annotation,omitempty"`
}

// Grid holds the 42 cells of a month view, index 0 at the top left.
type Grid [Cells]Cell

// At returns the cell at the given row and column.
func (g *Grid) At(row, col int) Cell {
	return g[row*Columns+col]
}

// Row returns the seven cells of a week row.
func (g *Grid) Row(row int) []Cell {
	start := row * Columns
	return g[start : start+Columns]
}

// IndexOf returns the position of d, or false when d is not displayed.
func (g *Grid) IndexOf(d Date) (int, bool) {
	i := g[0].Date.DaysUntil(d)
	if i < 0 || i >= Cells || g[i].Date != d {
		return 0, false
	}
	return i, true
}

// Position returns the column of d for a week beginning on weekStart.
func Position(d Date, weekStart time.Weekday) int {
	return (int(d.Weekday()) - int(weekStart) + Columns) % Columns
}

// GridStart returns the date shown in the first cell for month m.
//
// A month whose first day lands in one of the first two columns gets a full
// extra leading week, so the first of the month is always at index 2..8.
func GridStart(m YearMonth, weekStart time.Weekday) Date {
	first := m.First()
	w := Position(first, weekStart)
	start := first.AddDays(-w)
	if w < 2 {
		start = start.AddDays(-Columns)
	}
	return start
}

// ComputeGrid returns the 42 consecutive dates displayed for month m.
func ComputeGrid(m YearMonth, weekStart time.Weekday) [Cells]Date {
	var dates [Cells]Date
	start := GridStart(m, weekStart)
	t := start.Time()
	for i := range dates {
		dates[i] = FromTime(t.AddDate(0, 0, i))
	}
	return dates
}

// WeekdayOrder returns the weekday of each column, left to right.
func WeekdayOrder(weekStart time.Weekday) [Columns]time.Weekday {
	var order [Columns]time.Weekday
	for i := range order {
		order[i] = time.Weekday((int(weekStart) + i) % Columns)
	}
	return order
}

// ParseWeekday accepts full or three letter English weekday names.
func ParseWeekday(s string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := d.String()
		if strings.EqualFold(s, name) || strings.EqualFold(s, name[:3]) {
			return d, true
		}
	}
	return time.Sunday, false
}
