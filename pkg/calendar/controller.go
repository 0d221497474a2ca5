package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Nav is a navigation command issued by one of the title bar buttons.
type Nav uint8

const (
	PrevMonth Nav = iota
	NextMonth
	PrevYear
	NextYear
)

var navs = [...]Nav{PrevYear, PrevMonth, NextMonth, NextYear}

var navNames = map[Nav]string{
	PrevMonth: "prev-month",
	NextMonth: "next-month",
	PrevYear:  "prev-year",
	NextYear:  "next-year",
}

func (n Nav) String() string {
	if s, ok := navNames[n]; ok {
		return s
	}
	return fmt.Sprintf("Nav(%d)", n)
}

// ParseNav parses the String form of a Nav.
func ParseNav(s string) (Nav, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for n, name := range navNames {
		if name == s {
			return n, nil
		}
	}
	return 0, fmt.Errorf("calendar: unknown navigation %q", s)
}

// Options configures a Controller.
type Options struct {
	// Today marks the "today" cell. Zero means the current date.
	Today     Date
	WeekStart time.Weekday
	Annotator Annotator
	Listener  SelectionListener
	// Layout is used by HitTest and Click. Zero means DefaultLayout.
	Layout Layout
}

// Controller owns the anchor month and the selected day and keeps the grid
// derived from them. It is not safe for concurrent use.
type Controller struct {
	anchor    YearMonth
	selected  Date
	today     Date
	weekStart time.Weekday

	annotator Annotator
	listener  SelectionListener
	layout    Layout

	grid Grid
}

// NewController starts on today's month with today selected.
func NewController(opts Options) *Controller {
	today := opts.Today
	if today.IsZero() {
		today = Now()
	}
	layout := opts.Layout
	if layout == (Layout{}) {
		layout = DefaultLayout()
	}
	c := &Controller{
		anchor:    today.YearMonth(),
		selected:  today,
		today:     today,
		weekStart: opts.WeekStart,
		annotator: opts.Annotator,
		listener:  opts.Listener,
		layout:    layout,
	}
	c.rebuild()
	return c
}

// NavigateMonth moves the selection by delta months.
func (c *Controller) NavigateMonth(delta int) {
	c.selectAndNotify(c.selected.AddMonths(delta))
}

// NavigateYear moves the selection by delta years.
func (c *Controller) NavigateYear(delta int) {
	c.selectAndNotify(c.selected.AddYears(delta))
}

// Navigate applies a title bar command.
func (c *Controller) Navigate(n Nav) {
	switch n {
	case PrevMonth:
		c.NavigateMonth(-1)
	case NextMonth:
		c.NavigateMonth(1)
	case PrevYear:
		c.NavigateYear(-1)
	case NextYear:
		c.NavigateYear(1)
	}
}

// SelectDate selects d and re-anchors the grid to d's month.
func (c *Controller) SelectDate(d Date) {
	c.selectAndNotify(d)
}

// HitTest returns the date of the cell under p.
func (c *Controller) HitTest(p Point) (Date, bool) {
	i, ok := c.layout.CellAt(p)
	if !ok {
		return Date{}, false
	}
	return c.grid[i].Date, true
}

// Click handles a pointer release at p: a navigation button navigates, a day
// cell is selected. It reports whether anything happened.
func (c *Controller) Click(p Point) bool {
	if n, ok := c.layout.NavAt(p); ok {
		c.Navigate(n)
		return true
	}
	if d, ok := c.HitTest(p); ok {
		c.SelectDate(d)
		return true
	}
	return false
}

// Grid returns a snapshot of the current cells.
func (c *Controller) Grid() Grid {
	return c.grid
}

// AnchorLabel returns the title text, e.g. "March 2024".
func (c *Controller) AnchorLabel() string {
	return c.anchor.Label()
}

// Anchor returns the displayed month.
func (c *Controller) Anchor() YearMonth { return c.anchor }

// Selection returns the selected day.
func (c *Controller) Selection() Date { return c.selected }

// Today returns the date used for the "today" cell.
func (c *Controller) Today() Date { return c.today }

// WeekStart returns the weekday of the first column.
func (c *Controller) WeekStart() time.Weekday { return c.weekStart }

// Layout returns the hit test geometry.
func (c *Controller) Layout() Layout { return c.layout }

// SetToday moves the "today" marker, e.g. after midnight. The selection is
// left alone and the listener is not notified.
func (c *Controller) SetToday(d Date) {
	c.today = d
	c.rebuild()
}

// SetAnnotator replaces the annotation source. nil clears annotations.
func (c *Controller) SetAnnotator(a Annotator) {
	c.annotator = a
	c.rebuild()
}

// SetListener replaces the selection listener. nil disables notifications.
func (c *Controller) SetListener(l SelectionListener) {
	c.listener = l
}

// SetLayout replaces the hit test geometry.
func (c *Controller) SetLayout(l Layout) {
	c.layout = l
}

// Refresh rebuilds the grid, picking up changed annotations.
func (c *Controller) Refresh() {
	c.rebuild()
}

func (c *Controller) selectAndNotify(d Date) {
	c.selected = d
	c.anchor = d.YearMonth()
	c.rebuild()
	if c.listener != nil {
		c.listener.OnSelectionChanged(d)
	}
}

func (c *Controller) rebuild() {
	dates := ComputeGrid(c.anchor, c.weekStart)
	for i, d := range dates {
		c.grid[i] = Cell{
			Date:       d,
			Category:   Classify(d, c.anchor, c.today, c.selected),
			Annotation: c.contents(d),
		}
	}
}

func (c *Controller) contents(d Date) string {
	if c.annotator == nil {
		return ""
	}
	return c.annotator.Contents(d)
}
