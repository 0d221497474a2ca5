package calendar

// Point is a pointer position in the widget's own coordinates.
type Point struct {
	X, Y float64
}

// Rect is a half-open rectangle: it contains its top and left edges but not
// its bottom and right ones, so neighbouring rectangles never overlap.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Layout is the geometry shared by rendering and hit testing: a title bar
// holding the navigation buttons, a weekday header, then 6 rows of 7 cells
// filling the rest of the widget.
type Layout struct {
	Width        float64
	Height       float64
	TitleHeight  float64
	HeaderHeight float64
	ButtonWidth  float64
	Padding      float64
}

const dpi = 72.0

// DefaultLayout is a 7x8.25 inch page at 72 dpi: a half inch title bar, a
// quarter inch weekday header and 1x1.25 inch day cells.
func DefaultLayout() Layout {
	return Layout{
		Width:        7 * dpi,
		Height:       8.25 * dpi,
		TitleHeight:  0.5 * dpi,
		HeaderHeight: 0.25 * dpi,
		ButtonWidth:  0.5 * dpi,
		Padding:      0.1 * dpi,
	}
}

// CellWidth is the width of one day column.
func (l Layout) CellWidth() float64 {
	return l.Width / Columns
}

// CellHeight is the height of one week row.
func (l Layout) CellHeight() float64 {
	return (l.Height - l.gridTop()) / Rows
}

func (l Layout) gridTop() float64 {
	return l.TitleHeight + l.HeaderHeight
}

// CellRect returns the rectangle of grid index i.
func (l Layout) CellRect(i int) Rect {
	row, col := i/Columns, i%Columns
	w, h := l.CellWidth(), l.CellHeight()
	return Rect{X: float64(col) * w, Y: l.gridTop() + float64(row)*h, W: w, H: h}
}

// HeaderRect returns the weekday label rectangle above column col.
func (l Layout) HeaderRect(col int) Rect {
	w := l.CellWidth()
	return Rect{X: float64(col) * w, Y: l.TitleHeight, W: w, H: l.HeaderHeight}
}

// CellAt maps p to a grid index. A point on a shared edge belongs to the
// cell right of or below it.
func (l Layout) CellAt(p Point) (int, bool) {
	w, h := l.CellWidth(), l.CellHeight()
	if w <= 0 || h <= 0 {
		return 0, false
	}
	y := p.Y - l.gridTop()
	if p.X < 0 || p.X >= l.Width || y < 0 || p.Y >= l.Height {
		return 0, false
	}
	col := min(int(p.X/w), Columns-1)
	row := min(int(y/h), Rows-1)
	return row*Columns + col, true
}

// TitleRect is the title bar.
func (l Layout) TitleRect() Rect {
	return Rect{W: l.Width, H: l.TitleHeight}
}

// NavRect returns the button that issues n. Year buttons sit at the outer
// edges of the title bar, month buttons just inside them.
func (l Layout) NavRect(n Nav) Rect {
	b := l.ButtonWidth
	r := Rect{W: b, H: l.TitleHeight}
	switch n {
	case PrevYear:
		r.X = l.Padding
	case PrevMonth:
		r.X = l.Padding + b
	case NextMonth:
		r.X = l.Width - l.Padding - 2*b
	case NextYear:
		r.X = l.Width - l.Padding - b
	}
	return r
}

// NavAt returns the navigation button under p.
func (l Layout) NavAt(p Point) (Nav, bool) {
	for _, n := range navs {
		if l.NavRect(n).Contains(p) {
			return n, true
		}
	}
	return 0, false
}
