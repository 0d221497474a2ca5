package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
)

const cellWidth = len(" 11*") // a day and its note marker

var categoryColors = map[calendar.Category]*color.Color{
	calendar.Normal:     color.New(),
	calendar.Weekend:    color.New(color.FgHiBlue),
	calendar.Today:      color.New(color.Bold, color.FgHiYellow),
	calendar.OutOfMonth: color.New(color.Faint),
	calendar.Selected:   color.New(color.ReverseVideo),
}

// Grid prints the month as six week rows colored by category. Days with
// notes carry a '*' and, with long set, their notes are listed below.
func (pp *PrettyPrint) Grid(v app.GridView, long bool) {
	out := pp.out()
	width := cellWidth * calendar.Columns

	tf := color.New(color.Bold)
	mid := (width - len(v.Label)) / 2
	_, _ = tf.Fprintf(out, "%s%s\n", strings.Repeat(" ", max(mid, 0)), v.Label)

	hf := color.New(color.Faint)
	for _, wd := range calendar.WeekdayOrder(v.Cells[0].Date.Weekday()) {
		_, _ = hf.Fprintf(out, " %2s ", wd.String()[:2])
	}
	_, _ = fmt.Fprintln(out)

	for r := 0; r < calendar.Rows; r++ {
		for _, cell := range v.Cells.Row(r) {
			marker := " "
			if cell.Annotation != "" {
				marker = "*"
			}
			_, _ = categoryColors[cell.Category].Fprintf(out, " %2d%s", cell.Date.Day, marker)
		}
		_, _ = fmt.Fprintln(out)
	}
	_, _ = fmt.Fprintln(out)

	if long {
		pp.agenda(v)
	}
}

func (pp *PrettyPrint) agenda(v app.GridView) {
	out := pp.out()
	p := color.New()
	b := color.New(color.Bold)
	for _, cell := range v.Cells {
		if cell.Annotation == "" || cell.Date.YearMonth().String() != v.Month {
			continue
		}
		_, _ = b.Fprintf(out, "%2d %s", cell.Date.Day, cell.Date.Weekday().String()[:3])
		for i, line := range strings.Split(cell.Annotation, "\n") {
			if i > 0 {
				_, _ = p.Fprint(out, "      ")
			}
			_, _ = p.Fprintf(out, "  %s\n", line)
		}
	}
}
