// Package show prints a month grid to the terminal.
package show

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/printers"
)

type Show struct {
	Month     calendar.YearMonth
	Selected  calendar.Date
	Today     calendar.Date
	WeekStart time.Weekday
	Long      bool
	JSON      bool

	Service *app.Service
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	today := s.Today
	if today.IsZero() {
		today = calendar.Now()
	}
	month := s.Month
	if month == (calendar.YearMonth{}) {
		month = today.YearMonth()
		if !s.Selected.IsZero() {
			month = s.Selected.YearMonth()
		}
	}
	if !s.Selected.IsZero() && !month.Contains(s.Selected) {
		return fmt.Errorf("%s is not in %s", s.Selected, month)
	}

	svc := s.Service
	if svc == nil {
		svc = &app.Service{}
	}
	view := svc.View(month, s.WeekStart, today, s.Selected)

	out := s.Out
	if out == nil {
		out = color.Output
	}
	if s.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	pp := printers.PrettyPrint{Out: out}
	pp.NewLine()
	pp.Grid(view, s.Long)
	return nil
}
