package ui

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/mattn/go-isatty"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/calendar"
	calendarui "tableflip.dev/calgrid/pkg/tui/calendar"
)

// ErrNotTerminal is returned when the UI is started without a terminal.
var ErrNotTerminal = errors.New("ui: stdout is not a terminal")

type UI struct {
	Service   *app.Service
	WeekStart time.Weekday
	// On is the day selected at start; zero resumes the last session's
	// selection.
	On calendar.Date
}

func (d *UI) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	return calendarui.Run(d.Service, d.options())
}

func (d *UI) options() calendarui.Options {
	opts := calendarui.Options{WeekStart: d.WeekStart, Start: d.On}
	if opts.Start.IsZero() && d.Service != nil {
		if last, ok := d.Service.LastSelection(); ok {
			opts.Start = last
		}
	}
	return opts
}
