package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/calendar"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2020-2-28", --on="2/28" or --on=today.`)
}

// GetOn parses the --on flag. An empty flag returns the zero Date.
func (o *OnOptions) GetOn() (calendar.Date, error) {
	return parseOn(o.OnString, time.Now())
}

func parseOn(s string, now time.Time) (calendar.Date, error) {
	switch s {
	case "":
		return calendar.Date{}, nil
	case "today":
		return calendar.FromTime(now), nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return calendar.Date{}, err
		}
		year := now.Year()
		d := calendar.NewDate(year, t.Month(), t.Day())
		// A short date already behind us this year means next year.
		if d.Before(calendar.FromTime(now)) {
			year++
			d = calendar.NewDate(year, t.Month(), t.Day())
		}
		if d.Month != t.Month() {
			return calendar.Date{}, fmt.Errorf("%d/%d is not a date in %d", int(t.Month()), t.Day(), year)
		}
		return d, nil
	}
	return calendar.FromTime(t), nil
}
