package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/calendar"
)

// WeekStartOptions
type WeekStartOptions struct {
	WeekStart string
}

func AddWeekStartArgs(cmd *cobra.Command, o *WeekStartOptions) {
	cmd.Flags().StringVarP(&o.WeekStart, "week-start", "w", "",
		`Weekday shown in the first column, example: --week-start=monday. Defaults to the configured week_start.`)
}

// GetWeekStart returns the flag's weekday, or fallback when the flag is unset.
func (o *WeekStartOptions) GetWeekStart(fallback time.Weekday) (time.Weekday, error) {
	if o.WeekStart == "" {
		return fallback, nil
	}
	ws, ok := calendar.ParseWeekday(o.WeekStart)
	if !ok {
		return fallback, fmt.Errorf("unknown weekday %q", o.WeekStart)
	}
	return ws, nil
}
