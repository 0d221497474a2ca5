package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/calendar"
)

// MonthOptions
type MonthOptions struct {
	MonthString string
}

func AddMonthArgs(cmd *cobra.Command, o *MonthOptions) {
	cmd.Flags().StringVarP(&o.MonthString, "month", "m", "",
		`Specify a month, example: --month="2024-03".`)
}

// GetMonth parses the --month flag. An empty flag returns the zero YearMonth.
func (o *MonthOptions) GetMonth() (calendar.YearMonth, error) {
	if o.MonthString == "" {
		return calendar.YearMonth{}, nil
	}
	return calendar.ParseYearMonth(o.MonthString)
}
