package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calgrid/pkg/commands/options"
	"tableflip.dev/calgrid/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	mo := &options.MonthOptions{}
	wo := &options.WeekStartOptions{}
	long := false

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"cal"},
		Short:   "print a month grid",
		Long: base.Wrap80("Print the six week grid for a month. Days outside the month, weekends, " +
			"today and the selected day are colored, and days with notes are marked with '*'."),
		Example: `
calgrid show
calgrid show --month 2024-03 --long
calgrid show --on 7/4 --week-start monday --json
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv("show")
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			month, err := mo.GetMonth()
			if err != nil {
				return output.HandleError(err)
			}
			ws, err := wo.GetWeekStart(e.config.WeekStart())
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				Month:     month,
				Selected:  on,
				WeekStart: ws,
				Long:      long,
				JSON:      output.JSON,
				Service:   e.service,
				Out:       cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddMonthArgs(cmd, mo)
	options.AddWeekStartArgs(cmd, wo)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVarP(&long, "long", "l", false, "List the month's notes below the grid.")

	topLevel.AddCommand(cmd)
}
