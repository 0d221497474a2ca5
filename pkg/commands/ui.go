package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/commands/options"
	"tableflip.dev/calgrid/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	wo := &options.WeekStartOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive month calendar",
		Example: `
calgrid ui
calgrid ui --on 2024-3-13 --week-start monday
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv("ui")
			if err != nil {
				return err
			}
			on, err := oo.GetOn()
			if err != nil {
				return err
			}
			ws, err := wo.GetWeekStart(e.config.WeekStart())
			if err != nil {
				return err
			}
			i := ui.UI{Service: e.service, WeekStart: ws, On: on}
			return i.Do(context.Background())
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddWeekStartArgs(cmd, wo)

	topLevel.AddCommand(cmd)
}
