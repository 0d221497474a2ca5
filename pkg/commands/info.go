package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where notes are stored.",
		Example: `
calgrid info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv("info")
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      e.config,
				Persistence: e.persistence,
				Out:         cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
