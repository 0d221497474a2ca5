package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(calgrid completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(calgrid completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// noteCompletions offers note ids with their day and text as descriptions.
func noteCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil
	}
	ids := make([]string, 0)
	for _, n := range p.ListAll(context.Background()) {
		if !strings.HasPrefix(n.ID, toComplete) {
			continue
		}
		ids = append(ids, fmt.Sprintf("%s\t%s %s", n.ID, n.Date, firstLine(n.Text)))
	}
	return ids
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
