package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/calgrid/pkg/calendar"
	"tableflip.dev/calgrid/pkg/commands/options"
	"tableflip.dev/calgrid/pkg/prompt"
	"tableflip.dev/calgrid/pkg/runner/note"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes"},
		Short:   "manage the notes attached to calendar days",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addNoteAdd(cmd)
	addNoteList(cmd)
	addNoteRemove(cmd)

	topLevel.AddCommand(cmd)
}

func addNoteAdd(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	io := &options.IDOptions{}
	var text string

	cmd := &cobra.Command{
		Use:   "add [text]",
		Short: "attach a note to a day",
		Example: `
calgrid note add pay rent
calgrid note add --on 3/1 close the books
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			text = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv("note")
			if err != nil {
				return output.HandleError(err)
			}
			on, err := oo.GetOn()
			if err != nil {
				return output.HandleError(err)
			}
			if on.IsZero() {
				on = calendar.Now()
			}
			s := note.Add{
				On:      on,
				Text:    text,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: e.service,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNoteList(topLevel *cobra.Command) {
	oo := &options.OnOptions{}
	mo := &options.MonthOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "get"},
		Short:   "list notes for a day, a month, or everything",
		Example: `
calgrid note list
calgrid note list --on today
calgrid note list --month 2024-03 --show-id
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv("note")
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
			if !on.IsZero() && month != (calendar.YearMonth{}) {
				return output.HandleError(errors.New("--on and --month are mutually exclusive"))
			}
			s := note.List{
				On:      on,
				Month:   month,
				ShowID:  io.ShowID,
				JSON:    output.JSON,
				Service: e.service,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	options.AddOnArgs(cmd, oo)
	options.AddMonthArgs(cmd, mo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}

func addNoteRemove(topLevel *cobra.Command) {
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "rm id [id...]",
		Aliases: []string{"remove", "delete"},
		Short:   "delete notes by id",
		Example: `
calgrid note list --show-id
calgrid note rm 1f3870be274f6c49b3e31a0c6728957f
calgrid note rm -i
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if i.Interactive {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv("note")
			if err != nil {
				return output.HandleError(err)
			}
			if i.Interactive {
				all, err := e.service.AllNotes(context.Background())
				if err != nil {
					return output.HandleError(err)
				}
				picked, err := prompt.PickNote(cmd.InOrStdin(), cmd.OutOrStdout(), "Remove which note", all)
				if err != nil {
					return output.HandleError(err)
				}
				args = []string{picked.ID}
			}
			s := note.Remove{
				IDs:     args,
				JSON:    output.JSON,
				Service: e.service,
				Out:     cmd.OutOrStdout(),
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return noteCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
	}

	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, output)
	topLevel.AddCommand(cmd)
}
