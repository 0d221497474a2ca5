package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/calgrid/pkg/app"
	"tableflip.dev/calgrid/pkg/commands/options"
	"tableflip.dev/calgrid/pkg/logging"
	"tableflip.dev/calgrid/pkg/store"
)

var (
	output = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "calgrid",
		Short: base.Wrap80("A month calendar grid with day notes, on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addNote(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// env is what every command needs from the host: config, a logger and the
// note service over the on-disk store.
type env struct {
	config      store.Config
	log         *slog.Logger
	persistence store.Persistence
	service     *app.Service
}

func loadEnv(component string) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.Stderr(cfg.LogLevel(), component)
	p, err := store.Load(cfg)
	if err != nil {
		log.Error("failed to open store", "path", cfg.BasePath(), "error", err)
		return nil, err
	}
	return &env{
		config:      cfg,
		log:         log,
		persistence: p,
		service:     app.New(p, log),
	}, nil
}
