package commands

import (
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/log"
)

var (
	oo       = &options.OutputOptions{}
	logLevel = "error"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "sobok",
		Short: base.Wrap80("Keep track of the pills you take, and cheer on the people you share schedules with."),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(cmd.ErrOrStderr())
			log.SetLevel(log.ParseLevel(logLevel))
			if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel,
		"One of debug, info or error.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addShow(topLevel)
	addCalendar(topLevel)
	addCheck(topLevel)
	addUncheck(topLevel)
	addStickers(topLevel)
	addReact(topLevel)
	addFollow(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addSeed(topLevel)
	addKey(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
}
