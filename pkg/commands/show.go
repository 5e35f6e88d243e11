package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/show"
)

func addShow(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	so := &options.ScopeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"today", "get"},
		Short:   "Show the pill schedule for a day.",
		Example: `
sobok show
sobok show --on yesterday -k
sobok show --member 187
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			gw, cfg, err := connect()
			if err != nil {
				return oo.HandleError(err)
			}
			s := show.Show{
				Gateway: gw,
				Scope:   so.Scope(),
				On:      day,
				Timeout: cfg.Timeout,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddScopeArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
