package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/follow"
)

func addFollow(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	so := &options.ScopeOptions{}
	io := &options.IDOptions{}
	poll := 30 * time.Second

	cmd := &cobra.Command{
		Use:     "follow",
		Aliases: []string{"watch"},
		Short:   "Keep the day on screen and redraw it as it changes.",
		Example: `
sobok follow
sobok follow --member 187 --poll 1m
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
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			f := follow.Follow{
				Gateway: gw,
				Scope:   so.Scope(),
				On:      day,
				Timeout: cfg.Timeout,
				Poll:    poll,
				ShowID:  io.ShowID,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(f.Do(ctx))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddScopeArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().DurationVar(&poll, "poll", poll, "Refresh interval when the gateway cannot push changes.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
