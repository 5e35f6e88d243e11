package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/stickers"
)

func addStickers(topLevel *cobra.Command) {
	so := &options.ScopeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "stickers <schedule id>",
		Short: "List every sticker left on a schedule.",
		Example: `
sobok stickers 12
sobok stickers 40 --member 187
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.ScheduleIDArg(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			gw, cfg, err := connect()
			if err != nil {
				return oo.HandleError(err)
			}
			s := stickers.Stickers{
				Gateway:    gw,
				Scope:      so.Scope(),
				ScheduleID: io.ScheduleID,
				Timeout:    cfg.Timeout,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddScopeArgs(cmd, so)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
