package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/react"
)

func addReact(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	so := &options.ScopeOptions{}
	io := &options.IDOptions{}
	sto := &options.StickerOptions{}

	cmd := &cobra.Command{
		Use:     "react <schedule id>",
		Aliases: []string{"cheer"},
		Short:   "Leave a sticker on a shared member's schedule, or swap the one you left.",
		Example: `
sobok react 40 --member 187
sobok react 40 --member 187 --sticker 3
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.ScheduleIDArg(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			gw, cfg, err := connect()
			if err != nil {
				return oo.HandleError(err)
			}
			r := react.React{
				Gateway:    gw,
				Member:     so.Member,
				On:         day,
				ScheduleID: io.ScheduleID,
				StickerID:  sto.StickerID,
				LikeID:     sto.LikeID,
				Timeout:    cfg.Timeout,
				ShowID:     io.ShowID,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddScopeArgs(cmd, so)
	options.AddShowIDArgs(cmd, io)
	options.AddStickerArgs(cmd, sto)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
