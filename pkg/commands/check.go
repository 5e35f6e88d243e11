package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/check"
)

func addCheck(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "check <schedule id>",
		Aliases: []string{"take", "x"},
		Short:   "Mark a schedule's pills as taken.",
		Example: `
sobok check 12
sobok check 9 --on yesterday
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
			c := check.Check{
				Gateway:    gw,
				On:         day,
				ScheduleID: io.ScheduleID,
				Timeout:    cfg.Timeout,
				ShowID:     io.ShowID,
				Out:        cmd.OutOrStdout(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
