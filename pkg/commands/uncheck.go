package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/uncheck"
	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/snake"
)

func addUncheck(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "uncheck <schedule id>",
		Aliases: []string{"untake"},
		Short:   "Take back a schedule marked as taken. Asks first.",
		Example: `
sobok uncheck 12
sobok uncheck 12 --yes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			return io.ScheduleIDArg(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := on.GetOn()
			if err != nil {
				return oo.HandleError(err)
			}
			if !co.Yes && !interactive(cmd) {
				return oo.HandleError(errors.New("refusing to uncheck without a terminal to confirm on, pass --yes"))
			}
			gw, cfg, err := connect()
			if err != nil {
				return oo.HandleError(err)
			}
			u := uncheck.Uncheck{
				Gateway:    gw,
				On:         day,
				ScheduleID: io.ScheduleID,
				Timeout:    cfg.Timeout,
				ShowID:     io.ShowID,
				Out:        cmd.OutOrStdout(),
			}
			if !co.Yes {
				u.Confirm = func(s schedule.Schedule) (bool, error) {
					label := fmt.Sprintf("Uncheck the %s pills and drop the stickers left on them", s.TimeSlot)
					return snake.Confirm(cmd.InOrStdin(), cmd.OutOrStdout(), label, false)
				}
			}
			return oo.HandleError(u.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

// interactive reports whether cmd reads from a terminal someone can answer on.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
