package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/commands/options"
	"tableflip.dev/sobok/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	so := &options.ScopeOptions{}
	legend := false
	week := false

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "month"},
		Short:   "Show the month or week around a day, marking done and in progress days.",
		Example: `
sobok calendar
sobok calendar --on 2024-3-1 --legend
sobok calendar --week
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
			c := calendar.Calendar{
				Gateway: gw,
				Scope:   so.Scope(),
				On:      day,
				Timeout: cfg.Timeout,
				Week:    week,
				Legend:  legend,
				Out:     cmd.OutOrStdout(),
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddScopeArgs(cmd, so)
	cmd.Flags().BoolVar(&week, "week", false, "Show only the week around the day.")
	cmd.Flags().BoolVar(&legend, "legend", false, "Print the glyph legend below the month.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
