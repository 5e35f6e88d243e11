package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/schedule"
	"tableflip.dev/sobok/pkg/timeutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-3-1", --on="3/1" or --on=yesterday.`)
}

// GetOn resolves the flag against the local clock; empty means today.
func (o *OnOptions) GetOn() (schedule.Day, error) {
	return timeutil.ParseOn(o.OnString, time.Now())
}
