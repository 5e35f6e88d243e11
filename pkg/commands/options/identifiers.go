package options

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// IDOptions
type IDOptions struct {
	ShowID     bool
	ScheduleID int
}

func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVarP(&o.ShowID, "show-id", "k", false,
		"Show the schedule ID of each pill.")
}

// ScheduleIDArg parses the first positional argument as a schedule id.
func (o *IDOptions) ScheduleIDArg(args []string) error {
	if len(args) != 1 {
		return errors.New("requires exactly one schedule id")
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid schedule id %q", args[0])
	}
	o.ScheduleID = id
	return nil
}
