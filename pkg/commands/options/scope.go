package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/sobok/pkg/schedule"
)

// ScopeOptions
type ScopeOptions struct {
	Member string
}

func AddScopeArgs(cmd *cobra.Command, o *ScopeOptions) {
	cmd.Flags().StringVarP(&o.Member, "member", "m", "",
		"Look at a shared member's schedule instead of your own.")
}

// Scope is the member scope when --member is set, self otherwise.
func (o *ScopeOptions) Scope() schedule.Scope {
	if o.Member == "" {
		return schedule.Self()
	}
	return schedule.Member(o.Member)
}
